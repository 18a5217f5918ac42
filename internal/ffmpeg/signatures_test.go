package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHardwareFailureSignatures(t *testing.T) {
	tests := []struct {
		name string
		tail string
		want bool
	}{
		{
			name: "vaapi init",
			tail: "[AVHWDeviceContext @ 0x55] Failed to initialise VAAPI connection: -1 (unknown libva error).",
			want: true,
		},
		{
			name: "decoder startup",
			tail: "MediaCodec: decoder failed to start",
			want: true,
		},
		{
			name: "nvenc missing driver",
			tail: "Cannot load libcuda.so.1",
			want: true,
		},
		{
			name: "nvenc no device",
			tail: "[h264_nvenc @ 0x55] No capable devices found",
			want: true,
		},
		{
			name: "qsv session",
			tail: "[hevc_qsv @ 0x55] Error initializing output stream 0:0 -- Error while opening encoder for output stream #0:0",
			want: true,
		},
		{
			name: "hwupload format",
			tail: "Impossible to convert between the formats supported by the filter 'Parsed_scale_0' and the filter 'auto_scale_0'",
			want: true,
		},
		{
			name: "plain input error",
			tail: "in.mkv: No such file or directory",
			want: false,
		},
		{
			name: "disk full",
			tail: "av_interleaved_write_frame(): No space left on device",
			want: false,
		},
		{
			name: "empty tail",
			tail: "",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HardwareFailure(tt.tail, true))
		})
	}
}

func TestHardwareFailureUnknownExit(t *testing.T) {
	// A process that vanished without an exit code is treated as a
	// hardware casualty regardless of what stderr says.
	assert.True(t, HardwareFailure("", false))
	assert.True(t, HardwareFailure("perfectly innocent output", false))
}
