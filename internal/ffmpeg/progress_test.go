package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(input string) []Telemetry {
	var got []Telemetry
	readProgress(strings.NewReader(input), func(t Telemetry) {
		got = append(got, t)
	})
	return got
}

func TestReadProgressBatches(t *testing.T) {
	input := strings.Join([]string{
		"frame=120",
		"fps=59.8",
		"out_time_us=4004000",
		"speed=1.67x",
		"progress=continue",
		"frame=240",
		"out_time_us=8008000",
		"speed=1.71x",
		"progress=end",
	}, "\n") + "\n"

	got := collect(input)
	require.Len(t, got, 2)

	assert.Equal(t, int64(4004), got[0].OutTimeMs)
	assert.Equal(t, int64(120), got[0].Frame)
	assert.InDelta(t, 1.67, got[0].Speed, 1e-9)
	assert.False(t, got[0].EndOfStream)

	assert.Equal(t, int64(8008), got[1].OutTimeMs)
	assert.True(t, got[1].EndOfStream)
}

func TestReadProgressOutTimeFallbacks(t *testing.T) {
	// out_time_ms carries microseconds despite the name.
	got := collect("out_time_ms=5000000\nprogress=continue\n")
	require.Len(t, got, 1)
	assert.Equal(t, int64(5000), got[0].OutTimeMs)

	got = collect("out_time=00:01:30.500000\nprogress=continue\n")
	require.Len(t, got, 1)
	assert.Equal(t, int64(90500), got[0].OutTimeMs)
}

func TestReadProgressUnknownValues(t *testing.T) {
	got := collect("speed=N/A\nout_time=N/A\nprogress=continue\n")
	require.Len(t, got, 1)
	assert.Equal(t, int64(-1), got[0].OutTimeMs)
	assert.Zero(t, got[0].Speed)
}

func TestReadProgressSkipsGarbage(t *testing.T) {
	got := collect("not a kv line\nframe=abc\nout_time_us=-5\nframe=7\nprogress=end\n")
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].Frame)
	assert.Equal(t, int64(-1), got[0].OutTimeMs)
	assert.True(t, got[0].EndOfStream)
}

func TestReadProgressTruncatedStream(t *testing.T) {
	// Stream dying mid-batch emits nothing for that batch.
	got := collect("frame=9\nout_time_us=1000000\n")
	assert.Empty(t, got)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"00:00:00.000000", 0},
		{"01:02:03.250000", 3723250},
		{"-00:00:00.023000", -1},
		{"N/A", -1},
		{"", -1},
		{"12:34", -1},
		{"aa:bb:cc", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseClockTime(tt.in), "parseClockTime(%q)", tt.in)
	}
}
