package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validOpts() Options {
	o := Default()
	o.InputPath = "/media/in.mkv"
	return o
}

func TestValidate_Defaults(t *testing.T) {
	o := validOpts()
	if err := o.Validate(); err != nil {
		t.Fatalf("default options should validate, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{"bad container", func(o *Options) { o.Container = "avi" }, "invalid container"},
		{"bad vcodec", func(o *Options) { o.VideoCodec = "vp8" }, "invalid video codec"},
		{"bad acodec", func(o *Options) { o.AudioCodec = "mp3" }, "invalid audio codec"},
		{"webm h264", func(o *Options) { o.Container = ContainerWebM; o.AudioCodec = AudioOpus }, "requires av1"},
		{"webm aac", func(o *Options) { o.Container = ContainerWebM; o.VideoCodec = VideoAV1 }, "requires opus"},
		{"flac mp4", func(o *Options) { o.AudioCodec = AudioFLAC }, "not supported in mp4"},
		{"bad height", func(o *Options) { o.MaxHeight = 1000 }, "resolution ceiling"},
		{"crf range", func(o *Options) { o.CRF = 99 }, "out of range"},
		{"bitrate mode zero", func(o *Options) { o.UseCRF = false; o.BitrateKbps = 0 }, "bitrate must be positive"},
		{"two-pass crf", func(o *Options) { o.TwoPass = true }, "two-pass"},
		{"channels", func(o *Options) { o.AudioChannels = 0 }, "channel count"},
		{"sample rate", func(o *Options) { o.AudioSampleRate = 12345 }, "sample rate"},
		{"track index", func(o *Options) { o.AudioTrack = -2 }, "track index"},
		{"no input", func(o *Options) { o.InputPath = "" }, "input path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validOpts()
			tc.mutate(&o)
			err := o.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestValidate_FlacInMKV(t *testing.T) {
	o := validOpts()
	o.Container = ContainerMKV
	o.AudioCodec = AudioFLAC
	if err := o.Validate(); err != nil {
		t.Errorf("flac in mkv should be allowed, got %v", err)
	}
}

func TestVideoCodec_MatchesSource(t *testing.T) {
	if !VideoH264.MatchesSource("h264") || !VideoH264.MatchesSource("avc") {
		t.Error("h264 family should match h264 and avc")
	}
	if !VideoHEVC.MatchesSource("h265") {
		t.Error("hevc family should match h265")
	}
	if VideoHEVC.MatchesSource("h264") {
		t.Error("hevc family should not match h264")
	}
	if VideoCodec("bogus").MatchesSource("bogus") {
		t.Error("unknown codec must never match")
	}
}

func TestClone_Independent(t *testing.T) {
	o := validOpts()
	c := o.Clone()
	c.UseHardware = false
	c.CRF = 30
	if !o.UseHardware || o.CRF != 23 {
		t.Error("clone mutation leaked into original")
	}
}

func TestApplyPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.toml")
	body := `
[preset.archive]
container = "mkv"
video_codec = "hevc"
crf = 20
tone_map = true

[preset.fast]
turbo = true
bitrate_kbps = 2500
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	o := validOpts()
	if err := ApplyPreset(&o, path, "archive"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if o.Container != ContainerMKV || o.VideoCodec != VideoHEVC || o.CRF != 20 || !o.ToneMap {
		t.Errorf("archive preset not applied: %+v", o)
	}
	if o.AudioCodec != AudioAAC {
		t.Errorf("unset keys should keep defaults, audio codec became %q", o.AudioCodec)
	}

	o2 := validOpts()
	if err := ApplyPreset(&o2, path, "fast"); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if !o2.Turbo || o2.UseCRF || o2.BitrateKbps != 2500 {
		t.Errorf("fast preset not applied: %+v", o2)
	}

	if err := ApplyPreset(&o, path, "missing"); err == nil {
		t.Error("unknown preset name should error")
	}
}
