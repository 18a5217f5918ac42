package probe

import "testing"

const fullJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "hevc",
      "codec_type": "video",
      "width": 3840,
      "height": 2160,
      "pix_fmt": "yuv420p10le",
      "color_transfer": "smpte2084",
      "color_primaries": "bt2020",
      "color_space": "bt2020nc",
      "avg_frame_rate": "24000/1001",
      "duration": "5404.400000"
    },
    {
      "index": 1,
      "codec_name": "eac3",
      "codec_type": "audio",
      "channels": 6,
      "sample_rate": "48000",
      "tags": {"language": "eng", "title": "Surround 5.1"}
    },
    {
      "index": 2,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "44100",
      "tags": {"language": "jpn"}
    },
    {
      "index": 3,
      "codec_name": "subrip",
      "codec_type": "subtitle"
    }
  ],
  "format": {
    "duration": "5404.467000",
    "bit_rate": "24000000"
  }
}`

func TestParseJSON_FullFile(t *testing.T) {
	p, err := ParseJSON([]byte(fullJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if p.Video == nil {
		t.Fatal("expected a video stream")
	}
	if p.Video.Codec != "hevc" || p.Video.Width != 3840 || p.Video.Height != 2160 {
		t.Errorf("video: %+v", p.Video)
	}
	if !p.Video.HDR {
		t.Error("smpte2084 transfer should flag HDR")
	}

	if len(p.Audio) != 2 {
		t.Fatalf("audio tracks: got %d, want 2", len(p.Audio))
	}
	a0 := p.Audio[0]
	if a0.Index != 0 || a0.Codec != "eac3" || a0.Channels != 6 || a0.SampleRate != 48000 {
		t.Errorf("track 0: %+v", a0)
	}
	if a0.Language != "eng" || a0.Title != "Surround 5.1" {
		t.Errorf("track 0 tags: %+v", a0)
	}
	if p.Audio[1].Index != 1 || p.Audio[1].SampleRate != 44100 {
		t.Errorf("track 1: %+v", p.Audio[1])
	}

	// Stream-level duration wins over the format value.
	if p.DurationMs != 5404400 {
		t.Errorf("duration: got %d ms, want 5404400", p.DurationMs)
	}
}

func TestParseJSON_FormatDurationFallback(t *testing.T) {
	body := `{
	  "streams": [
	    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720, "pix_fmt": "yuv420p"}
	  ],
	  "format": {"duration": "60.500000"}
	}`
	p, err := ParseJSON([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if p.DurationMs != 60500 {
		t.Errorf("duration: got %d ms, want 60500", p.DurationMs)
	}
	if p.Video.HDR {
		t.Error("plain h264 should not flag HDR")
	}
}

func TestParseJSON_AttachedPicSkipped(t *testing.T) {
	body := `{
	  "streams": [
	    {"index": 0, "codec_name": "mjpeg", "codec_type": "video", "disposition": {"attached_pic": 1}},
	    {"index": 1, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080, "pix_fmt": "yuv420p"}
	  ],
	  "format": {}
	}`
	p, err := ParseJSON([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if p.Video == nil || p.Video.Codec != "h264" {
		t.Errorf("cover art should not become the primary video stream: %+v", p.Video)
	}
}

func TestParseJSON_AudioOnly(t *testing.T) {
	body := `{
	  "streams": [
	    {"index": 0, "codec_name": "flac", "codec_type": "audio", "channels": 2, "sample_rate": "44100"}
	  ],
	  "format": {"duration": "180.0"}
	}`
	p, err := ParseJSON([]byte(body))
	if err != nil {
		t.Fatal(err)
	}
	if p.Video != nil {
		t.Error("audio-only file should have nil video")
	}
	if len(p.Audio) != 1 {
		t.Fatalf("audio tracks: got %d", len(p.Audio))
	}
}

func TestParseJSON_Garbage(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("garbage input should error")
	}
}

func TestDetectHDR(t *testing.T) {
	cases := []struct {
		name string
		v    VideoInfo
		want bool
	}{
		{"pq", VideoInfo{ColorTransfer: "smpte2084"}, true},
		{"hlg", VideoInfo{ColorTransfer: "arib-std-b67"}, true},
		{"bt2020 primaries", VideoInfo{ColorPrimaries: "bt2020"}, true},
		{"bt2020nc space", VideoInfo{ColorSpace: "bt2020nc"}, true},
		{"sdr", VideoInfo{ColorTransfer: "bt709", ColorPrimaries: "bt709"}, false},
		{"untagged", VideoInfo{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectHDR(&tc.v); got != tc.want {
				t.Errorf("detectHDR(%+v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestSafeProfile(t *testing.T) {
	p := SafeProfile()
	if p.DurationMs != 0 || p.Video != nil || len(p.Audio) != 0 {
		t.Errorf("safe profile should be empty: %+v", p)
	}
	if !p.Degraded {
		t.Error("safe profile must be marked degraded")
	}
	if p.FirstAudio() != nil || p.Track(0) != nil {
		t.Error("accessors on empty profile should return nil")
	}
}

func TestDurationMs(t *testing.T) {
	cases := map[string]int64{
		"5404.467000": 5404467,
		"60":          60000,
		"N/A":         0,
		"":            0,
		"-3":          0,
		"junk":        0,
	}
	for in, want := range cases {
		if got := durationMs(in); got != want {
			t.Errorf("durationMs(%q) = %d, want %d", in, got, want)
		}
	}
}
