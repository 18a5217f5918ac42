package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the
// normalized profile. The returned profile is always usable: on any process
// or parse failure it is [SafeProfile] and the error describes what went
// wrong so the caller can log it and carry on with conservative planning.
func Probe(ctx context.Context, ffprobePath, path string) (*MediaProfile, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return SafeProfile(), fmt.Errorf("ffprobe %q: %w", path, err)
	}

	profile, err := ParseJSON(out)
	if err != nil {
		return SafeProfile(), err
	}
	return profile, nil
}

// ParseJSON converts raw ffprobe JSON output into a MediaProfile.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaProfile, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildProfile(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index          int               `json:"index"`
	CodecName      string            `json:"codec_name"`
	CodecType      string            `json:"codec_type"`
	PixFmt         string            `json:"pix_fmt"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	Duration       string            `json:"duration"`
	ColorTransfer  string            `json:"color_transfer"`
	ColorPrimaries string            `json:"color_primaries"`
	ColorSpace     string            `json:"color_space"`
	AvgFrameRate   string            `json:"avg_frame_rate"`
	Channels       int               `json:"channels"`
	SampleRate     string            `json:"sample_rate"`
	Disposition    map[string]int    `json:"disposition"`
	Tags           map[string]string `json:"tags"`
}

// --- Conversion from wire types to the canonical profile ---

func buildProfile(raw *ffprobeOutput) *MediaProfile {
	p := &MediaProfile{}

	var streamDurationMs int64
	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if s.Disposition["attached_pic"] == 1 {
				continue
			}
			if p.Video == nil {
				p.Video = convertVideo(s)
			}
			if ms := durationMs(s.Duration); ms > streamDurationMs {
				streamDurationMs = ms
			}
		case "audio":
			p.Audio = append(p.Audio, convertAudio(s, len(p.Audio)))
			if ms := durationMs(s.Duration); ms > streamDurationMs {
				streamDurationMs = ms
			}
		}
	}

	// Layered duration fallback: stream-level first, then the format-level
	// value. Either may be missing or unparseable; 0 means unknown.
	p.DurationMs = streamDurationMs
	if p.DurationMs == 0 {
		p.DurationMs = durationMs(raw.Format.Duration)
	}
	return p
}

func convertVideo(s *ffprobeStream) *VideoInfo {
	v := &VideoInfo{
		Index:          s.Index,
		Codec:          s.CodecName,
		PixFmt:         s.PixFmt,
		Width:          s.Width,
		Height:         s.Height,
		ColorTransfer:  s.ColorTransfer,
		ColorPrimaries: s.ColorPrimaries,
		ColorSpace:     s.ColorSpace,
		AvgFrameRate:   s.AvgFrameRate,
	}
	v.HDR = detectHDR(v)
	return v
}

func convertAudio(s *ffprobeStream, ordinal int) AudioTrack {
	return AudioTrack{
		Index:      ordinal,
		Codec:      s.CodecName,
		Channels:   s.Channels,
		SampleRate: parseInt(s.SampleRate),
		Language:   s.Tags["language"],
		Title:      s.Tags["title"],
	}
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

// durationMs parses an ffprobe seconds string ("123.456000") into whole
// milliseconds, returning 0 for anything unparseable or non-positive.
func durationMs(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int64(f * 1000)
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
