package ffmpeg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ExploreAritra/format-flex/internal/planner"
)

// Pass selects which invocation of a plan is being rendered. Single-pass
// runs use PassSingle; two-pass runs render the same plan twice, once as
// the analysis pass (statistics only, null sink) and once as the encode
// pass that consumes the statistics.
type Pass int

const (
	PassSingle Pass = iota
	PassAnalysis
	PassEncode
)

// BuildArgs renders the complete ffmpeg argument slice for one invocation
// of a plan. The binary name is not included; the executor supplies it.
//
// The generated command follows a fixed skeleton: preamble, pre-input
// decode/device hints, input, filter chain, stream maps, video codec
// section, audio codec section, container flags, output. passlogPrefix is
// only consulted for PassAnalysis and PassEncode.
func BuildArgs(plan *planner.Plan, input, output string, pass Pass, passlogPrefix string, verbose bool) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y")
	if verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Pre-input hints (decode accel, hardware device setup) ---
	args = append(args, plan.PreInput...)

	// --- Input ---
	args = append(args, "-i", input)

	// --- Video filter chain (encode path only, before maps) ---
	if plan.Video.Present && !plan.Video.Copy && plan.Video.Filters != "" {
		args = append(args, "-vf", plan.Video.Filters)
	}

	// --- Stream maps ---
	// A degraded profile means we never verified what the source contains,
	// so maps become optional instead of failing the whole run.
	if plan.Video.Present {
		args = append(args, "-map", streamMap("v", 0, plan.Degraded))
	} else {
		args = append(args, "-vn")
	}
	audioEnabled := plan.Audio.Present && pass != PassAnalysis
	if audioEnabled {
		args = append(args, "-map", streamMap("a", plan.Audio.Track, plan.Degraded))
	}

	// --- Video codec section ---
	args = appendVideoArgs(args, plan, pass, passlogPrefix)

	// --- Audio codec section ---
	if audioEnabled {
		args = appendAudioArgs(args, &plan.Audio)
	} else if !plan.Audio.Present {
		args = append(args, "-an")
	}

	// --- Container finalization and output ---
	if pass == PassAnalysis {
		// Statistics only: no audio, no container, null sink.
		args = append(args, "-an", "-f", "null", os.DevNull)
		return args
	}
	args = append(args, plan.ContainerFlags...)
	args = append(args, output)
	return args
}

func streamMap(kind string, idx int, optional bool) string {
	m := fmt.Sprintf("0:%s:%d", kind, idx)
	if optional {
		m += "?"
	}
	return m
}

func appendVideoArgs(args []string, plan *planner.Plan, pass Pass, passlogPrefix string) []string {
	if !plan.Video.Present {
		return args
	}
	if plan.Video.Copy {
		return append(args, "-c:v", "copy")
	}

	args = append(args, "-c:v", plan.Video.Encoder)
	args = append(args, plan.Video.RateControl...)
	if plan.Video.PixFmt != "" {
		args = append(args, "-pix_fmt", plan.Video.PixFmt)
	}
	if plan.Video.FrameRate > 0 {
		args = append(args, "-r", strconv.FormatFloat(plan.Video.FrameRate, 'f', -1, 64))
	}
	switch pass {
	case PassAnalysis:
		args = append(args, "-pass", "1", "-passlogfile", passlogPrefix)
	case PassEncode:
		args = append(args, "-pass", "2", "-passlogfile", passlogPrefix)
	}
	return args
}

func appendAudioArgs(args []string, ap *planner.AudioPlan) []string {
	if ap.Copy {
		return append(args, "-c:a", "copy")
	}
	args = append(args, "-c:a", ap.Encoder)
	if ap.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(ap.Channels))
	}
	if ap.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(ap.SampleRate))
	}
	if ap.BitrateKbps > 0 {
		args = append(args, "-b:a", strconv.Itoa(ap.BitrateKbps)+"k")
	}
	return args
}
