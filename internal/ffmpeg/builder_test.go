package ffmpeg

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/planner"
)

func encodePlan() *planner.Plan {
	return &planner.Plan{
		Video: planner.VideoPlan{
			Present:     true,
			Encoder:     "libx264",
			Filters:     "scale=1920:1080:flags=lanczos",
			RateControl: []string{"-crf", "23", "-preset", "medium"},
			PixFmt:      "yuv420p",
		},
		Audio: planner.AudioPlan{
			Present:     true,
			Track:       0,
			Encoder:     "aac",
			Channels:    2,
			SampleRate:  48000,
			BitrateKbps: 192,
		},
		ContainerFlags: []string{"-movflags", "+faststart"},
		Container:      config.ContainerMP4,
	}
}

func TestBuildArgsEncode(t *testing.T) {
	args := BuildArgs(encodePlan(), "in.mkv", "out.mp4", PassSingle, "", false)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-hide_banner -nostdin -y -loglevel error")
	assert.Contains(t, joined, "-i in.mkv")
	assert.Contains(t, joined, "-vf scale=1920:1080:flags=lanczos")
	assert.Contains(t, joined, "-map 0:v:0 -map 0:a:0")
	assert.Contains(t, joined, "-c:v libx264 -crf 23 -preset medium -pix_fmt yuv420p")
	assert.Contains(t, joined, "-c:a aac -ac 2 -ar 48000 -b:a 192k")
	assert.Contains(t, joined, "-movflags +faststart")
	require.NotEmpty(t, args)
	assert.Equal(t, "out.mp4", args[len(args)-1])
	assert.NotContains(t, args, "-pass")
}

func TestBuildArgsFilterPrecedesMaps(t *testing.T) {
	args := BuildArgs(encodePlan(), "in.mkv", "out.mp4", PassSingle, "", false)
	vf := indexOf(args, "-vf")
	m := indexOf(args, "-map")
	require.GreaterOrEqual(t, vf, 0)
	require.GreaterOrEqual(t, m, 0)
	assert.Less(t, vf, m, "filter chain must precede stream maps")
}

func TestBuildArgsCopy(t *testing.T) {
	plan := &planner.Plan{
		Video:     planner.VideoPlan{Present: true, Copy: true},
		Audio:     planner.AudioPlan{Present: true, Copy: true, Track: 1},
		Container: config.ContainerMKV,
	}
	args := BuildArgs(plan, "in.mkv", "out.mkv", PassSingle, "", false)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-c:v copy")
	assert.Contains(t, joined, "-c:a copy")
	assert.Contains(t, joined, "-map 0:a:1")
	assert.NotContains(t, joined, "-vf")
	assert.NotContains(t, joined, "-movflags")
}

func TestBuildArgsPreInput(t *testing.T) {
	plan := encodePlan()
	plan.PreInput = []string{"-hwaccel", "cuda"}
	args := BuildArgs(plan, "in.mkv", "out.mp4", PassSingle, "", false)

	hw := indexOf(args, "-hwaccel")
	in := indexOf(args, "-i")
	require.GreaterOrEqual(t, hw, 0)
	assert.Less(t, hw, in, "decode hints must precede the input")
}

func TestBuildArgsDegradedOptionalMaps(t *testing.T) {
	plan := encodePlan()
	plan.Degraded = true
	args := BuildArgs(plan, "in.bin", "out.mp4", PassSingle, "", false)
	joined := strings.Join(args, " ")

	assert.Contains(t, joined, "-map 0:v:0?")
	assert.Contains(t, joined, "-map 0:a:0?")
}

func TestBuildArgsTwoPass(t *testing.T) {
	plan := encodePlan()
	plan.Video.RateControl = []string{"-b:v", "4000k", "-preset", "medium"}

	p1 := BuildArgs(plan, "in.mkv", "out.mp4", PassAnalysis, "/tmp/ffx-log", false)
	j1 := strings.Join(p1, " ")
	assert.Contains(t, j1, "-pass 1 -passlogfile /tmp/ffx-log")
	assert.Contains(t, j1, "-an -f null "+os.DevNull)
	assert.NotContains(t, j1, "-c:a aac")
	assert.NotContains(t, j1, "out.mp4")
	assert.NotContains(t, j1, "-movflags")

	p2 := BuildArgs(plan, "in.mkv", "out.mp4", PassEncode, "/tmp/ffx-log", false)
	j2 := strings.Join(p2, " ")
	assert.Contains(t, j2, "-pass 2 -passlogfile /tmp/ffx-log")
	assert.Contains(t, j2, "-c:a aac")
	assert.Equal(t, "out.mp4", p2[len(p2)-1])
}

func TestBuildArgsNoStreams(t *testing.T) {
	plan := &planner.Plan{
		Video: planner.VideoPlan{Present: true, Copy: true},
		Audio: planner.AudioPlan{Present: false},
	}
	args := BuildArgs(plan, "in.mkv", "out.mkv", PassSingle, "", false)
	assert.Contains(t, args, "-an")
	assert.NotContains(t, args, "-c:a")

	plan = &planner.Plan{
		Video: planner.VideoPlan{Present: false},
		Audio: planner.AudioPlan{Present: true, Copy: true},
	}
	args = BuildArgs(plan, "in.mka", "out.mka", PassSingle, "", false)
	assert.Contains(t, args, "-vn")
	assert.NotContains(t, args, "-c:v")
}

func TestBuildArgsVerboseLoglevel(t *testing.T) {
	args := BuildArgs(encodePlan(), "in.mkv", "out.mp4", PassSingle, "", true)
	assert.Contains(t, strings.Join(args, " "), "-loglevel info")
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}
