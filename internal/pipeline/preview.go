package pipeline

import (
	"context"

	"github.com/ExploreAritra/format-flex/internal/ffmpeg"
	"github.com/ExploreAritra/format-flex/internal/planner"
)

// Preview probes and plans without executing anything, returning the exact
// argument vector(s) a real run would hand to ffmpeg: one for a single-pass
// run, two for two-pass. Used by dry-run.
func (s *Session) Preview(ctx context.Context, inputPath, finalPath string) ([][]string, *planner.Plan, error) {
	profile, err := s.ProbeFn(ctx, s.opts.FFprobePath, inputPath)
	if err != nil {
		s.log.Warn("Probe failed, previewing conservative plan: %v", err)
	}
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	forceSW := s.opts.TwoPass
	plan := planner.Build(profile, &s.opts, s.caps, forceSW, forceSW)

	if s.opts.TwoPass && plan.Video.Present && !plan.Video.Copy {
		const prefix = "<passlog>"
		return [][]string{
			ffmpeg.BuildArgs(plan, inputPath, finalPath, ffmpeg.PassAnalysis, prefix, s.opts.Verbose),
			ffmpeg.BuildArgs(plan, inputPath, finalPath, ffmpeg.PassEncode, prefix, s.opts.Verbose),
		}, plan, nil
	}
	return [][]string{
		ffmpeg.BuildArgs(plan, inputPath, finalPath, ffmpeg.PassSingle, "", s.opts.Verbose),
	}, plan, nil
}
