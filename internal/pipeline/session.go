package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/diag"
	"github.com/ExploreAritra/format-flex/internal/events"
	"github.com/ExploreAritra/format-flex/internal/ffmpeg"
	"github.com/ExploreAritra/format-flex/internal/logging"
	"github.com/ExploreAritra/format-flex/internal/output"
	"github.com/ExploreAritra/format-flex/internal/planner"
	"github.com/ExploreAritra/format-flex/internal/probe"
	"github.com/ExploreAritra/format-flex/internal/progress"
)

// Orchestrator states, published as StateEvent.State.
const (
	StateProbing   = "probing"
	StatePlanning  = "planning"
	StateEncoding  = "encoding"
	StateDone      = "done"
	StateFailed    = "failed"
	StateCancelled = "cancelled"
)

// tailLines bounds the diagnostic tail carried in an Outcome and handed to
// the failure predicate.
const tailLines = 40

// Session runs one conversion. Construct with New, then call Run once.
// All collaborators are swappable for tests; New fills in the real ones.
type Session struct {
	opts config.Options
	caps *caps.Set
	log  *logging.Logger
	bus  *events.Bus
	ring *diag.Ring

	Runner    ffmpeg.Runner
	Placer    output.Placer
	Predicate ffmpeg.FailurePredicate
	ProbeFn   func(ctx context.Context, ffprobePath, path string) (*probe.MediaProfile, error)
}

// New creates a session over a defensive copy of opts, so concurrent edits
// to the caller's option set cannot perturb an in-flight run.
func New(opts *config.Options, cs *caps.Set, log *logging.Logger, bus *events.Bus) *Session {
	return &Session{
		opts:      opts.Clone(),
		caps:      cs,
		log:       log,
		bus:       bus,
		ring:      diag.NewRing(0),
		Runner:    ffmpeg.ExecRunner{},
		Placer:    output.RenamePlacer{},
		Predicate: ffmpeg.HardwareFailure,
		ProbeFn:   probe.Probe,
	}
}

// Run converts inputPath into finalPath. It probes, plans, encodes (with
// the single software retry on a recognized hardware failure), validates,
// and places the artifact. Exactly one DoneEvent is published. Partial
// output never survives a failed or cancelled run.
func (s *Session) Run(ctx context.Context, inputPath, finalPath string) Outcome {
	staging := output.StagingPath(finalPath)

	s.state(StateProbing, 0, "")
	profile, err := s.ProbeFn(ctx, s.opts.FFprobePath, inputPath)
	if err != nil {
		s.log.Warn("Probe failed, proceeding with conservative plan: %v", err)
	}
	if ctx.Err() != nil {
		return s.finishCancelled(staging, 0)
	}

	s.state(StatePlanning, 0, "")
	// Two-pass runs are software end to end; the statistics pass and the
	// consuming pass must use the same encoder implementation.
	forceSW := s.opts.TwoPass
	plan := planner.Build(profile, &s.opts, s.caps, forceSW, forceSW)

	res, kind := s.runAttempt(ctx, plan, profile.DurationMs, inputPath, staging, 1)
	if res.Cancelled || ctx.Err() != nil {
		return s.finishCancelled(staging, 1)
	}
	if kind == FailNone {
		return s.finishSuccess(staging, finalPath, res, 1, false)
	}

	// Validation failures are terminal: the process itself succeeded, so
	// a software retry would change nothing.
	hardware := plan.Video.Hardware || len(plan.PreInput) > 0
	if kind != FailSoftware || !hardware || !s.Predicate(s.ring.Tail(tailLines), res.ExitKnown) {
		if hardware && kind == FailSoftware {
			kind = FailHardware
		}
		return s.finishFailure(staging, res, kind, 1, false)
	}

	// One software retry: brand-new plan from a modified option copy,
	// fresh diagnostics, clean slate on disk.
	s.log.Warn("Hardware acceleration failed, retrying in software")
	_ = os.Remove(staging)
	s.ring.Reset()

	swOpts := s.opts.Clone()
	swOpts.UseHardware = false
	plan = planner.Build(profile, &swOpts, s.caps, true, true)

	res, kind = s.runAttempt(ctx, plan, profile.DurationMs, inputPath, staging, 2)
	if res.Cancelled || ctx.Err() != nil {
		return s.finishCancelled(staging, 2)
	}
	if kind == FailNone {
		return s.finishSuccess(staging, finalPath, res, 2, true)
	}
	return s.finishFailure(staging, res, kind, 2, true)
}

// runAttempt executes one plan, sequencing the analysis and encode passes
// for two-pass runs. The returned kind is FailNone only when the process
// succeeded and the output artifact validated.
func (s *Session) runAttempt(ctx context.Context, plan *planner.Plan, durationMs int64, input, staging string, attempt int) (ffmpeg.Result, FailureKind) {
	s.state(StateEncoding, attempt, "")

	var res ffmpeg.Result
	if s.opts.TwoPass && plan.Video.Present && !plan.Video.Copy {
		prefix := filepath.Join(os.TempDir(), "formatflex-"+uuid.NewString())
		defer removePassLogs(prefix)

		res = s.runPass(ctx, plan, durationMs, input, staging, ffmpeg.PassAnalysis, prefix, attempt, 1)
		if !res.Ok() {
			return res, FailSoftware
		}
		res = s.runPass(ctx, plan, durationMs, input, staging, ffmpeg.PassEncode, prefix, attempt, 2)
	} else {
		res = s.runPass(ctx, plan, durationMs, input, staging, ffmpeg.PassSingle, "", attempt, 0)
	}

	if !res.Ok() {
		return res, FailSoftware
	}
	if !validOutput(staging) {
		s.log.Error("Encoder exited cleanly but produced no output")
		return res, FailValidation
	}
	return res, FailNone
}

func (s *Session) runPass(ctx context.Context, plan *planner.Plan, durationMs int64, input, staging string, pass ffmpeg.Pass, prefix string, attempt, passNum int) ffmpeg.Result {
	tracker := &progress.Tracker{}
	spec := ffmpeg.RunSpec{
		FFmpegPath: s.opts.FFmpegPath,
		Args:       ffmpeg.BuildArgs(plan, input, staging, pass, prefix, s.opts.Verbose),
		Stderr:     s.ring,
		OnTelemetry: func(t ffmpeg.Telemetry) {
			var rep progress.Report
			switch {
			case t.EndOfStream:
				rep = tracker.Finish()
			case t.OutTimeMs >= 0:
				rep = tracker.Observe(progress.Translate(t.OutTimeMs, durationMs, t.Speed))
			default:
				return
			}
			s.bus.Publish(events.ProgressEvent{
				Attempt: attempt,
				Pass:    passNum,
				Report:  rep,
				Speed:   t.Speed,
			})
		},
	}
	return s.Runner.Run(ctx, spec)
}

func (s *Session) finishSuccess(staging, finalPath string, res ffmpeg.Result, attempts int, fallback bool) Outcome {
	if err := s.Placer.Place(staging, finalPath); err != nil {
		s.log.Error("Cannot place output: %v", err)
		_ = os.Remove(staging)
		out := Outcome{
			Kind:      FailValidation,
			ExitKnown: res.ExitKnown,
			Tail:      s.ring.Tail(tailLines),
			Attempts:  attempts,
			Fallback:  fallback,
		}
		s.state(StateFailed, attempts, err.Error())
		s.bus.Publish(events.DoneEvent{Reason: err.Error()})
		return out
	}
	s.state(StateDone, attempts, finalPath)
	s.bus.Publish(events.DoneEvent{Success: true, OutputPath: finalPath})
	return Outcome{
		Success:    true,
		ExitKnown:  res.ExitKnown,
		OutputPath: finalPath,
		Attempts:   attempts,
		Fallback:   fallback,
	}
}

func (s *Session) finishFailure(staging string, res ffmpeg.Result, kind FailureKind, attempts int, fallback bool) Outcome {
	_ = os.Remove(staging)
	tail := s.ring.Tail(tailLines)
	s.state(StateFailed, attempts, kind.String())
	s.bus.Publish(events.DoneEvent{Reason: kind.String()})
	return Outcome{
		Kind:      kind,
		ExitKnown: res.ExitKnown,
		Tail:      tail,
		Attempts:  attempts,
		Fallback:  fallback,
	}
}

func (s *Session) finishCancelled(staging string, attempts int) Outcome {
	_ = os.Remove(staging)
	s.state(StateCancelled, attempts, "")
	s.bus.Publish(events.DoneEvent{Cancelled: true})
	return Outcome{Cancelled: true, Attempts: attempts, Tail: s.ring.Tail(tailLines)}
}

func (s *Session) state(state string, attempt int, detail string) {
	s.bus.Publish(events.StateEvent{State: state, Attempt: attempt, Detail: detail})
}

// Summary returns the error-filtered tail of the last attempt's diagnostic
// output for user display.
func (s *Session) Summary(n int) []string {
	return s.ring.Summary(n)
}

func validOutput(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Size() > 0
}

// removePassLogs deletes every statistics artifact sharing the passlog
// prefix (x264 writes "<prefix>-0.log" and a companion mbtree file).
func removePassLogs(prefix string) {
	matches, _ := filepath.Glob(prefix + "*")
	for _, m := range matches {
		_ = os.Remove(m)
	}
}
