package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/ExploreAritra/format-flex/internal/diag"
)

// interruptGrace is how long a cancelled process gets to flush and exit
// after the interrupt signal before it is killed outright.
const interruptGrace = 3 * time.Second

// RunSpec describes one ffmpeg invocation. Args excludes the binary name.
// Stderr receives diagnostic lines for later classification; OnTelemetry,
// when set, is called synchronously from the progress reader goroutine for
// every completed batch.
type RunSpec struct {
	FFmpegPath  string
	Args        []string
	Stderr      *diag.Ring
	OnTelemetry func(Telemetry)
}

// Result is the outcome of one invocation. ExitKnown is false when the
// process died without delivering an exit code (killed, spawn failure,
// platform refusal) — the fallback heuristic treats that as suspicious.
type Result struct {
	Err       error
	ExitCode  int
	ExitKnown bool
	Cancelled bool
}

// Ok reports whether the process ran to completion with a zero exit code.
func (r Result) Ok() bool {
	return r.Err == nil && r.ExitKnown && r.ExitCode == 0
}

// Runner executes one rendered ffmpeg invocation. The pipeline holds a
// Runner so tests can substitute a fake process.
type Runner interface {
	Run(ctx context.Context, spec RunSpec) Result
}

// ExecRunner runs real ffmpeg processes with -progress telemetry on stdout.
type ExecRunner struct{}

// Run spawns ffmpeg and blocks until it exits or ctx is cancelled. On
// cancellation the process receives an interrupt first, giving it a chance
// to finalize the output container, then a kill after a grace window.
func (ExecRunner) Run(ctx context.Context, spec RunSpec) Result {
	args := append([]string{"-progress", "pipe:1", "-nostats"}, spec.Args...)
	cmd := exec.Command(spec.FFmpegPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{Err: err}
	}

	if err := cmd.Start(); err != nil {
		return Result{Err: err}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		readProgress(stdout, func(t Telemetry) {
			if spec.OnTelemetry != nil {
				spec.OnTelemetry(t)
			}
		})
	}()
	go func() {
		defer wg.Done()
		if spec.Stderr == nil {
			_, _ = io.Copy(io.Discard, stderr)
			return
		}
		sc := bufio.NewScanner(stderr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			spec.Stderr.Append(sc.Text())
		}
	}()

	waitDone := make(chan error, 1)
	go func() {
		wg.Wait()
		waitDone <- cmd.Wait()
	}()

	cancelled := false
	var waitErr error
	select {
	case waitErr = <-waitDone:
	case <-ctx.Done():
		cancelled = true
		interrupt(cmd)
		select {
		case waitErr = <-waitDone:
		case <-time.After(interruptGrace):
			_ = cmd.Process.Kill()
			waitErr = <-waitDone
		}
	}

	res := Result{Err: waitErr, Cancelled: cancelled}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		res.ExitKnown = true
	case errors.As(waitErr, &exitErr):
		if code := exitErr.ExitCode(); code >= 0 {
			res.ExitCode = code
			res.ExitKnown = true
		}
	}
	return res
}

// interrupt asks the process to stop gracefully. Platforms that cannot
// deliver os.Interrupt to a child fall straight through to Kill.
func interrupt(cmd *exec.Cmd) {
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
}
