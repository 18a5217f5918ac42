package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/check"
	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/display"
	"github.com/ExploreAritra/format-flex/internal/events"
	"github.com/ExploreAritra/format-flex/internal/logging"
	"github.com/ExploreAritra/format-flex/internal/output"
	"github.com/ExploreAritra/format-flex/internal/pipeline"
	"github.com/ExploreAritra/format-flex/internal/term"
)

// minInputSize rejects obviously truncated files before probing.
const minInputSize = 1000

func runConvert(cmd *cobra.Command, opts *config.Options, fs *flagSet, inputPath string) error {
	log, err := logging.NewLogger(opts)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	// --- Validate input ---
	fi, err := os.Stat(inputPath)
	if err != nil {
		log.Error("Input not found: %s", inputPath)
		return fmt.Errorf("input not found")
	}
	if fi.Size() < minInputSize {
		log.Error("Input too small (possibly corrupt): %s", inputPath)
		return fmt.Errorf("input too small")
	}

	// --- Resolve destination ---
	finalPath := output.TargetPath(opts, inputPath)
	if fs.skipExists {
		if _, err := os.Stat(finalPath); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(finalPath))
			return nil
		}
	}
	finalPath = output.NewResolver(opts.Force).Resolve(finalPath)

	// --- Fail fast when the toolchain is broken ---
	if !opts.DryRun {
		if err := check.CheckDeps(opts); err != nil {
			log.Error("%v", err)
			return err
		}
	}

	// --- Cancel on SIGINT/SIGTERM ---
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// --- Detect capabilities once per run ---
	cs := caps.Detect(ctx, opts.FFmpegPath)
	if cs.Empty() {
		log.Warn("Could not query ffmpeg capabilities; software only")
	} else if opts.UseHardware {
		if hw := cs.BestHWEncoder(opts.VideoCodec); hw != "" {
			log.Info("Hardware encoder: %s", hw)
		}
	}

	log.Info("In:  %s", inputPath)
	log.Info("Out: %s", finalPath)

	bus := events.New()
	defer bus.Close()
	session := pipeline.New(opts, cs, log, bus)

	// --- Dry-run: print the exact command lines and stop ---
	if opts.DryRun {
		vectors, _, err := session.Preview(ctx, inputPath, finalPath)
		if err != nil {
			return err
		}
		log.Warn("DRY RUN — no files will be written")
		for _, v := range vectors {
			fmt.Println(opts.FFmpegPath + " " + strings.Join(v, " "))
		}
		return nil
	}

	unsub := subscribeDisplay(bus, log, opts.Verbose)
	defer unsub()

	start := time.Now()
	out := session.Run(ctx, inputPath, finalPath)
	elapsed := time.Since(start)

	switch {
	case out.Cancelled:
		log.Warn("Cancelled")
		return fmt.Errorf("cancelled")
	case out.Success:
		var outSize int64
		if ofi, err := os.Stat(out.OutputPath); err == nil {
			outSize = ofi.Size()
		}
		note := ""
		if out.Fallback {
			note = " (software fallback)"
		}
		log.Success("Done in %s%s: %s (%s, %s)",
			display.FormatDuration(elapsed.Milliseconds()), note,
			out.OutputPath, display.FormatBytes(outSize),
			display.FormatRatio(fi.Size(), outSize))
		return nil
	default:
		log.Error("Conversion failed (%s)", out.Kind)
		for _, line := range session.Summary(10) {
			log.Error("  %s", line)
		}
		return fmt.Errorf("conversion failed")
	}
}

// subscribeDisplay renders progress events. On a TTY the line is rewritten
// in place; otherwise progress is logged at a coarse interval.
func subscribeDisplay(bus *events.Bus, log *logging.Logger, verbose bool) func() {
	isTTY := term.IsTerminal(os.Stdout)
	var lastLogged time.Time

	unsubProgress := bus.Subscribe(func(e events.ProgressEvent) {
		line := display.FormatProgress(e.Report, e.Speed)
		if e.Pass > 0 {
			line = fmt.Sprintf("pass %d/2 |%s", e.Pass, line)
		}
		if isTTY {
			fmt.Printf("\r\033[K%s", line)
			return
		}
		if time.Since(lastLogged) > 15*time.Second {
			lastLogged = time.Now()
			log.Info("%s", line)
		}
	})
	unsubState := bus.Subscribe(func(e events.StateEvent) {
		if isTTY && (e.State == pipeline.StateDone || e.State == pipeline.StateFailed || e.State == pipeline.StateCancelled) {
			fmt.Print("\r\033[K")
		}
		log.Debug(verbose, "state: %s (attempt %d) %s", e.State, e.Attempt, e.Detail)
	})
	return func() {
		unsubProgress()
		unsubState()
	}
}
