// Package check provides engine self-tests: tool presence, per-backend
// tiny test encodes, and the pre-run dependency validation.
package check

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is
// missing.
var (
	ErrFfmpegNotFound     = errors.New("ffmpeg not found")
	ErrFfprobeNotFound    = errors.New("ffprobe not found")
	ErrVideoEncoderBroken = errors.New("selected video encoder failed its test encode")
	ErrAudioEncoderBroken = errors.New("selected audio encoder failed its test encode")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check remains
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive check flow: tool versions, hardware encoder
// availability per target codec, and tiny test encodes for the configured
// video and audio encoders. Informational only; it does not stop on failure.
func RunCheck(ctx context.Context, opts *config.Options, log Logger) {
	log.Info("=== System Check ===")

	checkTool(opts.FFmpegPath, log)
	checkTool(opts.FFprobePath, log)

	cs := caps.Detect(ctx, opts.FFmpegPath)
	if cs.Empty() {
		log.Warn("Could not query ffmpeg capabilities; assuming software only")
	}

	for _, codec := range []config.VideoCodec{config.VideoH264, config.VideoHEVC, config.VideoAV1} {
		if hw := cs.BestHWEncoder(codec); hw != "" {
			log.Info("%s: hardware encoder %s available", codec.Label(), hw)
		} else {
			log.Info("%s: software only (%s)", codec.Label(), codec.SoftwareEncoder())
		}
	}

	videoEncoder := opts.VideoCodec.SoftwareEncoder()
	if opts.UseHardware {
		if hw := cs.BestHWEncoder(opts.VideoCodec); hw != "" {
			videoEncoder = hw
		}
	}
	log.Info("Testing %s...", videoEncoder)
	if testVideoEncode(opts.FFmpegPath, videoEncoder) {
		log.Success("%s works", videoEncoder)
	} else {
		log.Error("%s test encode failed", videoEncoder)
	}

	audioEncoder := opts.AudioCodec.Encoder()
	log.Info("Testing %s...", audioEncoder)
	if testAudioEncode(opts.FFmpegPath, audioEncoder) {
		log.Success("%s works", audioEncoder)
	} else {
		log.Error("%s test encode failed", audioEncoder)
	}
}

// CheckDeps is the pre-run validation: ffmpeg and ffprobe must exist and
// the configured software encoders must pass a test encode. Hardware
// encoders are deliberately not gated here; a broken hardware path falls
// back at run time.
func CheckDeps(opts *config.Options) error {
	if !toolExists(opts.FFmpegPath) {
		return ErrFfmpegNotFound
	}
	if !toolExists(opts.FFprobePath) {
		return ErrFfprobeNotFound
	}
	if !testVideoEncode(opts.FFmpegPath, opts.VideoCodec.SoftwareEncoder()) {
		return ErrVideoEncoderBroken
	}
	if !testAudioEncode(opts.FFmpegPath, opts.AudioCodec.Encoder()) {
		return ErrAudioEncoderBroken
	}
	return nil
}

func checkTool(path string, log Logger) {
	if !toolExists(path) {
		log.Error("%s not found", path)
		return
	}
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", path, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
}

func toolExists(path string) bool {
	_, err := exec.LookPath(path)
	return err == nil
}

// testVideoEncode runs a minimal lavfi test encode through the given
// encoder. VAAPI encoders need the device and upload chain.
func testVideoEncode(ffmpegPath, encoder string) bool {
	args := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
	}
	if strings.HasSuffix(encoder, "_vaapi") {
		args = append(args,
			"-init_hw_device", "vaapi=va:/dev/dri/renderD128",
			"-filter_hw_device", "va",
			"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
			"-vf", "format=nv12,hwupload",
		)
	} else {
		args = append(args,
			"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		)
	}
	args = append(args, "-c:v", encoder, "-f", "null", "-")
	return runSilent(ffmpegPath, args...)
}

// testAudioEncode runs a minimal sine-wave encode through the given encoder.
func testAudioEncode(ffmpegPath, encoder string) bool {
	return runSilent(ffmpegPath,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", encoder, "-f", "null", "-",
	)
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
