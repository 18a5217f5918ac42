// Command formatflex converts a video file into a target
// container/codec/resolution/audio configuration, using hardware
// acceleration when available and falling back to software when it fails.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ExploreAritra/format-flex/internal/config"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flagSet carries the raw flag values; they are folded into a
// config.Options in buildOptions so presets and flags compose in the
// right order (defaults, then preset, then explicitly set flags).
type flagSet struct {
	container   string
	videoCodec  string
	audioCodec  string
	maxHeight   int
	crf         int
	bitrate     int
	frameRate   float64
	toneMap     bool
	channels    int
	sampleRate  int
	audioKbps   int
	audioTrack  int
	noDownmix   bool
	noHardware  bool
	turbo       bool
	twoPass     bool
	dryRun      bool
	force       bool
	skipExists  bool
	verbose     bool
	outputDir   string
	outputName  string
	logFile     string
	color       string
	ffmpegPath  string
	ffprobePath string
	presetFile  string
	preset      string
}

func newRootCmd() *cobra.Command {
	fs := &flagSet{}

	root := &cobra.Command{
		Use:   "formatflex [flags] <input>",
		Short: "Convert a video to a target format with automatic hardware fallback",
		Long: `formatflex probes a source video, plans the cheapest conversion that
satisfies the requested target (stream-copying what already fits), and
drives ffmpeg through the encode. Hardware encoders are used when
available; a hardware failure is retried once in software.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd.Flags(), fs)
			if err != nil {
				return err
			}
			return runConvert(cmd, opts, fs, args[0])
		},
	}

	f := root.Flags()
	f.StringVarP(&fs.container, "container", "c", "", "target container: mp4, mkv, webm")
	f.StringVar(&fs.videoCodec, "video-codec", "", "target video codec: h264, hevc, av1")
	f.StringVar(&fs.audioCodec, "audio-codec", "", "target audio codec: aac, opus, flac")
	f.IntVar(&fs.maxHeight, "max-height", 0, "resolution ceiling: 480, 720, 1080, 1440, 2160 (0 keeps source)")
	f.IntVar(&fs.crf, "crf", 0, "constant-quality factor (0-51, lower is better)")
	f.IntVar(&fs.bitrate, "bitrate", 0, "target video bitrate in kbps (switches off CRF mode)")
	f.Float64Var(&fs.frameRate, "framerate", 0, "fixed output frame rate (0 keeps source timing)")
	f.BoolVar(&fs.toneMap, "tonemap", false, "tone-map HDR sources to SDR")
	f.IntVar(&fs.channels, "audio-channels", 0, "target audio channel count")
	f.IntVar(&fs.sampleRate, "audio-sample-rate", 0, "target audio sample rate in Hz")
	f.IntVar(&fs.audioKbps, "audio-bitrate", 0, "target audio bitrate in kbps")
	f.IntVar(&fs.audioTrack, "audio-track", -1, "input audio track index (-1 picks the first)")
	f.BoolVar(&fs.noDownmix, "no-downmix", false, "never reduce the source channel count")
	f.BoolVar(&fs.noHardware, "no-hardware", false, "disable hardware encoders")
	f.BoolVar(&fs.turbo, "turbo", false, "fastest settings: h264, fast presets, no tone-mapping")
	f.BoolVar(&fs.twoPass, "two-pass", false, "two-pass bitrate encoding (software only)")
	f.BoolVar(&fs.dryRun, "dry-run", false, "print the ffmpeg command(s) without running them")
	f.BoolVarP(&fs.force, "force", "f", false, "overwrite an existing output file")
	f.BoolVar(&fs.skipExists, "skip-existing", false, "exit successfully if the output already exists")
	f.BoolVarP(&fs.verbose, "verbose", "v", false, "verbose output")
	f.StringVarP(&fs.outputDir, "output-dir", "o", "", "output directory (default: next to input)")
	f.StringVar(&fs.outputName, "output-name", "", "output filename without extension (default: input stem)")
	f.StringVar(&fs.logFile, "log-file", "", "mirror log output into a file")
	f.StringVar(&fs.color, "color", "auto", "color output: auto, always, never")
	f.StringVar(&fs.ffmpegPath, "ffmpeg", "", "path to the ffmpeg binary")
	f.StringVar(&fs.ffprobePath, "ffprobe", "", "path to the ffprobe binary")
	f.StringVar(&fs.presetFile, "presets-file", "", "TOML file with [preset.<name>] tables")
	f.StringVar(&fs.preset, "preset", "", "named preset to apply before flags")

	root.AddCommand(newCheckCmd(), newCapsCmd(), newVersionCmd())
	return root
}

// buildOptions folds defaults, the optional preset, and explicitly set
// flags into one validated option set.
func buildOptions(flags *pflag.FlagSet, fs *flagSet) (*config.Options, error) {
	opts := config.Default()

	if fs.preset != "" {
		if fs.presetFile == "" {
			return nil, fmt.Errorf("--preset requires --presets-file")
		}
		if err := config.ApplyPreset(&opts, fs.presetFile, fs.preset); err != nil {
			return nil, err
		}
	}

	if flags.Changed("container") {
		opts.Container = config.Container(fs.container)
	}
	if flags.Changed("video-codec") {
		opts.VideoCodec = config.VideoCodec(fs.videoCodec)
	}
	if flags.Changed("audio-codec") {
		opts.AudioCodec = config.AudioCodec(fs.audioCodec)
	}
	if flags.Changed("max-height") {
		opts.MaxHeight = fs.maxHeight
	}
	if flags.Changed("crf") {
		opts.CRF = fs.crf
		opts.UseCRF = true
	}
	if flags.Changed("bitrate") {
		opts.BitrateKbps = fs.bitrate
		opts.UseCRF = false
	}
	if flags.Changed("framerate") {
		opts.FrameRate = fs.frameRate
	}
	if flags.Changed("tonemap") {
		opts.ToneMap = fs.toneMap
	}
	if flags.Changed("audio-channels") {
		opts.AudioChannels = fs.channels
	}
	if flags.Changed("audio-sample-rate") {
		opts.AudioSampleRate = fs.sampleRate
	}
	if flags.Changed("audio-bitrate") {
		opts.AudioBitrateKbps = fs.audioKbps
	}
	if flags.Changed("audio-track") {
		opts.AudioTrack = fs.audioTrack
	}
	if fs.noDownmix {
		opts.AllowDownmix = false
	}
	if fs.noHardware {
		opts.UseHardware = false
	}
	if fs.turbo {
		opts.Turbo = true
	}
	if fs.twoPass {
		opts.TwoPass = true
	}
	if fs.dryRun {
		opts.DryRun = true
	}
	if fs.force {
		opts.Force = true
	}
	if fs.verbose {
		opts.Verbose = true
	}
	if flags.Changed("output-dir") {
		opts.OutputDir = fs.outputDir
	}
	if flags.Changed("output-name") {
		opts.OutputName = fs.outputName
	}
	if flags.Changed("log-file") {
		opts.LogFile = fs.logFile
	}
	if flags.Changed("color") {
		opts.ColorMode = config.ColorMode(fs.color)
	}
	if flags.Changed("ffmpeg") {
		opts.FFmpegPath = fs.ffmpegPath
	}
	if flags.Changed("ffprobe") {
		opts.FFprobePath = fs.ffprobePath
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("formatflex %s (%s)\n", version, commit)
		},
	}
}
