// Package config holds the target-configuration model: closed enum types for
// container and codec choices, the Options struct the converter consumes, and
// validation of user input before any planning happens.
package config

import (
	"errors"
	"fmt"
)

// --- Enum types for validated string fields ---

// Container is the output container format.
type Container string

const (
	ContainerMP4  Container = "mp4"  // MP4 (default; widest playback support).
	ContainerMKV  Container = "mkv"  // Matroska (full feature support).
	ContainerWebM Container = "webm" // WebM (AV1/Opus only).
)

// Ext returns the file extension including the leading dot.
func (c Container) Ext() string {
	return "." + string(c)
}

// Label returns the display name for the container.
func (c Container) Label() string {
	switch c {
	case ContainerMP4:
		return "MP4"
	case ContainerMKV:
		return "Matroska"
	case ContainerWebM:
		return "WebM"
	}
	return string(c)
}

// VideoCodec is the target video codec.
type VideoCodec string

const (
	VideoH264 VideoCodec = "h264" // AVC (default; universal compatibility).
	VideoHEVC VideoCodec = "hevc"
	VideoAV1  VideoCodec = "av1"
)

// SoftwareEncoder returns the ffmpeg software encoder identifier.
func (v VideoCodec) SoftwareEncoder() string {
	switch v {
	case VideoH264:
		return "libx264"
	case VideoHEVC:
		return "libx265"
	case VideoAV1:
		return "libsvtav1"
	}
	return ""
}

// MatchesSource reports whether a probed codec name belongs to this codec's
// family, i.e. whether a source stream in that codec could be stream-copied
// into a target configured for this codec.
func (v VideoCodec) MatchesSource(probed string) bool {
	switch v {
	case VideoH264:
		return probed == "h264" || probed == "avc"
	case VideoHEVC:
		return probed == "hevc" || probed == "h265"
	case VideoAV1:
		return probed == "av1"
	}
	return false
}

// Label returns the display name for the codec.
func (v VideoCodec) Label() string {
	switch v {
	case VideoH264:
		return "H.264/AVC"
	case VideoHEVC:
		return "H.265/HEVC"
	case VideoAV1:
		return "AV1"
	}
	return string(v)
}

// AudioCodec is the target audio codec.
type AudioCodec string

const (
	AudioAAC  AudioCodec = "aac" // Default.
	AudioOpus AudioCodec = "opus"
	AudioFLAC AudioCodec = "flac"
)

// Encoder returns the ffmpeg audio encoder identifier.
func (a AudioCodec) Encoder() string {
	switch a {
	case AudioAAC:
		return "aac"
	case AudioOpus:
		return "libopus"
	case AudioFLAC:
		return "flac"
	}
	return ""
}

// MatchesSource reports whether a probed audio codec name equals this codec.
func (a AudioCodec) MatchesSource(probed string) bool {
	return probed == string(a)
}

// Label returns the display name for the codec.
func (a AudioCodec) Label() string {
	switch a {
	case AudioAAC:
		return "AAC"
	case AudioOpus:
		return "Opus"
	case AudioFLAC:
		return "FLAC"
	}
	return string(a)
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// --- Options ---

// Options holds the complete user-chosen target configuration for one
// conversion, plus ambient behavior flags. It is mutable up to the moment a
// plan is built; the orchestrator takes a [Options.Clone] before building any
// fallback plan so a retry cannot be perturbed by later edits.
type Options struct {
	// Paths.
	InputPath  string
	OutputDir  string // Empty: alongside the input.
	OutputName string // Empty: derived from the input stem.

	// Target format.
	Container  Container
	VideoCodec VideoCodec
	AudioCodec AudioCodec

	// Video settings.
	MaxHeight   int     // Resolution ceiling (2160/1440/1080/720/480); 0 keeps source size.
	UseCRF      bool    // Quality mode: CRF when true, explicit bitrate otherwise.
	CRF         int     // Default: 23.
	BitrateKbps int     // Video bitrate in kbps when UseCRF is false.
	FrameRate   float64 // Fixed output frame rate; 0 keeps source timing.
	ToneMap     bool    // Tonemap HDR sources to SDR.

	// Audio settings.
	AudioChannels    int // Target channel count. Default: 2.
	AudioSampleRate  int // Target sample rate in Hz. Default: 48000.
	AudioBitrateKbps int // Default: 192.
	AudioTrack       int // Explicit input audio track index; -1 selects the first track.
	AllowDownmix     bool

	// Acceleration and pacing.
	UseHardware bool // Prefer hardware encoders when available.
	Turbo       bool // Fastest settings: forces H.264, disables tonemap, keeps timing.
	TwoPass     bool // Two-pass software encode (disables hardware for the run).

	// Behavior flags.
	DryRun  bool
	Force   bool // Overwrite an existing output instead of failing.
	Verbose bool

	// Display and logging.
	ColorMode ColorMode
	LogFile   string

	// External engine locations (PATH lookup when empty).
	FFmpegPath  string
	FFprobePath string
}

// Default returns Options with all defaults applied. Used as the base before
// preset and flag overrides.
func Default() Options {
	return Options{
		Container:        ContainerMP4,
		VideoCodec:       VideoH264,
		AudioCodec:       AudioAAC,
		MaxHeight:        0,
		UseCRF:           true,
		CRF:              23,
		BitrateKbps:      4000,
		AudioChannels:    2,
		AudioSampleRate:  48000,
		AudioBitrateKbps: 192,
		AudioTrack:       -1,
		AllowDownmix:     true,
		UseHardware:      true,
		ColorMode:        ColorAuto,
		FFmpegPath:       "ffmpeg",
		FFprobePath:      "ffprobe",
	}
}

// Clone returns a copy of o for fallback planning. Options holds no reference
// types today, but every retry goes through Clone so that adding one later
// cannot silently alias state between attempts.
func (o *Options) Clone() Options {
	c := *o
	return c
}

// Valid resolution ceilings, keyed by height. 0 means "keep source size".
var validHeights = map[int]bool{0: true, 480: true, 720: true, 1080: true, 1440: true, 2160: true}

// Valid audio sample rates.
var validSampleRates = map[int]bool{22050: true, 44100: true, 48000: true, 96000: true}

// Validate checks enum fields and numeric ranges, and rejects container/codec
// combinations the muxer cannot produce. It does not touch the filesystem.
func (o *Options) Validate() error {
	switch o.Container {
	case ContainerMP4, ContainerMKV, ContainerWebM:
	default:
		return fmt.Errorf("invalid container %q (use mp4, mkv, or webm)", o.Container)
	}

	switch o.VideoCodec {
	case VideoH264, VideoHEVC, VideoAV1:
	default:
		return fmt.Errorf("invalid video codec %q (use h264, hevc, or av1)", o.VideoCodec)
	}

	switch o.AudioCodec {
	case AudioAAC, AudioOpus, AudioFLAC:
	default:
		return fmt.Errorf("invalid audio codec %q (use aac, opus, or flac)", o.AudioCodec)
	}

	// WebM only muxes AV1 video and Opus audio.
	if o.Container == ContainerWebM {
		if o.VideoCodec != VideoAV1 {
			return errors.New("webm container requires av1 video")
		}
		if o.AudioCodec != AudioOpus {
			return errors.New("webm container requires opus audio")
		}
	}
	// FLAC-in-MP4 needs the experimental muxer path; refuse it.
	if o.Container == ContainerMP4 && o.AudioCodec == AudioFLAC {
		return errors.New("flac audio is not supported in mp4 (use mkv)")
	}

	if !validHeights[o.MaxHeight] {
		return fmt.Errorf("invalid resolution ceiling %dp (use 480, 720, 1080, 1440, or 2160)", o.MaxHeight)
	}
	if o.UseCRF && (o.CRF < 0 || o.CRF > 51) {
		return fmt.Errorf("crf %d out of range 0-51", o.CRF)
	}
	if !o.UseCRF && o.BitrateKbps <= 0 {
		return errors.New("video bitrate must be positive in bitrate mode")
	}
	if o.TwoPass && o.UseCRF {
		return errors.New("two-pass encoding requires bitrate mode (--bitrate)")
	}
	if o.FrameRate < 0 || o.FrameRate > 240 {
		return fmt.Errorf("invalid frame rate %.3f", o.FrameRate)
	}

	if o.AudioChannels < 1 || o.AudioChannels > 8 {
		return fmt.Errorf("invalid audio channel count %d (use 1-8)", o.AudioChannels)
	}
	if !validSampleRates[o.AudioSampleRate] {
		return fmt.Errorf("invalid sample rate %d Hz (use 22050, 44100, 48000, or 96000)", o.AudioSampleRate)
	}
	if o.AudioBitrateKbps <= 0 {
		return errors.New("audio bitrate must be positive")
	}
	if o.AudioTrack < -1 {
		return fmt.Errorf("invalid audio track index %d", o.AudioTrack)
	}

	switch o.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always, or never)", o.ColorMode)
	}

	if o.InputPath == "" {
		return errors.New("input path is required")
	}
	return nil
}
