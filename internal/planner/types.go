package planner

import "github.com/ExploreAritra/format-flex/internal/config"

// Plan is the fully resolved, side-effect-free description of one encoding
// attempt. It is never mutated after Build returns it; a fallback attempt
// builds a brand-new Plan from a cloned option set. A Plan is only valid
// relative to the MediaProfile and capability Set it was built from.
type Plan struct {
	// PreInput carries decode hints and hardware-device setup that must
	// precede -i on the command line.
	PreInput []string

	Video VideoPlan
	Audio AudioPlan

	// ContainerFlags finalize the output container (e.g. faststart for MP4).
	ContainerFlags []string
	Container      config.Container

	// Degraded mirrors the profile flag: stream maps become optional
	// ("0:v:0?") because we could not verify what the source contains.
	Degraded bool
}

// VideoPlan describes the video stream handling for one attempt.
type VideoPlan struct {
	Present bool
	Copy    bool

	// Encode path (ignored when Copy).
	Encoder     string   // ffmpeg encoder identifier.
	Hardware    bool     // True when Encoder is a hardware backend.
	Filters     string   // Fused -vf chain; empty means no filtering.
	RateControl []string // Encoder-specific quality/bitrate arguments.
	PixFmt      string   // Output pixel format; empty leaves it to the encoder.
	FrameRate   float64  // Fixed output rate; 0 keeps source timing.

	// Scale target when the filter chain includes scaling (diagnostics).
	TargetWidth  int
	TargetHeight int
}

// AudioPlan describes the audio stream handling for one attempt.
type AudioPlan struct {
	Present bool
	Copy    bool
	Track   int // Input audio track ordinal for stream mapping.

	// Encode path (ignored when Copy).
	Encoder     string
	Channels    int // 0 keeps the source channel count.
	SampleRate  int // 0 keeps the source rate.
	BitrateKbps int
}

// EffectiveVideoCodec resolves step one of the decision order: turbo forces
// the most universally compatible codec regardless of the configured one.
func EffectiveVideoCodec(opts *config.Options) config.VideoCodec {
	if opts.Turbo {
		return config.VideoH264
	}
	return opts.VideoCodec
}
