package planner

import (
	"github.com/ExploreAritra/format-flex/internal/caps"
	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/probe"
)

// Pixel formats accepted for video stream copy: the standard 4:2:0 layouts
// every mainstream decoder handles. Anything else is re-encoded.
var copyablePixFmts = map[string]bool{
	"yuv420p":  true,
	"yuvj420p": true,
	"nv12":     true,
}

// Build is the central decision matrix: given a probed profile, the user's
// options, and the detected capability set, it produces the complete Plan
// for one execution attempt. Pure — no I/O, deterministic for identical
// inputs.
//
// forceSoftwareDecode and forceSoftwareEncode are set by the orchestrator
// when re-planning after a hardware failure; they override the option flags
// without mutating them.
//
// Decision order:
//  1. Effective target codec (turbo forces H.264, drops tonemap, keeps timing)
//  2. Tone-map need
//  3. Scale need and target size
//  4. Video stream-copy eligibility
//  5. Audio stream-copy eligibility
//  6. Encoder selection against the capability set
//  7. Rate-control parameter mapping
//  8. Decode-side acceleration hint
//  9. Filter chain fusion (tonemap before scale, single graph)
//  10. Container finalization flags
func Build(pr *probe.MediaProfile, opts *config.Options, cs *caps.Set, forceSoftwareDecode, forceSoftwareEncode bool) *Plan {
	plan := &Plan{
		Container: opts.Container,
		Degraded:  pr.Degraded,
	}

	// --- 1. Effective codec ---
	codec := EffectiveVideoCodec(opts)

	v := pr.Video

	// --- 2. Tone-map need ---
	toneMap := opts.ToneMap && v != nil && v.HDR && !opts.Turbo && canToneMap(cs)

	// --- 3. Scale need ---
	scaleW, scaleH := 0, 0
	if v != nil && needsScale(v.Width, v.Height, opts.MaxHeight) {
		scaleW, scaleH = fitWithin(v.Width, v.Height, opts.MaxHeight)
	}

	// --- 4-9. Video path ---
	switch {
	case v == nil && !pr.Degraded:
		// Probed file genuinely has no video stream; omit video args.

	case pr.Degraded:
		// Source characteristics unknown: safest decision is a plain
		// software encode with optional stream maps.
		plan.Video = VideoPlan{
			Present: true,
			Encoder: codec.SoftwareEncoder(),
			PixFmt:  "yuv420p",
		}
		plan.Video.RateControl = rateControlArgs(plan.Video.Encoder, opts)

	default:
		keepTiming := opts.FrameRate == 0 || opts.Turbo
		copyOK := !toneMap && scaleW == 0 && keepTiming &&
			codec.MatchesSource(v.Codec) && copyablePixFmts[v.PixFmt]

		if copyOK {
			plan.Video = VideoPlan{Present: true, Copy: true}
			break
		}

		encoder, hardware := selectEncoder(codec, opts, cs, forceSoftwareEncode)
		vp := VideoPlan{
			Present:      true,
			Encoder:      encoder,
			Hardware:     hardware,
			TargetWidth:  scaleW,
			TargetHeight: scaleH,
		}

		if !opts.Turbo {
			vp.FrameRate = opts.FrameRate
		}

		// Filter chain: tonemap always precedes scale, fused into one graph.
		vp.Filters = buildVideoFilters(toneMap, scaleW, scaleH, encoder)
		vp.RateControl = rateControlArgs(encoder, opts)

		if !hardware {
			vp.PixFmt = "yuv420p"
		}
		if toneMap {
			// The tonemap chain already ends in format=yuv420p.
			vp.PixFmt = ""
		}

		// Decode hint only when no filtering is needed: the software filter
		// layer needs frames in system memory, so any chain forces the
		// general-purpose decode path.
		if vp.Filters == "" && !forceSoftwareDecode {
			if accel := cs.DecodeAccel(v.Codec); accel != "" {
				plan.PreInput = append(plan.PreInput, "-hwaccel", accel)
			}
		}
		if hardware && isVaapi(encoder) {
			plan.PreInput = append(plan.PreInput, vaapiPreInput(defaultVaapiDevice)...)
		}

		plan.Video = vp
	}

	// --- 5. Audio path ---
	plan.Audio = buildAudioPlan(pr, opts)

	// --- 10. Container finalization ---
	if opts.Container == config.ContainerMP4 {
		// Relocate the moov atom so progressive playback starts immediately.
		plan.ContainerFlags = []string{"-movflags", "+faststart"}
	}

	return plan
}

func isVaapi(encoder string) bool {
	return len(encoder) > 6 && encoder[len(encoder)-6:] == "_vaapi"
}
