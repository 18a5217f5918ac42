package planner

import (
	"github.com/ExploreAritra/format-flex/internal/config"
	"github.com/ExploreAritra/format-flex/internal/probe"
)

// buildAudioPlan decides copy-vs-encode for the selected audio track.
//
// Copy eligibility: codec name matches the target, channel count already
// equals the target (or is unknown), and sample rate already equals the
// target (or is unknown). When downmixing applies (allowed and the source
// has more channels than the target) copy is disallowed even on a codec
// match, so the channel count actually changes.
func buildAudioPlan(pr *probe.MediaProfile, opts *config.Options) AudioPlan {
	if pr.Degraded {
		// Unknown source: encode whatever audio is there with target settings.
		return AudioPlan{
			Present:     true,
			Track:       0,
			Encoder:     opts.AudioCodec.Encoder(),
			Channels:    opts.AudioChannels,
			SampleRate:  opts.AudioSampleRate,
			BitrateKbps: opts.AudioBitrateKbps,
		}
	}

	track := pr.FirstAudio()
	if opts.AudioTrack >= 0 {
		if t := pr.Track(opts.AudioTrack); t != nil {
			track = t
		}
	}
	if track == nil {
		return AudioPlan{}
	}

	downmix := opts.AllowDownmix && track.Channels > opts.AudioChannels

	codecMatch := opts.AudioCodec.MatchesSource(track.Codec)
	channelsOK := track.Channels == 0 || track.Channels == opts.AudioChannels
	rateOK := track.SampleRate == 0 || track.SampleRate == opts.AudioSampleRate

	if codecMatch && channelsOK && rateOK && !downmix {
		return AudioPlan{Present: true, Copy: true, Track: track.Index}
	}

	channels := opts.AudioChannels
	if track.Channels > 0 && track.Channels < channels {
		// Never upmix; fewer source channels are kept as-is.
		channels = track.Channels
	}
	if !opts.AllowDownmix && track.Channels > opts.AudioChannels {
		channels = track.Channels
	}

	return AudioPlan{
		Present:     true,
		Track:       track.Index,
		Encoder:     opts.AudioCodec.Encoder(),
		Channels:    channels,
		SampleRate:  opts.AudioSampleRate,
		BitrateKbps: opts.AudioBitrateKbps,
	}
}
