package config

// Named presets let users keep reusable target configurations in a TOML file
// and select one with --preset. Preset values are applied over Default()
// before CLI flags, so explicit flags always win.

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// presetFile is the TOML wire structure: a table of presets keyed by name.
type presetFile struct {
	Preset map[string]preset `toml:"preset"`
}

// preset mirrors the user-settable subset of Options. Pointer fields
// distinguish "not set" from zero values so a preset only overrides what it
// names.
type preset struct {
	Container        *string  `toml:"container"`
	VideoCodec       *string  `toml:"video_codec"`
	AudioCodec       *string  `toml:"audio_codec"`
	MaxHeight        *int     `toml:"max_height"`
	CRF              *int     `toml:"crf"`
	BitrateKbps      *int     `toml:"bitrate_kbps"`
	FrameRate        *float64 `toml:"frame_rate"`
	ToneMap          *bool    `toml:"tone_map"`
	AudioChannels    *int     `toml:"audio_channels"`
	AudioSampleRate  *int     `toml:"audio_sample_rate"`
	AudioBitrateKbps *int     `toml:"audio_bitrate_kbps"`
	AllowDownmix     *bool    `toml:"allow_downmix"`
	UseHardware      *bool    `toml:"use_hardware"`
	Turbo            *bool    `toml:"turbo"`
	TwoPass          *bool    `toml:"two_pass"`
}

// ApplyPreset loads the named preset from the TOML file at path and applies
// it to opts. Unknown preset names and unparseable files are errors; keys the
// preset does not set are left untouched.
func ApplyPreset(opts *Options, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read preset file: %w", err)
	}

	var pf presetFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse preset file %q: %w", path, err)
	}

	p, ok := pf.Preset[name]
	if !ok {
		return fmt.Errorf("preset %q not found in %s", name, path)
	}

	if p.Container != nil {
		opts.Container = Container(*p.Container)
	}
	if p.VideoCodec != nil {
		opts.VideoCodec = VideoCodec(*p.VideoCodec)
	}
	if p.AudioCodec != nil {
		opts.AudioCodec = AudioCodec(*p.AudioCodec)
	}
	if p.MaxHeight != nil {
		opts.MaxHeight = *p.MaxHeight
	}
	if p.CRF != nil {
		opts.CRF = *p.CRF
		opts.UseCRF = true
	}
	if p.BitrateKbps != nil {
		opts.BitrateKbps = *p.BitrateKbps
		opts.UseCRF = false
	}
	if p.FrameRate != nil {
		opts.FrameRate = *p.FrameRate
	}
	if p.ToneMap != nil {
		opts.ToneMap = *p.ToneMap
	}
	if p.AudioChannels != nil {
		opts.AudioChannels = *p.AudioChannels
	}
	if p.AudioSampleRate != nil {
		opts.AudioSampleRate = *p.AudioSampleRate
	}
	if p.AudioBitrateKbps != nil {
		opts.AudioBitrateKbps = *p.AudioBitrateKbps
	}
	if p.AllowDownmix != nil {
		opts.AllowDownmix = *p.AllowDownmix
	}
	if p.UseHardware != nil {
		opts.UseHardware = *p.UseHardware
	}
	if p.Turbo != nil {
		opts.Turbo = *p.Turbo
	}
	if p.TwoPass != nil {
		opts.TwoPass = *p.TwoPass
	}
	return nil
}
