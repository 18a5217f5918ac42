// Package caps detects what the installed ffmpeg build can actually do:
// which encoders, filters, and hardware acceleration methods it was compiled
// with. Detection shells out to ffmpeg's self-report commands and parses
// their line-oriented output; any failure degrades to the empty set, which
// downstream code reads as "software only".
package caps

import "github.com/ExploreAritra/format-flex/internal/config"

// Set holds the identifiers the ffmpeg build reports. Built once per run and
// treated as read-only; it can go stale across driver changes but is never
// re-probed mid-conversion.
type Set struct {
	encoders map[string]bool
	filters  map[string]bool
	hwaccels map[string]bool
}

// EmptySet returns the software-only capability set.
func EmptySet() *Set {
	return &Set{
		encoders: map[string]bool{},
		filters:  map[string]bool{},
		hwaccels: map[string]bool{},
	}
}

// FromLists builds a Set from explicit identifier lists. Used by tests and
// by anything that wants to simulate a particular ffmpeg build.
func FromLists(encoders, filters, hwaccels []string) *Set {
	s := EmptySet()
	for _, e := range encoders {
		s.encoders[e] = true
	}
	for _, f := range filters {
		s.filters[f] = true
	}
	for _, h := range hwaccels {
		s.hwaccels[h] = true
	}
	return s
}

// HasEncoder reports whether the build exposes the named encoder.
func (s *Set) HasEncoder(name string) bool { return s.encoders[name] }

// HasFilter reports whether the build exposes the named filter.
func (s *Set) HasFilter(name string) bool { return s.filters[name] }

// HasHWAccel reports whether the named hardware acceleration method exists.
func (s *Set) HasHWAccel(name string) bool { return s.hwaccels[name] }

// Empty reports whether nothing was detected (software-only fallback).
func (s *Set) Empty() bool {
	return len(s.encoders) == 0 && len(s.filters) == 0 && len(s.hwaccels) == 0
}

// Encoders returns the detected encoder names (unordered). For display only.
func (s *Set) Encoders() []string { return keys(s.encoders) }

// HWAccels returns the detected acceleration methods (unordered).
func (s *Set) HWAccels() []string { return keys(s.hwaccels) }

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// hwEncoderPriority lists hardware encoder candidates per target codec in
// fixed preference order: discrete GPU (NVENC) first, integrated GPU
// (QSV, then VAAPI), platform media framework (VideoToolbox) last. Adding a
// backend is a list insertion, not a new branch.
var hwEncoderPriority = map[config.VideoCodec][]string{
	config.VideoH264: {"h264_nvenc", "h264_qsv", "h264_vaapi", "h264_videotoolbox"},
	config.VideoHEVC: {"hevc_nvenc", "hevc_qsv", "hevc_vaapi", "hevc_videotoolbox"},
	config.VideoAV1:  {"av1_nvenc", "av1_qsv", "av1_vaapi"},
}

// BestHWEncoder returns the highest-priority hardware encoder available for
// the codec, or "" when only software will do.
func (s *Set) BestHWEncoder(codec config.VideoCodec) string {
	for _, name := range hwEncoderPriority[codec] {
		if s.encoders[name] {
			return name
		}
	}
	return ""
}

// hwaccelPriority is the decode-side counterpart: acceleration methods in
// preference order, matching the encoder vendor ordering above.
var hwaccelPriority = []string{"cuda", "qsv", "vaapi", "videotoolbox"}

// hwDecodableCodecs are source codecs for which the common acceleration
// methods ship decoders. Coarse on purpose: a wrong yes here costs one
// failed attempt and a software retry, not a broken output.
var hwDecodableCodecs = map[string]bool{
	"h264":       true,
	"hevc":       true,
	"h265":       true,
	"av1":        true,
	"vp9":        true,
	"mpeg2video": true,
}

// DecodeAccel returns the acceleration method to hint for decoding the given
// source codec, or "" when decode should stay on the software path.
func (s *Set) DecodeAccel(sourceCodec string) string {
	if !hwDecodableCodecs[sourceCodec] {
		return ""
	}
	for _, name := range hwaccelPriority {
		if s.hwaccels[name] {
			return name
		}
	}
	return ""
}
