package probe

// VideoInfo holds the canonical properties of the primary video stream.
type VideoInfo struct {
	Index  int
	Codec  string
	PixFmt string
	Width  int
	Height int
	HDR    bool
	// Raw color tags, kept for diagnostics and HDR preservation.
	ColorTransfer  string
	ColorPrimaries string
	ColorSpace     string
	AvgFrameRate   string
}

// AudioTrack holds the canonical properties of one audio stream. Index is the
// ordinal position among audio streams (0-based), not the absolute container
// stream index.
type AudioTrack struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
	Language   string
	Title      string
}

// MediaProfile is the language-neutral description of a probed input. It is
// built once per conversion and read-only afterward.
//
// DurationMs is 0 when the container reports no usable duration; Video is nil
// when no real video stream exists (attached cover art is not a video
// stream). Audio keeps every audio track in container order so the planner
// can honor an explicit track selection.
type MediaProfile struct {
	DurationMs int64
	Video      *VideoInfo
	Audio      []AudioTrack

	// Degraded marks a profile produced by a failed probe. A degraded
	// profile means "the source may well have streams we know nothing
	// about", which is different from a successfully probed file that has
	// no video or no audio.
	Degraded bool
}

// FirstAudio returns the first audio track, or nil when there is none.
func (p *MediaProfile) FirstAudio() *AudioTrack {
	if len(p.Audio) == 0 {
		return nil
	}
	return &p.Audio[0]
}

// Track returns the audio track with the given ordinal index, or nil.
func (p *MediaProfile) Track(idx int) *AudioTrack {
	if idx < 0 || idx >= len(p.Audio) {
		return nil
	}
	return &p.Audio[idx]
}

// SafeProfile is the degraded profile used when probing fails entirely:
// unknown duration, no stream information. The planner treats it as "source
// characteristics unknown" and never attempts stream copy.
func SafeProfile() *MediaProfile {
	return &MediaProfile{Degraded: true}
}
