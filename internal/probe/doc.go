// Package probe turns raw ffprobe output into a canonical MediaProfile: the
// primary video stream, every audio track, container duration, and an HDR
// flag derived from color metadata.
//
// A failed probe is not fatal. Probe always hands back a usable profile;
// when ffprobe dies or emits garbage the profile is empty and downstream
// planning falls back to its most conservative decisions (re-encode
// everything, never stream copy).
package probe
