package display

import (
	"fmt"

	"github.com/ExploreAritra/format-flex/internal/progress"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDuration renders milliseconds as "H:MM:SS" (or "M:SS" under an
// hour). Negative values mean unknown and render as "--:--".
func FormatDuration(ms int64) string {
	if ms < 0 {
		return "--:--"
	}
	totalSec := ms / 1000
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatProgress renders one progress report as a single status line, e.g.
// "  47% | ETA 1:23 | 2.1x". Indeterminate parts are elided.
func FormatProgress(r progress.Report, speed float64) string {
	pct := "  --%"
	if r.Percent >= 0 {
		pct = fmt.Sprintf("%4.0f%%", r.Percent*100)
	}
	line := pct
	if r.ETAMs >= 0 {
		line += " | ETA " + FormatDuration(r.ETAMs)
	}
	if speed > 0 {
		line += fmt.Sprintf(" | %.1fx", speed)
	}
	return line
}

// FormatRatio renders output size relative to input, e.g. "63% of original".
func FormatRatio(inBytes, outBytes int64) string {
	if inBytes <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d%% of original", outBytes*100/inBytes)
}
