package ffmpeg

import "regexp"

// FailurePredicate decides whether a failed attempt looks like a hardware
// acceleration failure worth retrying in software. It sees the bounded tail
// of stderr and whether the process delivered an exit code at all. Kept
// pluggable because the substring set is neither exhaustive nor stable
// across ffmpeg versions.
type FailurePredicate func(stderrTail string, exitKnown bool) bool

// reHardwareFailure matches the stderr shapes hardware backends produce
// when the device, driver, or session is unusable. Generic encode errors
// (bad input, full disk) deliberately do not match.
var reHardwareFailure = regexp.MustCompile(`(?i)` +
	`Failed to initialise VAAPI|` +
	`Error initializing output stream.*(vaapi|nvenc|qsv|videotoolbox)|` +
	`Cannot init (CUDA|QSV)|` +
	`Cannot load (libcuda|libnvidia|nvcuda)|` +
	`(de|en)coder failed to start|` +
	`Failed to (open|configure) (de|en)coder|` +
	`No capable devices found|` +
	`Failed setup for format (cuda|qsv|vaapi|videotoolbox)|` +
	`Error while opening encoder|` +
	`Failed to create.*(surface|session|context)|` +
	`hwaccel initialisation returned error|` +
	`Device creation failed|` +
	`No VA display found|` +
	`Error allocating.*(frames|surface)|` +
	`Impossible to convert between the formats`)

// HardwareFailure is the default predicate: any of the known hardware
// signatures in the tail, or a process that vanished without an exit code.
// It is a heuristic; false positives cost one wasted software attempt,
// false negatives surface the original error.
func HardwareFailure(stderrTail string, exitKnown bool) bool {
	if !exitKnown {
		return true
	}
	return reHardwareFailure.MatchString(stderrTail)
}
