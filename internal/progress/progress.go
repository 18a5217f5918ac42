// Package progress converts raw encoder telemetry (elapsed output time,
// speed multiplier) into display-ready percentage and ETA values, and keeps
// per-attempt progress monotonic.
package progress

// Report is one translated progress sample. Percent is in [0,1], or -1 when
// the total duration is unknown (callers should show an indeterminate
// spinner, not a stalled bar). ETAMs is -1 when it cannot be estimated.
type Report struct {
	Percent float64
	ETAMs   int64
}

// Indeterminate is the report for sources with no known duration.
var Indeterminate = Report{Percent: -1, ETAMs: -1}

// Translate converts a telemetry sample into a Report. ETA divides the
// remaining output time by the speed multiplier when a positive speed is
// known, and assumes realtime (1x) otherwise. A zero or unknown total
// suppresses both values rather than dividing by zero.
func Translate(elapsedMs, totalMs int64, speed float64) Report {
	if totalMs <= 0 {
		return Indeterminate
	}

	if elapsedMs < 0 {
		elapsedMs = 0
	}
	pct := float64(elapsedMs) / float64(totalMs)
	if pct > 1 {
		pct = 1
	}

	remaining := totalMs - elapsedMs
	if remaining < 0 {
		remaining = 0
	}
	if speed > 0 {
		remaining = int64(float64(remaining) / speed)
	}
	return Report{Percent: pct, ETAMs: remaining}
}

// Tracker enforces the two display invariants within one encoding attempt:
// the percentage never decreases, and it never reads 100% until an explicit
// end-of-stream signal arrives, even when the raw numbers would round there
// early.
type Tracker struct {
	last  Report
	valid bool
	done  bool
}

// capBeforeEnd is the ceiling applied until Finish is called.
const capBeforeEnd = 0.999

// Observe folds one translated sample into the tracker and returns the
// report to display. Out-of-order or repeated samples are clamped to the
// high-water mark; indeterminate samples pass through untouched.
func (t *Tracker) Observe(r Report) Report {
	if r.Percent < 0 {
		return r
	}

	if !t.done && r.Percent > capBeforeEnd {
		r.Percent = capBeforeEnd
	}
	if t.valid && r.Percent < t.last.Percent {
		r.Percent = t.last.Percent
	}

	t.last = r
	t.valid = true
	return r
}

// Finish marks end-of-stream and returns the terminal 100% report.
func (t *Tracker) Finish() Report {
	t.done = true
	t.last = Report{Percent: 1, ETAMs: 0}
	t.valid = true
	return t.last
}

// Last returns the most recent report, or Indeterminate before any sample.
func (t *Tracker) Last() Report {
	if !t.valid {
		return Indeterminate
	}
	return t.last
}
