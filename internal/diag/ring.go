// Package diag collects recent diagnostic output from the encoding engine in
// a bounded ring buffer. The buffer is an explicitly owned value handed to
// the executor — never ambient global state — so tests can inject one and
// inspect exactly what a run produced.
package diag

import (
	"regexp"
	"strings"
	"sync"
)

// Ring is a fixed-capacity buffer of the most recent diagnostic lines.
// Safe for one writer and concurrent readers.
type Ring struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
}

// DefaultCapacity bounds memory for a chatty encode; ffmpeg rarely emits
// more than a few hundred interesting lines before dying.
const DefaultCapacity = 256

// NewRing creates a ring holding up to capacity lines. Non-positive
// capacities fall back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{lines: make([]string, capacity)}
}

// Append adds one line, evicting the oldest when full.
func (r *Ring) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[r.next] = line
	r.next++
	if r.next == len(r.lines) {
		r.next = 0
		r.full = true
	}
}

// Lines returns the buffered lines oldest-first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]string, r.next)
		copy(out, r.lines[:r.next])
		return out
	}
	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	out = append(out, r.lines[:r.next]...)
	return out
}

// Tail returns the last n lines joined with newlines. The fallback
// classifier and failure reports both read this.
func (r *Ring) Tail(n int) string {
	lines := r.Lines()
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// Reset clears the buffer between attempts so attempt 2's classification
// cannot match attempt 1's output.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next = 0
	r.full = false
	for i := range r.lines {
		r.lines[i] = ""
	}
}

// errorLineRe picks the lines worth showing a user out of a failing run's
// output.
var errorLineRe = regexp.MustCompile(`(?i)\berror\b|\bfailed\b|\bfailure\b|\binvalid\b|\bcannot\b|\bunable\b|no such file`)

// Summary returns up to n of the most recent error-looking lines, for the
// short failure report. When nothing matches the keyword filter, the plain
// tail is returned instead so the user is never shown an empty reason.
func (r *Ring) Summary(n int) []string {
	lines := r.Lines()
	var matched []string
	for _, l := range lines {
		if errorLineRe.MatchString(l) {
			matched = append(matched, l)
		}
	}
	if len(matched) == 0 {
		matched = lines
	}
	if n > 0 && len(matched) > n {
		matched = matched[len(matched)-n:]
	}
	return matched
}
