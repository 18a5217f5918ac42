// Package events carries progress and completion notifications from an
// in-flight conversion to whoever is watching it (the CLI display, a test).
// The channel is uni-directional and fire-and-forget: a superseded progress
// event may be dropped, a completion event may not.
package events

import "github.com/ExploreAritra/format-flex/internal/progress"

// Event type constants for kelindar/event.
const (
	TypeProgress uint32 = iota + 1
	TypeState
	TypeDone
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ProgressEvent is one translated telemetry sample. Pass is 0 for a
// single-pass run, 1 or 2 during two-pass encoding; Attempt is 1 or 2.
type ProgressEvent struct {
	Attempt int
	Pass    int
	Report  progress.Report
	Speed   float64
}

// Type returns the event type identifier for ProgressEvent.
func (e ProgressEvent) Type() uint32 { return TypeProgress }

// StateEvent announces an orchestrator state transition.
type StateEvent struct {
	State   string // "probing", "planning", "encoding", "done", "failed", "cancelled"
	Attempt int
	Detail  string
}

// Type returns the event type identifier for StateEvent.
func (e StateEvent) Type() uint32 { return TypeState }

// DoneEvent is the terminal notification for a conversion run. Exactly one
// is published per run.
type DoneEvent struct {
	Success    bool
	Cancelled  bool
	OutputPath string
	Reason     string
}

// Type returns the event type identifier for DoneEvent.
func (e DoneEvent) Type() uint32 { return TypeDone }
