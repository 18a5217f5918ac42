// Package pipeline owns one conversion from probe to placed artifact.
//
// A Session walks a fixed state machine: probe the input, build the plan,
// run the encode (one or two passes), and validate the result. A hardware
// attempt that fails with a recognizable acceleration error is retried
// exactly once with a freshly built software plan; every other failure is
// terminal. Cancellation short-circuits any state and cleans up partial
// output.
//
// The Session is the single writer of all run state. The UI observes it
// through the event bus only.
package pipeline
