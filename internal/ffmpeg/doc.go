// Package ffmpeg renders encode plans into ffmpeg argument vectors and runs
// the resulting processes.
//
// The builder is a pure rendering step: a [planner.Plan] plus input/output
// paths and a pass selector become one []string following a fixed skeleton
// (preamble, pre-input hints, input, filters, stream maps, codec sections,
// container flags, output). The executor owns the process lifecycle: it
// wires -progress pipe:1 telemetry into a callback, ring-buffers stderr for
// later diagnosis, and on cancellation interrupts the process gracefully
// before killing it.
//
// Nothing in this package decides WHAT to encode; that is the planner's job.
// Nothing here retries either; the pipeline package sequences attempts.
package ffmpeg
