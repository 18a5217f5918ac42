// Package planner is the core decision engine: it combines a probed
// MediaProfile, the user's Options, and the detected capability Set into a
// fully resolved Plan for one encoding attempt.
//
// Build is pure. The same profile, options, and capabilities always produce
// the same Plan, and nothing here touches the filesystem or spawns a
// process — which is what makes the decision matrix testable without ffmpeg
// installed.
//
// Plans are immutable. Hardware fallback never patches an existing Plan; the
// orchestrator clones the options, flips the force-software switches, and
// builds a new one.
package planner
