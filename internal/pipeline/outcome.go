package pipeline

// FailureKind classifies why a conversion did not succeed.
type FailureKind int

const (
	FailNone FailureKind = iota
	// FailHardware: the terminal attempt used hardware acceleration and
	// failed in a way the retry heuristic did not recognize.
	FailHardware
	// FailSoftware: a pure software attempt failed; terminal.
	FailSoftware
	// FailValidation: the process exited cleanly but the output artifact
	// is missing or empty.
	FailValidation
)

// String returns a short label for logs.
func (k FailureKind) String() string {
	switch k {
	case FailNone:
		return "none"
	case FailHardware:
		return "hardware encode"
	case FailSoftware:
		return "software encode"
	case FailValidation:
		return "output validation"
	}
	return "unknown"
}

// Outcome is the terminal result of one conversion run.
type Outcome struct {
	Success   bool
	Cancelled bool
	Kind      FailureKind
	// ExitKnown is false when the last attempt's process never delivered
	// an exit code.
	ExitKnown bool
	// Tail is a bounded summary of the last attempt's diagnostic output.
	Tail string
	// OutputPath is set on success; the placed final artifact.
	OutputPath string
	// Attempts is how many encode attempts ran (0 when cancelled before
	// encoding started).
	Attempts int
	// Fallback reports whether the software retry was taken.
	Fallback bool
}
