package classifier

// Band is the discrete hint level derived from an intensity.
type Band string

const (
	NoHint              Band = "NO_HINT"
	ClarificationNeeded Band = "CLARIFICATION_NEEDED"
	StructurallyUnclear Band = "STRUCTURALLY_UNCLEAR"
)

// Band thresholds. Both boundaries belong to ClarificationNeeded.
const (
	ClarificationThreshold = 0.15
	UnclearThreshold       = 0.45
)

// Bands lists every band in increasing intensity.
func Bands() []Band {
	return []Band{NoHint, ClarificationNeeded, StructurallyUnclear}
}

// DeriveBand maps an intensity to its band. The input is clamped to [0, 1]
// first; NaN counts as 0.
func DeriveBand(intensity float64) Band {
	x := clamp01(intensity)
	switch {
	case x < ClarificationThreshold:
		return NoHint
	case x <= UnclearThreshold:
		return ClarificationNeeded
	default:
		return StructurallyUnclear
	}
}
