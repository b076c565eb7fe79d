package classifier

import "github.com/HendryAvila/decisionsuite/internal/decision"

// Pattern names a structural anti-pattern in a decision.
type Pattern string

const (
	OutcomeAsValidation Pattern = "OUTCOME_AS_VALIDATION"
	MeansBeforeEnds     Pattern = "MEANS_BEFORE_ENDS"
	ObjectiveVagueness  Pattern = "OBJECTIVE_VAGUENESS"
)

// priority is the fixed order used to pick a primary pattern, highest first.
var priority = [...]Pattern{OutcomeAsValidation, MeansBeforeEnds, ObjectiveVagueness}

// Priority returns the pattern priority order, highest first.
func Priority() []Pattern {
	return priority[:]
}

// rule pairs a pattern with the predicate that detects it.
type rule struct {
	pattern Pattern
	matches func(d decision.Decision, f Flags) bool
}

// rules are evaluated in this order; DetectPatterns preserves it.
var rules = [...]rule{
	{
		pattern: MeansBeforeEnds,
		matches: func(_ decision.Decision, f Flags) bool {
			return f.OptionsAreImplementations &&
				!f.CausalLinkExplicit &&
				f.StatusQuoExcluded &&
				!f.ObjectiveHasConstraints &&
				(!f.ObjectivePresent || (f.ObjectiveIsEffect && !f.ObjectiveHasConstraints))
		},
	},
	{
		pattern: ObjectiveVagueness,
		matches: func(_ decision.Decision, f Flags) bool {
			return !f.ObjectivePresent || !f.ObjectiveIsEffect
		},
	},
	{
		pattern: OutcomeAsValidation,
		matches: func(_ decision.Decision, f Flags) bool {
			return !f.OptionsAreImplementations &&
				f.AssumptionsAreOutcomes &&
				f.AssumptionsAreGuaranteed &&
				!f.CausalLinkExplicit
		},
	},
}

// DetectPatterns evaluates every rule independently. Patterns are not
// mutually exclusive; the result is in rule order, never nil.
func DetectPatterns(d decision.Decision, f Flags) []Pattern {
	found := make([]Pattern, 0, len(rules))
	for _, r := range rules {
		if r.matches(d, f) {
			found = append(found, r.pattern)
		}
	}
	return found
}

// SelectPrimary returns the highest-priority pattern present in patterns.
// The order of patterns does not matter. ok is false when none is present.
func SelectPrimary(patterns []Pattern) (primary Pattern, ok bool) {
	if len(patterns) == 0 {
		return "", false
	}
	present := make(map[Pattern]bool, len(patterns))
	for _, p := range patterns {
		present[p] = true
	}
	for _, p := range priority {
		if present[p] {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the known patterns.
func (p Pattern) Valid() bool {
	for _, known := range priority {
		if p == known {
			return true
		}
	}
	return false
}
