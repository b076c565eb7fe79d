// Package classifier turns a validated decision artifact into structural
// flags, signals, anti-patterns and a hint intensity.
//
// Every function in this package is pure: no I/O, no clock, no randomness.
// When the evidence for a flag is ambiguous the flag stays false.
package classifier

import (
	"strings"

	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/textnorm"
)

// Flags are the eight structural booleans derived from an artifact's text.
type Flags struct {
	ObjectivePresent          bool `json:"objective_present"`
	ObjectiveIsEffect         bool `json:"objective_is_effect"`
	ObjectiveHasConstraints   bool `json:"objective_has_constraints"`
	OptionsAreImplementations bool `json:"options_are_implementations"`
	StatusQuoExcluded         bool `json:"status_quo_excluded"`
	AssumptionsAreOutcomes    bool `json:"assumptions_are_outcomes"`
	AssumptionsAreGuaranteed  bool `json:"assumptions_are_guaranteed"`
	CausalLinkExplicit        bool `json:"causal_link_explicit"`
}

// DeriveFlags applies the keyword tables to the artifact.
func DeriveFlags(a *decision.Artifact) Flags {
	// Presence is judged on the raw text: an objective made only of
	// punctuation or symbols normalizes to "" but is still present.
	hasObjective := strings.TrimSpace(a.Objective) != ""
	hasProblem := strings.TrimSpace(a.ProblemStatement) != ""

	objective := textnorm.Normalize(a.Objective)
	problem := textnorm.Normalize(a.ProblemStatement)

	options := make([]string, len(a.Options))
	for i, o := range a.Options {
		options[i] = textnorm.Normalize(o.Text)
	}
	assumptions := make([]string, len(a.Assumptions))
	for i, as := range a.Assumptions {
		assumptions[i] = textnorm.Normalize(as.Text)
	}

	return Flags{
		ObjectivePresent:          hasObjective,
		ObjectiveIsEffect:         textnorm.ContainsAny(objective, matchers.effect),
		ObjectiveHasConstraints:   textnorm.ContainsAny(objective, matchers.constraint),
		OptionsAreImplementations: anyContains(options, matchers.implementation),
		StatusQuoExcluded:         !anyContains(options, matchers.statusQuo),
		AssumptionsAreOutcomes:    anyContains(assumptions, matchers.outcome),
		AssumptionsAreGuaranteed:  len(assumptions) > 0 && !anyContains(assumptions, matchers.hedge),
		CausalLinkExplicit: hasObjective && hasProblem &&
			textnorm.ContainsAny(problem, matchers.causal),
	}
}

// anyContains reports whether at least one text contains a term.
func anyContains(texts []string, terms []string) bool {
	for _, t := range texts {
		if textnorm.ContainsAny(t, terms) {
			return true
		}
	}
	return false
}
