// Package decision holds the decision artifact submitted for classification
// and its structural validation.
//
// An Artifact is the only input of the classification pipeline. It is built
// exclusively by Validate, so every downstream stage can assume a
// well-formed value and stay total.
package decision

import "strings"

// Option is one alternative under consideration.
type Option struct {
	Text      string `json:"text"`
	TradeOffs string `json:"trade_offs,omitempty"`
}

// Assumption is a belief the decision depends on.
type Assumption struct {
	Text     string `json:"text"`
	Evidence string `json:"evidence,omitempty"`
}

// Hypothesis is a testable statement attached to the decision.
type Hypothesis struct {
	Text string `json:"text"`
}

// Artifact is a validated decision description.
type Artifact struct {
	Objective        string       `json:"objective"`
	ProblemStatement string       `json:"problem_statement"`
	Options          []Option     `json:"options"`
	Assumptions      []Assumption `json:"assumptions"`
	Hypotheses       []Hypothesis `json:"hypotheses"`
}

// Decision is the reduced view of an Artifact used by pattern detection.
type Decision struct {
	Decision    string   `json:"decision"`
	Context     string   `json:"context"`
	Objective   string   `json:"objective"`
	Options     []string `json:"options"`
	Assumptions []string `json:"assumptions"`
}

// Decision derives the reduced view. Context collects option trade-offs and
// assumption evidence, one entry per line.
func (a *Artifact) Decision() Decision {
	d := Decision{
		Decision:    a.ProblemStatement,
		Objective:   a.Objective,
		Options:     make([]string, 0, len(a.Options)),
		Assumptions: make([]string, 0, len(a.Assumptions)),
	}

	var context []string
	for _, o := range a.Options {
		d.Options = append(d.Options, o.Text)
		if o.TradeOffs != "" {
			context = append(context, o.TradeOffs)
		}
	}
	for _, as := range a.Assumptions {
		d.Assumptions = append(d.Assumptions, as.Text)
		if as.Evidence != "" {
			context = append(context, as.Evidence)
		}
	}
	d.Context = strings.Join(context, "\n")
	return d
}

// Text concatenates every free-text field of the artifact. It is the input
// of language detection.
func (a *Artifact) Text() string {
	parts := []string{a.Objective, a.ProblemStatement}
	for _, o := range a.Options {
		parts = append(parts, o.Text, o.TradeOffs)
	}
	for _, as := range a.Assumptions {
		parts = append(parts, as.Text, as.Evidence)
	}
	for _, h := range a.Hypotheses {
		parts = append(parts, h.Text)
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
