package decision

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// CodeValidation tags every validation failure surfaced to callers.
const CodeValidation = "VALIDATION_ERROR"

// MinOptions is the minimum number of options an artifact must offer.
const MinOptions = 2

// knownFields is the closed set of accepted top-level keys.
var knownFields = map[string]bool{
	"objective":         true,
	"problem_statement": true,
	"options":           true,
	"assumptions":       true,
	"hypotheses":        true,
}

// ValidationError lists every constraint a payload violated.
type ValidationError struct {
	Violations []string
}

// Error joins the violations into a single message.
func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// Code returns CodeValidation.
func (e *ValidationError) Code() string {
	return CodeValidation
}

// Validate checks the shape of a raw JSON payload and builds an Artifact.
// It never stops at the first problem: the returned *ValidationError holds
// one message per violated constraint, in a stable order.
func Validate(raw []byte) (*Artifact, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, &ValidationError{Violations: []string{"request body must be a JSON object"}}
	}

	v := &validator{}

	var unknown []string
	for k := range fields {
		if !knownFields[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		v.addf("unknown field %q", k)
	}

	a := &Artifact{
		Objective:        v.requiredText(fields["objective"], "objective"),
		ProblemStatement: v.requiredText(fields["problem_statement"], "problem_statement"),
	}
	a.Options = v.options(fields["options"])
	a.Assumptions = v.assumptions(fields["assumptions"])
	a.Hypotheses = v.hypotheses(fields["hypotheses"])

	if len(v.violations) > 0 {
		return nil, &ValidationError{Violations: v.violations}
	}
	return a, nil
}

// --- Private helpers ---

type validator struct {
	violations []string
}

func (v *validator) addf(format string, args ...any) {
	v.violations = append(v.violations, fmt.Sprintf(format, args...))
}

// requiredText decodes a non-empty string. Whitespace-only counts as empty.
func (v *validator) requiredText(raw json.RawMessage, path string) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil || strings.TrimSpace(s) == "" {
		v.addf("%s: must be a non-empty string", path)
		return ""
	}
	return s
}

// optionalText decodes a string that may be absent or null.
func (v *validator) optionalText(raw json.RawMessage, path string) string {
	if raw == nil {
		return ""
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		v.addf("%s: must be a string", path)
		return ""
	}
	if s == nil {
		return ""
	}
	return *s
}

// list decodes an array of objects. ok is false when the value is present
// but not an array; a missing or null value yields (nil, true).
func (v *validator) list(raw json.RawMessage, path string) ([]map[string]json.RawMessage, bool) {
	if raw == nil {
		return nil, true
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		v.addf("%s: must be an array", path)
		return nil, false
	}

	out := make([]map[string]json.RawMessage, len(items))
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			v.addf("%s[%d]: must be an object", path, i)
			continue
		}
		if obj == nil {
			obj = map[string]json.RawMessage{}
		}
		out[i] = obj
	}
	return out, true
}

func (v *validator) options(raw json.RawMessage) []Option {
	items, ok := v.list(raw, "options")
	if !ok {
		return nil
	}
	if len(items) < MinOptions {
		v.addf("options: at least %d options are required, got %d", MinOptions, len(items))
	}

	options := make([]Option, 0, len(items))
	for i, obj := range items {
		if obj == nil {
			continue
		}
		path := fmt.Sprintf("options[%d]", i)
		options = append(options, Option{
			Text:      v.requiredText(obj["text"], path+".text"),
			TradeOffs: v.optionalText(obj["trade_offs"], path+".trade_offs"),
		})
	}
	return options
}

func (v *validator) assumptions(raw json.RawMessage) []Assumption {
	items, _ := v.list(raw, "assumptions")
	assumptions := make([]Assumption, 0, len(items))
	for i, obj := range items {
		if obj == nil {
			continue
		}
		path := fmt.Sprintf("assumptions[%d]", i)
		assumptions = append(assumptions, Assumption{
			Text:     v.requiredText(obj["text"], path+".text"),
			Evidence: v.optionalText(obj["evidence"], path+".evidence"),
		})
	}
	return assumptions
}

func (v *validator) hypotheses(raw json.RawMessage) []Hypothesis {
	items, _ := v.list(raw, "hypotheses")
	hypotheses := make([]Hypothesis, 0, len(items))
	for i, obj := range items {
		if obj == nil {
			continue
		}
		hypotheses = append(hypotheses, Hypothesis{
			Text: v.requiredText(obj["text"], fmt.Sprintf("hypotheses[%d].text", i)),
		})
	}
	return hypotheses
}
