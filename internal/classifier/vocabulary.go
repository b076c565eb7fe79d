package classifier

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// Terms maps a locale code to its keyword list.
type Terms map[string][]string

// Vocabulary holds every keyword table used by DeriveFlags.
type Vocabulary struct {
	Effect         Terms `yaml:"effect" json:"effect"`
	Constraint     Terms `yaml:"constraint" json:"constraint"`
	Implementation Terms `yaml:"implementation" json:"implementation"`
	StatusQuo      Terms `yaml:"status_quo" json:"status_quo"`
	Causal         Terms `yaml:"causal" json:"causal"`
	Outcome        Terms `yaml:"outcome" json:"outcome"`
	Hedge          Terms `yaml:"hedge" json:"hedge"`
}

// vocabularyLocales are the locales every table must cover.
var vocabularyLocales = []string{"es", "en"}

// vocab is parsed once at init and never written afterwards.
var vocab = mustParseVocabulary(vocabularyYAML)

// matchers holds each table flattened across locales.
var matchers = struct {
	effect, constraint, implementation, statusQuo, causal, outcome, hedge []string
}{
	effect:         vocab.Effect.all(),
	constraint:     vocab.Constraint.all(),
	implementation: vocab.Implementation.all(),
	statusQuo:      vocab.StatusQuo.all(),
	causal:         vocab.Causal.all(),
	outcome:        vocab.Outcome.all(),
	hedge:          vocab.Hedge.all(),
}

// DefaultVocabulary returns a copy of the embedded keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Effect:         vocab.Effect.clone(),
		Constraint:     vocab.Constraint.clone(),
		Implementation: vocab.Implementation.clone(),
		StatusQuo:      vocab.StatusQuo.clone(),
		Causal:         vocab.Causal.clone(),
		Outcome:        vocab.Outcome.clone(),
		Hedge:          vocab.Hedge.clone(),
	}
}

// ParseVocabulary decodes and checks a YAML vocabulary document.
// Every table must list at least one term for every supported locale.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("classifier: parse vocabulary: %w", err)
	}

	tables := map[string]Terms{
		"effect":         v.Effect,
		"constraint":     v.Constraint,
		"implementation": v.Implementation,
		"status_quo":     v.StatusQuo,
		"causal":         v.Causal,
		"outcome":        v.Outcome,
		"hedge":          v.Hedge,
	}
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		terms := tables[name]
		for _, loc := range vocabularyLocales {
			if len(terms[loc]) == 0 {
				return Vocabulary{}, fmt.Errorf("classifier: vocabulary table %q has no %q terms", name, loc)
			}
			for i, term := range terms[loc] {
				if strings.TrimSpace(term) == "" {
					return Vocabulary{}, fmt.Errorf("classifier: vocabulary table %q has an empty %q term", name, loc)
				}
				terms[loc][i] = strings.ToLower(term)
			}
		}
	}
	return v, nil
}

func mustParseVocabulary(data []byte) Vocabulary {
	v, err := ParseVocabulary(data)
	if err != nil {
		panic(err)
	}
	return v
}

// all flattens the table in locale order.
func (t Terms) all() []string {
	var out []string
	for _, loc := range vocabularyLocales {
		out = append(out, t[loc]...)
	}
	return out
}

func (t Terms) clone() Terms {
	out := make(Terms, len(t))
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	return out
}
