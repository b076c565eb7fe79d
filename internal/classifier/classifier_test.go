package classifier

import (
	"math"
	"strings"
	"testing"

	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/google/go-cmp/cmp"
)

func artifact(objective, problem string, options []string, assumptions ...string) *decision.Artifact {
	a := &decision.Artifact{Objective: objective, ProblemStatement: problem}
	for _, o := range options {
		a.Options = append(a.Options, decision.Option{Text: o})
	}
	for _, as := range assumptions {
		a.Assumptions = append(a.Assumptions, decision.Assumption{Text: as})
	}
	return a
}

// --- Vocabulary ---

func TestDefaultVocabulary_CoversBothLocales(t *testing.T) {
	v := DefaultVocabulary()
	tables := map[string]Terms{
		"effect": v.Effect, "constraint": v.Constraint, "implementation": v.Implementation,
		"status_quo": v.StatusQuo, "causal": v.Causal, "outcome": v.Outcome, "hedge": v.Hedge,
	}
	for name, terms := range tables {
		for _, loc := range []string{"en", "es"} {
			if len(terms[loc]) == 0 {
				t.Errorf("table %s has no %s terms", name, loc)
			}
		}
	}
}

func TestDefaultVocabulary_ReturnsCopy(t *testing.T) {
	v := DefaultVocabulary()
	v.Effect["en"][0] = "mutated"

	if DefaultVocabulary().Effect["en"][0] == "mutated" {
		t.Error("DefaultVocabulary() must not expose the shared tables")
	}
}

func TestParseVocabulary_RejectsMissingLocale(t *testing.T) {
	doc := `
effect: {en: [reduce]}
constraint: {en: [cost], es: [costo]}
implementation: {en: [tool], es: [herramienta]}
status_quo: {en: [keep], es: [mantener]}
causal: {en: [because], es: [porque]}
outcome: {en: [result], es: [resultado]}
hedge: {en: [maybe], es: [quiza]}
`
	_, err := ParseVocabulary([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), `"effect" has no "es" terms`) {
		t.Errorf("ParseVocabulary() error = %v", err)
	}
}

func TestParseVocabulary_LowercasesTerms(t *testing.T) {
	doc := `
effect: {en: [REDUCE], es: [Reducir]}
constraint: {en: [cost], es: [costo]}
implementation: {en: [tool], es: [herramienta]}
status_quo: {en: [keep], es: [mantener]}
causal: {en: [because], es: [porque]}
outcome: {en: [result], es: [resultado]}
hedge: {en: [maybe], es: [quiza]}
`
	v, err := ParseVocabulary([]byte(doc))
	if err != nil {
		t.Fatalf("ParseVocabulary() error: %v", err)
	}
	if v.Effect["en"][0] != "reduce" || v.Effect["es"][0] != "reducir" {
		t.Errorf("Effect = %v, want lowercased terms", v.Effect)
	}
}

// --- DeriveFlags ---

func TestDeriveFlags_VendorToolObjective(t *testing.T) {
	a := artifact("Select a vendor tool", "We need a new CRM", []string{"Tool A", "Tool B"})

	want := Flags{
		ObjectivePresent:          true,
		ObjectiveIsEffect:         false,
		ObjectiveHasConstraints:   false,
		OptionsAreImplementations: true,
		StatusQuoExcluded:         true,
		AssumptionsAreOutcomes:    false,
		AssumptionsAreGuaranteed:  false,
		CausalLinkExplicit:        false,
	}
	if diff := cmp.Diff(want, DeriveFlags(a)); diff != "" {
		t.Errorf("DeriveFlags() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveFlags_GuaranteedSuccessAssumption(t *testing.T) {
	a := artifact("Increase revenue", "Sales are flat", []string{"Plan A", "Plan B"}, "This will be a success")
	f := DeriveFlags(a)

	if f.OptionsAreImplementations {
		t.Error("OptionsAreImplementations = true, want false")
	}
	if !f.AssumptionsAreOutcomes {
		t.Error("AssumptionsAreOutcomes = false, want true")
	}
	if !f.AssumptionsAreGuaranteed {
		t.Error("AssumptionsAreGuaranteed = false, want true")
	}
	if f.CausalLinkExplicit {
		t.Error("CausalLinkExplicit = true, want false")
	}
}

func TestDeriveFlags_EmptyAssumptionsAreNotGuaranteed(t *testing.T) {
	f := DeriveFlags(artifact("Reduce cost", "p", []string{"a", "b"}))
	if f.AssumptionsAreGuaranteed {
		t.Error("AssumptionsAreGuaranteed = true for empty assumptions, want false")
	}
}

func TestDeriveFlags_AnyHedgeBreaksGuarantee(t *testing.T) {
	f := DeriveFlags(artifact("o", "p", []string{"a", "b"},
		"Customers will renew", "Maybe the market grows"))
	if f.AssumptionsAreGuaranteed {
		t.Error("AssumptionsAreGuaranteed = true with a hedged assumption, want false")
	}
}

func TestDeriveFlags_StatusQuoOffered(t *testing.T) {
	f := DeriveFlags(artifact("o", "p", []string{"Migrate to a new platform", "Keep the existing setup"}))
	if f.StatusQuoExcluded {
		t.Error("StatusQuoExcluded = true with a keep option, want false")
	}
	if !f.OptionsAreImplementations {
		t.Error("OptionsAreImplementations = false, want true")
	}
}

func TestDeriveFlags_CausalNeedsObjectiveAndConnective(t *testing.T) {
	tests := []struct {
		name      string
		objective string
		problem   string
		want      bool
	}{
		{"because", "Reduce churn", "Churn is high because onboarding is slow", true},
		{"due to", "Reduce churn", "Churn is high due to pricing", true},
		{"spanish", "Reducir la rotación", "La rotación sube debido a los precios", true},
		{"no connective", "Reduce churn", "Churn is high", false},
		{"missing objective", "", "Churn is high because onboarding is slow", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DeriveFlags(artifact(tt.objective, tt.problem, []string{"a", "b"}))
			if f.CausalLinkExplicit != tt.want {
				t.Errorf("CausalLinkExplicit = %v, want %v", f.CausalLinkExplicit, tt.want)
			}
		})
	}
}

func TestDeriveFlags_SpanishVocabulary(t *testing.T) {
	a := artifact(
		"Reducir el costo de adquisición",
		"Necesitamos crecer",
		[]string{"Contratar un proveedor", "Comprar una herramienta"},
		"El resultado será un éxito",
	)
	f := DeriveFlags(a)

	checks := map[string]bool{
		"ObjectiveIsEffect":         f.ObjectiveIsEffect,
		"ObjectiveHasConstraints":   f.ObjectiveHasConstraints,
		"OptionsAreImplementations": f.OptionsAreImplementations,
		"AssumptionsAreOutcomes":    f.AssumptionsAreOutcomes,
		"AssumptionsAreGuaranteed":  f.AssumptionsAreGuaranteed,
		"StatusQuoExcluded":         f.StatusQuoExcluded,
	}
	for name, got := range checks {
		if !got {
			t.Errorf("%s = false, want true", name)
		}
	}
}

func TestDeriveFlags_WordBoundaryTerms(t *testing.T) {
	// "window" and "closed" must not count as win/lose outcomes.
	f := DeriveFlags(artifact("o", "p", []string{"a", "b"}, "The window closed early"))
	if f.AssumptionsAreOutcomes {
		t.Error("AssumptionsAreOutcomes = true for window/closed, want false")
	}
}

func TestDeriveFlags_SymbolOnlyObjectiveIsPresent(t *testing.T) {
	for _, objective := range []string{"???", "—", "🚀"} {
		t.Run(objective, func(t *testing.T) {
			a := artifact(objective, "We need a new CRM", []string{"Tool A", "Tool B"})
			f := DeriveFlags(a)
			if !f.ObjectivePresent {
				t.Error("ObjectivePresent = false, want true")
			}
			if f.ObjectiveIsEffect {
				t.Error("ObjectiveIsEffect = true, want false")
			}

			got := DetectPatterns(a.Decision(), f)
			if diff := cmp.Diff([]Pattern{ObjectiveVagueness}, got); diff != "" {
				t.Errorf("DetectPatterns() mismatch (-want +got):\n%s", diff)
			}

			causal := DeriveFlags(artifact(objective, "Sales dropped because leads are lost", []string{"a", "b"}))
			if !causal.CausalLinkExplicit {
				t.Error("CausalLinkExplicit = false, want true")
			}
		})
	}
}

func TestDeriveFlags_ConstraintTermsMatchInsideWords(t *testing.T) {
	tests := []string{"Reduce downtime", "Derisk the launch", "Acortar el plazo de entrega"}
	for _, objective := range tests {
		if f := DeriveFlags(artifact(objective, "p", []string{"a", "b"})); !f.ObjectiveHasConstraints {
			t.Errorf("ObjectiveHasConstraints(%q) = false, want true", objective)
		}
	}
}

// --- Signals ---

func TestObserveSignals_CopiesEveryField(t *testing.T) {
	f := Flags{
		ObjectivePresent: true, ObjectiveIsEffect: true, ObjectiveHasConstraints: true,
		OptionsAreImplementations: true, StatusQuoExcluded: true, AssumptionsAreOutcomes: true,
		AssumptionsAreGuaranteed: true, CausalLinkExplicit: true,
	}
	if diff := cmp.Diff(Flags(ObserveSignals(f)), f); diff != "" {
		t.Errorf("ObserveSignals() mismatch (-want +got):\n%s", diff)
	}
	if ObserveSignals(Flags{}) != (Signals{}) {
		t.Error("ObserveSignals(zero) should be all false")
	}
}

func TestSignalsFromRaw_OnlyExplicitTrue(t *testing.T) {
	raw := map[string]any{
		"objective_present":           true,
		"objective_is_effect":         "true",
		"objective_has_constraints":   1.0,
		"options_are_implementations": map[string]any{},
		"status_quo_excluded":         false,
		"assumptions_are_outcomes":    nil,
		"causal_link_explicit":        []any{true},
		"unknown":                     true,
	}
	want := Signals{ObjectivePresent: true}
	if diff := cmp.Diff(want, SignalsFromRaw(raw)); diff != "" {
		t.Errorf("SignalsFromRaw() mismatch (-want +got):\n%s", diff)
	}
	if SignalsFromRaw(nil) != (Signals{}) {
		t.Error("SignalsFromRaw(nil) should be all false")
	}
}

func TestSignalNames_MatchJSONTags(t *testing.T) {
	if len(SignalNames) != 8 {
		t.Fatalf("SignalNames has %d entries, want 8", len(SignalNames))
	}
	raw := make(map[string]any, len(SignalNames))
	for _, n := range SignalNames {
		raw[n] = true
	}
	s := SignalsFromRaw(raw)
	if s.Flags() != (Flags{true, true, true, true, true, true, true, true}) {
		t.Errorf("SignalsFromRaw(all names) = %+v, want all true", s)
	}
}

// --- DetectPatterns ---

func TestDetectPatterns(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  []Pattern
	}{
		{
			name:  "clear decision",
			flags: Flags{ObjectivePresent: true, ObjectiveIsEffect: true, ObjectiveHasConstraints: true},
			want:  []Pattern{},
		},
		{
			name: "means before ends with effect objective",
			flags: Flags{
				ObjectivePresent: true, ObjectiveIsEffect: true,
				OptionsAreImplementations: true, StatusQuoExcluded: true,
			},
			want: []Pattern{MeansBeforeEnds},
		},
		{
			name:  "missing objective triggers both",
			flags: Flags{OptionsAreImplementations: true, StatusQuoExcluded: true},
			want:  []Pattern{MeansBeforeEnds, ObjectiveVagueness},
		},
		{
			name: "causal link blocks means before ends",
			flags: Flags{
				ObjectivePresent: true, ObjectiveIsEffect: true,
				OptionsAreImplementations: true, StatusQuoExcluded: true, CausalLinkExplicit: true,
			},
			want: []Pattern{},
		},
		{
			name: "outcome as validation",
			flags: Flags{
				ObjectivePresent: true, ObjectiveIsEffect: true,
				AssumptionsAreOutcomes: true, AssumptionsAreGuaranteed: true,
			},
			want: []Pattern{OutcomeAsValidation},
		},
		{
			name: "vagueness and outcome together keep rule order",
			flags: Flags{
				ObjectivePresent: true, AssumptionsAreOutcomes: true, AssumptionsAreGuaranteed: true,
			},
			want: []Pattern{ObjectiveVagueness, OutcomeAsValidation},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectPatterns(decision.Decision{}, tt.flags)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DetectPatterns() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectPatterns_NeverNil(t *testing.T) {
	got := DetectPatterns(decision.Decision{}, Flags{ObjectivePresent: true, ObjectiveIsEffect: true, ObjectiveHasConstraints: true})
	if got == nil {
		t.Error("DetectPatterns() = nil, want empty slice")
	}
}

// --- SelectPrimary ---

func TestSelectPrimary_OrderInvariant(t *testing.T) {
	a, _ := SelectPrimary([]Pattern{ObjectiveVagueness, OutcomeAsValidation})
	b, _ := SelectPrimary([]Pattern{OutcomeAsValidation, ObjectiveVagueness})
	if a != OutcomeAsValidation || b != OutcomeAsValidation {
		t.Errorf("SelectPrimary = %q / %q, want %q for both", a, b, OutcomeAsValidation)
	}
}

func TestSelectPrimary(t *testing.T) {
	tests := []struct {
		in     []Pattern
		want   Pattern
		wantOK bool
	}{
		{nil, "", false},
		{[]Pattern{}, "", false},
		{[]Pattern{ObjectiveVagueness}, ObjectiveVagueness, true},
		{[]Pattern{ObjectiveVagueness, MeansBeforeEnds}, MeansBeforeEnds, true},
		{[]Pattern{MeansBeforeEnds, ObjectiveVagueness, OutcomeAsValidation}, OutcomeAsValidation, true},
		{[]Pattern{"UNKNOWN"}, "", false},
	}
	for _, tt := range tests {
		got, ok := SelectPrimary(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SelectPrimary(%v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPriority_Order(t *testing.T) {
	want := []Pattern{OutcomeAsValidation, MeansBeforeEnds, ObjectiveVagueness}
	if diff := cmp.Diff(want, Priority()); diff != "" {
		t.Errorf("Priority() mismatch (-want +got):\n%s", diff)
	}
}

func TestPattern_Valid(t *testing.T) {
	if !MeansBeforeEnds.Valid() {
		t.Error("MeansBeforeEnds.Valid() = false")
	}
	if Pattern("default").Valid() {
		t.Error(`Pattern("default").Valid() = true`)
	}
}

// --- Intensity ---

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
		signals  Signals
		want     float64
	}{
		{"no patterns", nil, Signals{ObjectiveIsEffect: true, AssumptionsAreOutcomes: true}, 0},
		{"vagueness only", []Pattern{ObjectiveVagueness}, Signals{}, 0.3},
		{"means before ends", []Pattern{MeansBeforeEnds}, Signals{}, 0.5},
		{"max not sum", []Pattern{ObjectiveVagueness, MeansBeforeEnds}, Signals{}, 0.5},
		{"outcome dominates", []Pattern{ObjectiveVagueness, OutcomeAsValidation}, Signals{}, 0.8},
		{"boost A", []Pattern{MeansBeforeEnds}, Signals{ObjectiveIsEffect: true}, 0.6},
		{"boost A blocked by constraints", []Pattern{MeansBeforeEnds}, Signals{ObjectiveIsEffect: true, ObjectiveHasConstraints: true}, 0.5},
		{"boost B", []Pattern{ObjectiveVagueness}, Signals{AssumptionsAreOutcomes: true}, 0.4},
		{"boost B blocked by causal link", []Pattern{ObjectiveVagueness}, Signals{AssumptionsAreOutcomes: true, CausalLinkExplicit: true}, 0.3},
		{"both boosts", []Pattern{MeansBeforeEnds}, Signals{ObjectiveIsEffect: true, AssumptionsAreOutcomes: true}, 0.7},
		{"clamped at one", []Pattern{OutcomeAsValidation}, Signals{ObjectiveIsEffect: true, AssumptionsAreOutcomes: true}, 1.0},
		{"unknown pattern scores zero", []Pattern{"UNKNOWN"}, Signals{ObjectiveIsEffect: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intensity(tt.patterns, tt.signals)
			if !almostEqual(got, tt.want) {
				t.Errorf("Intensity() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Intensity() = %v, out of [0,1]", got)
			}
		})
	}
}

// --- DeriveBand ---

func TestDeriveBand_Boundaries(t *testing.T) {
	tests := []struct {
		in   float64
		want Band
	}{
		{0, NoHint},
		{0.149999, NoHint},
		{0.15, ClarificationNeeded},
		{0.3, ClarificationNeeded},
		{0.45, ClarificationNeeded},
		{0.450001, StructurallyUnclear},
		{1, StructurallyUnclear},
		{-3, NoHint},
		{7, StructurallyUnclear},
		{math.NaN(), NoHint},
		{math.Inf(1), StructurallyUnclear},
	}
	for _, tt := range tests {
		if got := DeriveBand(tt.in); got != tt.want {
			t.Errorf("DeriveBand(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDeriveBand_DependsOnlyOnIntensity(t *testing.T) {
	// Different pattern sets with equal intensity land in the same band.
	a := Intensity([]Pattern{MeansBeforeEnds}, Signals{})
	b := Intensity([]Pattern{ObjectiveVagueness, MeansBeforeEnds}, Signals{})
	if a != b {
		t.Fatalf("intensities differ: %v vs %v", a, b)
	}
	if DeriveBand(a) != DeriveBand(b) {
		t.Errorf("DeriveBand differs for equal intensity %v", a)
	}
}

func TestBands_Order(t *testing.T) {
	want := []Band{NoHint, ClarificationNeeded, StructurallyUnclear}
	if diff := cmp.Diff(want, Bands()); diff != "" {
		t.Errorf("Bands() mismatch (-want +got):\n%s", diff)
	}
}
