package suite

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/HendryAvila/decisionsuite/internal/classifier"
	"github.com/HendryAvila/decisionsuite/internal/decision"
	"github.com/HendryAvila/decisionsuite/internal/locale"
)

const vagueVendorObjective = `{
	"objective": "Select a vendor tool",
	"problem_statement": "We need a new CRM",
	"options": [{"text": "Tool A"}, {"text": "Tool B"}],
	"assumptions": []
}`

const guaranteedOutcome = `{
	"objective": "Increase revenue",
	"problem_statement": "Sales are flat",
	"options": [{"text": "Plan A"}, {"text": "Plan B"}],
	"assumptions": [{"text": "This will be a success"}]
}`

const singleOption = `{
	"objective": "Increase revenue",
	"problem_statement": "Sales are flat",
	"options": [{"text": "Plan A"}]
}`

const noHintArtifact = `{
	"objective": "Reduce onboarding cost",
	"problem_statement": "Customers leave during onboarding",
	"options": [{"text": "Keep the current flow"}, {"text": "Shorten the signup form"}],
	"assumptions": [{"text": "Shorter forms might reduce drop-off"}]
}`

const spanishArtifact = `{
	"objective": "Aumentar las ventas del producto",
	"problem_statement": "Las ventas no crecen",
	"options": [{"text": "Plan A para el mercado"}, {"text": "Plan B para los clientes"}],
	"assumptions": [{"text": "Esto será un éxito"}]
}`

func mustClassify(t *testing.T, raw string) *Outcome {
	t.Helper()
	out, err := Classify([]byte(raw))
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	return out
}

// --- End to end ---

func TestClassify_VendorToolObjectiveIsVague(t *testing.T) {
	out := mustClassify(t, vagueVendorObjective)
	res := out.Result

	wantSignals := classifier.Signals{
		ObjectivePresent:          true,
		OptionsAreImplementations: true,
		StatusQuoExcluded:         true,
	}
	if diff := cmp.Diff(wantSignals, res.Signals); diff != "" {
		t.Errorf("signals mismatch (-want +got):\n%s", diff)
	}
	if res.HintIntensity != 0.3 {
		t.Errorf("HintIntensity = %v, want 0.3", res.HintIntensity)
	}
	if res.HintBand != classifier.ClarificationNeeded {
		t.Errorf("HintBand = %s, want CLARIFICATION_NEEDED", res.HintBand)
	}
	if diff := cmp.Diff([]classifier.Pattern{classifier.ObjectiveVagueness}, res.PatternsDetected); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if res.PrimaryPattern == nil || *res.PrimaryPattern != classifier.ObjectiveVagueness {
		t.Errorf("PrimaryPattern = %v, want OBJECTIVE_VAGUENESS", res.PrimaryPattern)
	}
	if out.Locale != locale.English {
		t.Errorf("Locale = %s, want en", out.Locale)
	}
	if out.Response.Feedback.FocusQuestion == "" {
		t.Error("FocusQuestion should be set for CLARIFICATION_NEEDED")
	}
}

func TestClassify_SymbolOnlyObjectiveIsVagueNotMissing(t *testing.T) {
	res := mustClassify(t, `{
		"objective": "???",
		"problem_statement": "We need a new CRM",
		"options": [{"text": "Tool A"}, {"text": "Tool B"}]
	}`).Result

	if !res.Signals.ObjectivePresent {
		t.Error("objective_present = false, want true")
	}
	if diff := cmp.Diff([]classifier.Pattern{classifier.ObjectiveVagueness}, res.PatternsDetected); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
	if res.HintIntensity != 0.3 {
		t.Errorf("HintIntensity = %v, want 0.3", res.HintIntensity)
	}
	if res.HintBand != classifier.ClarificationNeeded {
		t.Errorf("HintBand = %s, want CLARIFICATION_NEEDED", res.HintBand)
	}
}

func TestClassify_GuaranteedOutcomeAssumption(t *testing.T) {
	res := mustClassify(t, guaranteedOutcome).Result

	if res.Signals.OptionsAreImplementations {
		t.Error("options_are_implementations = true, want false")
	}
	if !res.Signals.AssumptionsAreOutcomes || !res.Signals.AssumptionsAreGuaranteed {
		t.Errorf("signals = %+v, want outcome assumptions that are guaranteed", res.Signals)
	}
	if res.Signals.CausalLinkExplicit {
		t.Error("causal_link_explicit = true, want false")
	}
	if res.HintIntensity < 0.8 {
		t.Errorf("HintIntensity = %v, want >= 0.8", res.HintIntensity)
	}
	if res.HintBand != classifier.StructurallyUnclear {
		t.Errorf("HintBand = %s, want STRUCTURALLY_UNCLEAR", res.HintBand)
	}
	if res.PrimaryPattern == nil || *res.PrimaryPattern != classifier.OutcomeAsValidation {
		t.Errorf("PrimaryPattern = %v, want OUTCOME_AS_VALIDATION", res.PrimaryPattern)
	}
}

func TestClassify_SingleOptionRejected(t *testing.T) {
	out, err := Classify([]byte(singleOption))
	if out != nil {
		t.Errorf("Classify() outcome = %+v, want nil", out)
	}
	var ve *decision.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *decision.ValidationError", err)
	}
	body := ErrorBody(err)
	if body.ErrorCode != "VALIDATION_ERROR" {
		t.Errorf("ErrorCode = %s, want VALIDATION_ERROR", body.ErrorCode)
	}
	if !strings.Contains(body.Message, "at least 2 options") {
		t.Errorf("Message = %q, want it to mention the minimum options", body.Message)
	}
}

func TestClassify_NoHint(t *testing.T) {
	out := mustClassify(t, noHintArtifact)

	if out.Result.HintBand != classifier.NoHint {
		t.Fatalf("HintBand = %s, want NO_HINT (signals %+v)", out.Result.HintBand, out.Result.Signals)
	}
	if out.Result.PrimaryPattern != nil {
		t.Errorf("PrimaryPattern = %v, want nil", *out.Result.PrimaryPattern)
	}
	if out.Response.Feedback.FocusQuestion != "" {
		t.Errorf("FocusQuestion = %q, want none for NO_HINT", out.Response.Feedback.FocusQuestion)
	}
}

func TestClassify_SpanishCopy(t *testing.T) {
	out := mustClassify(t, spanishArtifact)
	if out.Locale != locale.Spanish {
		t.Fatalf("Locale = %s, want es (scores %v)", out.Locale, locale.Score(out.Artifact.Text()))
	}
	if out.Result.HintBand != classifier.StructurallyUnclear {
		t.Errorf("HintBand = %s, want STRUCTURALLY_UNCLEAR", out.Result.HintBand)
	}
	if !strings.HasPrefix(out.Response.Feedback.FocusQuestion, "¿") {
		t.Errorf("FocusQuestion = %q, want Spanish copy", out.Response.Feedback.FocusQuestion)
	}
}

// --- Response shape ---

func TestResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(mustClassify(t, noHintArtifact).Response)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"signals", "hint_intensity", "hint_band", "patterns_detected", "primary_pattern", "feedback"} {
		if _, ok := got[key]; !ok {
			t.Errorf("response is missing %q: %s", key, data)
		}
	}
	if len(got) != 6 {
		t.Errorf("response has %d keys, want 6: %s", len(got), data)
	}
	if string(got["patterns_detected"]) != "[]" {
		t.Errorf("patterns_detected = %s, want []", got["patterns_detected"])
	}
	if string(got["primary_pattern"]) != "null" {
		t.Errorf("primary_pattern = %s, want null", got["primary_pattern"])
	}
	if bytes.Contains(got["feedback"], []byte("focus_question")) {
		t.Errorf("feedback = %s, want no focus_question", got["feedback"])
	}

	var signals map[string]bool
	if err := json.Unmarshal(got["signals"], &signals); err != nil {
		t.Fatal(err)
	}
	if len(signals) != len(classifier.SignalNames) {
		t.Errorf("signals has %d keys, want %d", len(signals), len(classifier.SignalNames))
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, raw := range []string{vagueVendorObjective, guaranteedOutcome, noHintArtifact, spanishArtifact} {
		first, err := json.Marshal(mustClassify(t, raw).Response)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			again, err := json.Marshal(mustClassify(t, raw).Response)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(first, again) {
				t.Fatalf("run %d differs:\n%s\n%s", i, first, again)
			}
		}
	}
}

// --- Aggregate ---

func TestAggregate_BandDependsOnlyOnIntensity(t *testing.T) {
	for _, f := range []classifier.Flags{
		{},
		{ObjectivePresent: true, ObjectiveIsEffect: true},
		{OptionsAreImplementations: true, StatusQuoExcluded: true, ObjectiveIsEffect: true, ObjectivePresent: true},
		{AssumptionsAreOutcomes: true, AssumptionsAreGuaranteed: true},
	} {
		res := Aggregate(decision.Decision{}, f)
		if res.HintIntensity < 0 || res.HintIntensity > 1 {
			t.Errorf("HintIntensity = %v out of [0,1] for %+v", res.HintIntensity, f)
		}
		if want := classifier.DeriveBand(res.HintIntensity); res.HintBand != want {
			t.Errorf("HintBand = %s, want %s for intensity %v", res.HintBand, want, res.HintIntensity)
		}
	}
}

// --- ErrorBody ---

func TestErrorBody_InternalHasNoDetail(t *testing.T) {
	body := ErrorBody(errors.New("database exploded at /secret/path"))
	want := ErrorResponse{ErrorCode: CodeInternal, Message: "internal error"}
	if body != want {
		t.Errorf("ErrorBody() = %+v, want %+v", body, want)
	}
}
