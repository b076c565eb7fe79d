package classifier

// Signals mirror Flags field for field. A signal is observed only when the
// corresponding flag is explicitly true.
type Signals struct {
	ObjectivePresent          bool `json:"objective_present"`
	ObjectiveIsEffect         bool `json:"objective_is_effect"`
	ObjectiveHasConstraints   bool `json:"objective_has_constraints"`
	OptionsAreImplementations bool `json:"options_are_implementations"`
	StatusQuoExcluded         bool `json:"status_quo_excluded"`
	AssumptionsAreOutcomes    bool `json:"assumptions_are_outcomes"`
	AssumptionsAreGuaranteed  bool `json:"assumptions_are_guaranteed"`
	CausalLinkExplicit        bool `json:"causal_link_explicit"`
}

// SignalNames lists the JSON names of every signal in declaration order.
var SignalNames = []string{
	"objective_present",
	"objective_is_effect",
	"objective_has_constraints",
	"options_are_implementations",
	"status_quo_excluded",
	"assumptions_are_outcomes",
	"assumptions_are_guaranteed",
	"causal_link_explicit",
}

// ObserveSignals copies typed flags into signals.
func ObserveSignals(f Flags) Signals {
	return Signals{
		ObjectivePresent:          f.ObjectivePresent,
		ObjectiveIsEffect:         f.ObjectiveIsEffect,
		ObjectiveHasConstraints:   f.ObjectiveHasConstraints,
		OptionsAreImplementations: f.OptionsAreImplementations,
		StatusQuoExcluded:         f.StatusQuoExcluded,
		AssumptionsAreOutcomes:    f.AssumptionsAreOutcomes,
		AssumptionsAreGuaranteed:  f.AssumptionsAreGuaranteed,
		CausalLinkExplicit:        f.CausalLinkExplicit,
	}
}

// SignalsFromRaw reads signals from an untyped map such as decoded JSON or
// tool arguments. Only a boolean true counts: "true", 1 and any other
// truthy-looking value are treated as false. Unknown keys are ignored.
func SignalsFromRaw(raw map[string]any) Signals {
	return Signals{
		ObjectivePresent:          isTrue(raw["objective_present"]),
		ObjectiveIsEffect:         isTrue(raw["objective_is_effect"]),
		ObjectiveHasConstraints:   isTrue(raw["objective_has_constraints"]),
		OptionsAreImplementations: isTrue(raw["options_are_implementations"]),
		StatusQuoExcluded:         isTrue(raw["status_quo_excluded"]),
		AssumptionsAreOutcomes:    isTrue(raw["assumptions_are_outcomes"]),
		AssumptionsAreGuaranteed:  isTrue(raw["assumptions_are_guaranteed"]),
		CausalLinkExplicit:        isTrue(raw["causal_link_explicit"]),
	}
}

// Flags converts signals back to flags for rule evaluation.
func (s Signals) Flags() Flags {
	return Flags(s)
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
