// Package feedback selects the user-facing copy for a classification.
//
// The copy table is static, read-only data: one entry per band, per primary
// pattern (plus a "default" fallback), per locale. NO_HINT has a single
// fixed entry per locale and never carries a focus question.
package feedback

import (
	"github.com/HendryAvila/decisionsuite/internal/classifier"
	"github.com/HendryAvila/decisionsuite/internal/locale"
)

// DefaultKey is the table key used when no primary pattern was detected.
const DefaultKey = "default"

// Copy is the localized feedback shown to the end user.
type Copy struct {
	HintLabel     string `json:"hint_label"`
	ResultLine    string `json:"result_line"`
	FocusQuestion string `json:"focus_question,omitempty"`
}

// entries maps a primary pattern (or DefaultKey) to its copy.
type entries map[string]Copy

// noHint holds the fixed NO_HINT copy per locale.
var noHint = map[locale.Locale]Copy{
	locale.English: {
		HintLabel:  "Looks solid",
		ResultLine: "The decision states an objective, real alternatives and testable assumptions.",
	},
	locale.Spanish: {
		HintLabel:  "Se ve sólida",
		ResultLine: "La decisión plantea un objetivo, alternativas reales y supuestos verificables.",
	},
}

// table is indexed as table[locale][band][pattern|default].
var table = map[locale.Locale]map[classifier.Band]entries{
	locale.English: {
		classifier.ClarificationNeeded: {
			string(classifier.OutcomeAsValidation): {
				HintLabel:     "Check your assumptions",
				ResultLine:    "Some assumptions describe the result you hope for rather than what must be true.",
				FocusQuestion: "What would have to be true for this outcome to happen?",
			},
			string(classifier.MeansBeforeEnds): {
				HintLabel:     "Solution before problem",
				ResultLine:    "The options name tools or vendors before the goal they serve is clear.",
				FocusQuestion: "What should change once this decision is made, and by how much?",
			},
			string(classifier.ObjectiveVagueness): {
				HintLabel:     "Sharpen the objective",
				ResultLine:    "The objective does not say which effect you want to achieve.",
				FocusQuestion: "Which measurable effect should this decision produce?",
			},
			DefaultKey: {
				HintLabel:     "Worth a second look",
				ResultLine:    "Parts of the decision could be stated more precisely.",
				FocusQuestion: "Which part of this decision are you least sure about?",
			},
		},
		classifier.StructurallyUnclear: {
			string(classifier.OutcomeAsValidation): {
				HintLabel:     "Outcome taken for granted",
				ResultLine:    "The decision treats its desired outcome as proof that it is right.",
				FocusQuestion: "What evidence would convince you this option could fail?",
			},
			string(classifier.MeansBeforeEnds): {
				HintLabel:     "Means chosen before ends",
				ResultLine:    "The decision compares implementations without a bounded goal or a do-nothing option.",
				FocusQuestion: "What happens if you keep things as they are today?",
			},
			string(classifier.ObjectiveVagueness): {
				HintLabel:     "Objective unclear",
				ResultLine:    "Without a clear objective the options cannot be compared.",
				FocusQuestion: "What problem does this decision solve, in one sentence?",
			},
			DefaultKey: {
				HintLabel:     "Structure unclear",
				ResultLine:    "The decision is hard to evaluate as written.",
				FocusQuestion: "What are you trying to achieve, and how will you know it worked?",
			},
		},
	},
	locale.Spanish: {
		classifier.ClarificationNeeded: {
			string(classifier.OutcomeAsValidation): {
				HintLabel:     "Revisa tus supuestos",
				ResultLine:    "Algunos supuestos describen el resultado que esperas y no lo que debe ser cierto.",
				FocusQuestion: "¿Qué tendría que ser cierto para que ocurra este resultado?",
			},
			string(classifier.MeansBeforeEnds): {
				HintLabel:     "Solución antes que problema",
				ResultLine:    "Las opciones nombran herramientas o proveedores antes de aclarar la meta.",
				FocusQuestion: "¿Qué debería cambiar al tomar esta decisión, y en qué medida?",
			},
			string(classifier.ObjectiveVagueness): {
				HintLabel:     "Precisa el objetivo",
				ResultLine:    "El objetivo no dice qué efecto quieres lograr.",
				FocusQuestion: "¿Qué efecto medible debería producir esta decisión?",
			},
			DefaultKey: {
				HintLabel:     "Vale la pena revisarla",
				ResultLine:    "Algunas partes de la decisión podrían expresarse con más precisión.",
				FocusQuestion: "¿De qué parte de esta decisión estás menos seguro?",
			},
		},
		classifier.StructurallyUnclear: {
			string(classifier.OutcomeAsValidation): {
				HintLabel:     "Resultado dado por hecho",
				ResultLine:    "La decisión usa el resultado deseado como prueba de que es correcta.",
				FocusQuestion: "¿Qué evidencia te convencería de que esta opción puede fallar?",
			},
			string(classifier.MeansBeforeEnds): {
				HintLabel:     "Medios antes que fines",
				ResultLine:    "La decisión compara implementaciones sin una meta acotada ni la opción de no cambiar nada.",
				FocusQuestion: "¿Qué pasa si todo sigue como hoy?",
			},
			string(classifier.ObjectiveVagueness): {
				HintLabel:     "Objetivo poco claro",
				ResultLine:    "Sin un objetivo claro no es posible comparar las opciones.",
				FocusQuestion: "¿Qué problema resuelve esta decisión, en una frase?",
			},
			DefaultKey: {
				HintLabel:     "Estructura poco clara",
				ResultLine:    "La decisión es difícil de evaluar tal como está escrita.",
				FocusQuestion: "¿Qué intentas lograr y cómo sabrás que funcionó?",
			},
		},
	},
}

// Resolve returns the copy for a band, an optional primary pattern and a
// locale. Unsupported locales fall back to locale.Default, unknown bands
// to NO_HINT and unknown patterns to the default entry.
func Resolve(band classifier.Band, primary *classifier.Pattern, loc locale.Locale) Copy {
	if _, ok := table[loc]; !ok {
		loc = locale.Default
	}

	byBand, ok := table[loc][band]
	if band == classifier.NoHint || !ok {
		return noHint[loc]
	}

	key := DefaultKey
	if primary != nil {
		key = string(*primary)
	}
	if c, ok := byBand[key]; ok {
		return c
	}
	return byBand[DefaultKey]
}

// Table returns a copy of the full copy table keyed by locale, band and
// pattern. NO_HINT entries are stored under DefaultKey.
func Table() map[locale.Locale]map[classifier.Band]map[string]Copy {
	out := make(map[locale.Locale]map[classifier.Band]map[string]Copy, len(table))
	for loc, bands := range table {
		out[loc] = map[classifier.Band]map[string]Copy{
			classifier.NoHint: {DefaultKey: noHint[loc]},
		}
		for band, es := range bands {
			m := make(map[string]Copy, len(es))
			for k, c := range es {
				m[k] = c
			}
			out[loc][band] = m
		}
	}
	return out
}
