// Package locale detects which supported language a text is written in.
//
// Detect is the only language detector in the module. Every caller (the
// classification pipeline, the MCP tools and the CLI) goes through it so
// their answers can never diverge.
package locale

import "github.com/HendryAvila/decisionsuite/internal/textnorm"

// Locale is a supported feedback language.
type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"
)

// Default is returned for ties, including text with no known words.
const Default = English

// Supported lists every locale, Default last.
func Supported() []Locale {
	return []Locale{Spanish, English}
}

// Parse maps a locale code to a supported Locale. Region suffixes are
// ignored ("es-AR" is Spanish). ok is false for unsupported codes.
func Parse(code string) (Locale, bool) {
	tokens := textnorm.Tokens(code)
	if len(tokens) == 0 {
		return "", false
	}
	switch Locale(tokens[0]) {
	case Spanish:
		return Spanish, true
	case English:
		return English, true
	}
	return "", false
}

// family is one group of indicator words for a locale.
type family struct {
	name  string
	words []string
}

// indicators are per-locale word families. Words are written normalized:
// lowercase and without accents. Words shared by both languages are left out.
var indicators = map[Locale][]family{
	Spanish: {
		{"modal", []string{"debe", "deberia", "deberiamos", "puede", "podria", "podemos", "necesita", "necesitamos", "quiere", "queremos", "hay", "tiene", "tenemos"}},
		{"function", []string{"el", "la", "los", "las", "de", "del", "que", "y", "en", "con", "para", "por", "una", "un", "es", "son", "sin", "pero", "mas", "como", "nuestro", "nuestra"}},
		{"domain", []string{"cliente", "clientes", "costo", "costos", "mercado", "ventas", "ingresos", "equipo", "producto", "empresa", "proveedor", "objetivo", "opcion", "riesgo", "presupuesto"}},
		{"pronoun", []string{"nosotros", "ellos", "ellas", "yo", "usted", "ustedes", "esto", "eso", "este", "esta"}},
	},
	English: {
		{"modal", []string{"should", "would", "could", "must", "can", "will", "might", "shall", "need", "needs", "want"}},
		{"function", []string{"the", "and", "of", "to", "is", "are", "with", "for", "that", "this", "on", "in", "by", "but", "an", "or", "from"}},
		{"domain", []string{"customer", "customers", "cost", "costs", "market", "sales", "revenue", "team", "product", "company", "vendor", "goal", "option", "risk", "budget"}},
		{"pronoun", []string{"we", "our", "us", "they", "their", "it", "i", "you", "he", "she"}},
	},
}

// lookup maps each indicator word to its locale.
var lookup = buildLookup()

func buildLookup() map[string]Locale {
	m := make(map[string]Locale)
	for loc, families := range indicators {
		for _, f := range families {
			for _, w := range f.words {
				m[w] = loc
			}
		}
	}
	return m
}

// Scores counts indicator words per locale.
type Scores map[Locale]int

// Score counts every token of text that is an indicator word.
func Score(text string) Scores {
	s := Scores{Spanish: 0, English: 0}
	for _, tok := range textnorm.Tokens(text) {
		if loc, ok := lookup[tok]; ok {
			s[loc]++
		}
	}
	return s
}

// Detect returns the locale with more indicator words. Ties go to Default.
func Detect(text string) Locale {
	s := Score(text)
	if s[Spanish] > s[English] {
		return Spanish
	}
	return English
}
