// Package doctype holds the deterministic text pipeline that turns file names and free-text
// model answers into a label of the controlled document-type vocabulary.
package doctype

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison key for s: lower-cased, stripped of diacritics, with
// whitespace runs collapsed to a single space and trimmed. Normalize(Normalize(s)) equals
// Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)

	// Chains keep per-call state, so one is built for every call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.Join(strings.Fields(folded), " ")
}

func containsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
