// Package analyzer implements the deterministic text-matching core:
// normalization, symptom→department analysis, disease diagnosis, emergency
// triage and specialty extraction. All functions are pure; they read the
// lexicon tables and hold no state.
package analyzer

import "strings"

const (
	// Substring generation bounds, in runes.
	minSubstringLen = 2
	maxSubstringLen = 10

	// Inputs longer than this are truncated before substring generation to
	// bound the candidate set.
	maxInputRunes = 200
)

var punctReplacer = strings.NewReplacer(
	"?", "", ".", "", "!", "", ",", "", "~", "", "-", "",
	" ", "", "\t", "", "\n", "", "\r", "",
)

// Normalize lowercases the input and strips whitespace and the punctuation
// set used across all dictionary keys. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return punctReplacer.Replace(strings.ToLower(s))
}

// Substrings returns the set of contiguous substrings of the normalized
// input with rune length between 2 and 10 inclusive. The input is capped
// at 200 runes first.
func Substrings(normalized string) map[string]struct{} {
	runes := []rune(normalized)
	if len(runes) > maxInputRunes {
		runes = runes[:maxInputRunes]
	}
	subs := make(map[string]struct{})
	for i := 0; i < len(runes); i++ {
		for l := minSubstringLen; l <= maxSubstringLen && i+l <= len(runes); l++ {
			subs[string(runes[i:i+l])] = struct{}{}
		}
	}
	return subs
}
