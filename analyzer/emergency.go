package analyzer

import (
	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

// CheckEmergency scans an utterance for life-threatening condition
// keywords. It runs before any other analysis; a hit short-circuits the
// whole pipeline. Each category reports at most its first matching keyword.
func CheckEmergency(text string) *types.EmergencyResult {
	norm := Normalize(text)

	var hits []types.EmergencyHit
	for _, cat := range lexicon.EmergencyCategories {
		if kw, ok := containsAny(norm, cat.Keywords); ok {
			hits = append(hits, types.EmergencyHit{Category: cat.Name, Keyword: kw})
		}
	}
	if len(hits) == 0 {
		return &types.EmergencyResult{IsEmergency: false}
	}

	guidance := lexicon.EmergencyGuidanceFor()
	return &types.EmergencyResult{
		IsEmergency: true,
		Hits:        hits,
		Guidance:    &guidance,
	}
}
