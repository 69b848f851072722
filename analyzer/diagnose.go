package analyzer

import (
	"strings"

	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

const (
	maxSuspectedDiseases = 5
	maxDiseaseDepartments = 3
)

// DiagnoseDisease matches an utterance against the disease tables.
// Combination entries are evaluated before single-symptom entries, so a
// combination hit always becomes the primary match; severity and
// description come from the primary match only.
func DiagnoseDisease(text string) *types.Diagnosis {
	norm := Normalize(text)
	subs := Substrings(norm)

	var matches []types.DiseaseMatch

	for _, combo := range lexicon.DiseaseCombinations {
		if !allMatch(norm, subs, combo.Symptoms) {
			continue
		}
		matches = append(matches, types.DiseaseMatch{
			MatchedKey:  strings.Join(combo.Symptoms, "+"),
			Diseases:    combo.Diseases,
			Description: combo.Description,
			Severity:    combo.Severity,
			Departments: combo.Departments,
			MatchType:   types.MatchCombination,
		})
	}

	for _, single := range lexicon.SingleDiseases {
		if _, _, ok := matchKey(norm, subs, single.Symptom); !ok {
			continue
		}
		matches = append(matches, types.DiseaseMatch{
			MatchedKey:  single.Symptom,
			Diseases:    single.Diseases,
			Description: single.Description,
			Severity:    single.Severity,
			Departments: single.Departments,
			MatchType:   types.MatchSingle,
		})
	}

	if len(matches) == 0 {
		return &types.Diagnosis{HasDiagnosis: false}
	}

	primary := matches[0]
	return &types.Diagnosis{
		HasDiagnosis:           true,
		SuspectedDiseases:      mergeUnique(matches, maxSuspectedDiseases, func(m types.DiseaseMatch) []string { return m.Diseases }),
		RecommendedDepartments: mergeUnique(matches, maxDiseaseDepartments, func(m types.DiseaseMatch) []string { return m.Departments }),
		Severity:               primary.Severity,
		Description:            primary.Description,
		PrimaryMatchType:       primary.MatchType,
	}
}

func allMatch(norm string, subs map[string]struct{}, keys []string) bool {
	for _, key := range keys {
		if _, _, ok := matchKey(norm, subs, key); !ok {
			return false
		}
	}
	return true
}

func mergeUnique(matches []types.DiseaseMatch, limit int, pick func(types.DiseaseMatch) []string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, v := range pick(m) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
