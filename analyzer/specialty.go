package analyzer

import (
	"sort"
	"strings"

	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

// Hospital name ranking weights. Priority keywords are the strongest
// signal; generic marketing suffixes count for much less.
const (
	scorePriorityKeyword  = 100
	scoreSpecialtyKeyword = 50
	scoreSpecialist       = 30
	scoreClinicSuffix     = 20
	scoreCenterSuffix     = 20
)

// ExtractSpecialty finds a named specialty in the utterance via exact
// containment. When several terms match, the longest term wins; ties keep
// the earlier table entry. Returns nil when nothing matched.
func ExtractSpecialty(text string) *types.SpecialtyInfo {
	norm := Normalize(text)

	var best *lexicon.SpecialtyTerm
	bestLen := 0
	for i := range lexicon.SpecialtyTerms {
		term := &lexicon.SpecialtyTerms[i]
		if !strings.Contains(norm, term.Term) {
			continue
		}
		if l := len([]rune(term.Term)); l > bestLen {
			best, bestLen = term, l
		}
	}
	if best == nil {
		return nil
	}

	profile, ok := lexicon.SpecialtyProfiles[best.Specialty]
	if !ok {
		return nil
	}
	return &types.SpecialtyInfo{
		SpecialtyName:     best.Specialty,
		Department:        profile.Department,
		SpecialtyKeywords: profile.SpecialtyKeyword,
		SearchTerms:       profile.SearchTerms,
		PriorityKeywords:  profile.PriorityKeywords,
	}
}

// BuildSpecialtySearch produces the uniform search descriptor for hospital
// lookup. Without a specialty hit it degrades to a plain department search.
func BuildSpecialtySearch(text, department string) *types.SpecialtySearch {
	if info := ExtractSpecialty(text); info != nil {
		dept := department
		if dept == "" {
			dept = info.Department
		}
		terms := append([]string{}, info.SearchTerms...)
		if dept != "" && !contains(terms, dept) {
			terms = append(terms, dept)
		}
		return &types.SpecialtySearch{
			HasSpecialty:      true,
			SpecialtyName:     info.SpecialtyName,
			Department:        dept,
			SpecialtyKeywords: info.SpecialtyKeywords,
			PriorityKeywords:  info.PriorityKeywords,
			PrimarySearchTerm: terms[0],
			AllSearchTerms:    terms,
		}
	}
	return &types.SpecialtySearch{
		HasSpecialty:      false,
		Department:        department,
		PrimarySearchTerm: department,
		AllSearchTerms:    []string{department},
	}
}

// RankHospitalsBySpecialty reorders search results so hospitals whose name
// signals the specialty come first. The sort is stable: hospitals with
// equal scores keep their distance order from the upstream search.
func RankHospitalsBySpecialty(hospitals []types.Place, info *types.SpecialtyInfo) []types.Place {
	if info == nil || len(hospitals) == 0 {
		return hospitals
	}
	ranked := make([]types.Place, len(hospitals))
	copy(ranked, hospitals)
	for i := range ranked {
		score := specialtyScore(ranked[i].Name+ranked[i].Category, info)
		ranked[i].SpecialtyScore = score
		ranked[i].IsSpecialtyMatch = score > 0
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SpecialtyScore > ranked[j].SpecialtyScore
	})
	return ranked
}

func specialtyScore(text string, info *types.SpecialtyInfo) int {
	n := Normalize(text)
	score := 0
	for _, kw := range info.PriorityKeywords {
		if strings.Contains(n, Normalize(kw)) {
			score += scorePriorityKeyword
		}
	}
	for _, kw := range info.SpecialtyKeywords {
		if strings.Contains(n, Normalize(kw)) {
			score += scoreSpecialtyKeyword
		}
	}
	if strings.Contains(n, "전문") {
		score += scoreSpecialist
	}
	if strings.Contains(n, "클리닉") {
		score += scoreClinicSuffix
	}
	if strings.Contains(n, "센터") {
		score += scoreCenterSuffix
	}
	return score
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
