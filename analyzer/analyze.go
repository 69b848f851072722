package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

const maxRecommendedDepartments = 3

// Confidence thresholds: high needs both breadth (matched symptoms) and
// depth (accumulated score on the top department).
const (
	highConfidenceSymptoms = 3
	highConfidenceScore    = 2.0
)

// AnalyzeSymptoms matches an utterance against the symptom table and
// recommends up to three departments, scored by reciprocal rank weighted
// with the match confidence.
func AnalyzeSymptoms(text string) *types.AnalysisResult {
	norm := Normalize(text)
	subs := Substrings(norm)

	var matched []string
	scores := make(map[string]float64)
	var deptOrder []string
	seenTuples := make(map[string]struct{})

	for _, entry := range lexicon.SymptomDepartments {
		conf, exact, ok := matchKey(norm, subs, entry.Key)
		if !ok {
			continue
		}
		tuple := departmentTuple(entry.Departments)
		if !exact {
			// Fuzzy re-hits of an already-covered department set add noise,
			// not signal. Exact hits always count.
			if _, seen := seenTuples[tuple]; seen {
				continue
			}
		}
		seenTuples[tuple] = struct{}{}
		matched = append(matched, entry.Key)
		for rank, dept := range entry.Departments {
			if _, known := scores[dept]; !known {
				deptOrder = append(deptOrder, dept)
			}
			scores[dept] += (1.0 / float64(rank+1)) * conf
		}
	}

	if len(matched) == 0 {
		return &types.AnalysisResult{
			MatchedSymptoms:        []string{},
			RecommendedDepartments: []string{},
			DepartmentScores:       scores,
			RelatedKeywords:        []string{},
			Confidence:             types.ConfidenceLow,
			Summary:                "증상을 파악하지 못했어요. 증상을 조금 더 구체적으로 말씀해 주세요. (예: 머리가 아파요, 무릎이 쑤셔요)",
		}
	}

	ranked := make([]string, len(deptOrder))
	copy(ranked, deptOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > maxRecommendedDepartments {
		ranked = ranked[:maxRecommendedDepartments]
	}

	confidence := types.ConfidenceMedium
	if len(matched) >= highConfidenceSymptoms && scores[ranked[0]] >= highConfidenceScore {
		confidence = types.ConfidenceHigh
	}

	return &types.AnalysisResult{
		MatchedSymptoms:        matched,
		RecommendedDepartments: ranked,
		DepartmentScores:       scores,
		RelatedKeywords:        relatedKeywords(matched),
		Confidence:             confidence,
		Summary:                buildSummary(matched, ranked),
	}
}

func departmentTuple(departments []string) string {
	sorted := make([]string, len(departments))
	copy(sorted, departments)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}

// relatedKeywords surfaces clinic-search keywords whose entry name
// overlaps any matched symptom, deduplicated in table order.
func relatedKeywords(matched []string) []string {
	keywords := []string{}
	seen := make(map[string]struct{})
	for _, entry := range lexicon.DiseaseKeywords {
		if !overlapsAny(entry.Name, matched) {
			continue
		}
		for _, kw := range entry.Keywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func overlapsAny(name string, symptoms []string) bool {
	for _, sym := range symptoms {
		if strings.Contains(sym, name) || strings.Contains(name, sym) {
			return true
		}
	}
	return false
}

// buildSummary names at most 3 matched symptoms and 2 departments.
func buildSummary(matched, ranked []string) string {
	symptoms := matched
	if len(symptoms) > 3 {
		symptoms = symptoms[:3]
	}
	departments := ranked
	if len(departments) > 2 {
		departments = departments[:2]
	}
	summary := fmt.Sprintf("'%s' 증상을 확인했어요. %s 진료를 권장합니다.",
		strings.Join(symptoms, ", "), strings.Join(departments, ", "))
	if desc, ok := lexicon.DepartmentDescriptions[ranked[0]]; ok {
		summary += " " + desc
	}
	return summary
}
