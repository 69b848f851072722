// Package intent classifies one Korean utterance into a discrete intent
// plus extracted slots. Classification is a strict priority cascade: rules
// are evaluated in a fixed order and the first match wins, so the rule
// order is part of the package contract and covered by tests.
package intent

import (
	"strings"

	"github.com/medimatch/medimatch-agent/analyzer"
	"github.com/medimatch/medimatch-agent/lexicon"
)

// Type is a discrete conversational intent.
type Type string

const (
	Greeting                Type = "greeting"
	Help                    Type = "help"
	ExplainRecommendation   Type = "explain_recommendation"
	AskDiseaseInfo          Type = "ask_disease_info"
	SuggestOtherDepartments Type = "suggest_other_departments"
	MoreHospitals           Type = "more_hospitals"
	SearchPharmacy          Type = "search_pharmacy"
	SearchHospital          Type = "search_hospital"
	AnalyzeSymptoms         Type = "analyze_symptoms"
)

// Intent is a classified utterance with its slots. Unused slots stay empty.
type Intent struct {
	Type         Type   `json:"type"`
	Region       string `json:"region,omitempty"`
	Department   string `json:"department,omitempty"`
	DiseaseName  string `json:"disease_name,omitempty"`
	QuestionType string `json:"question_type,omitempty"`
	// Symptoms carries the original untouched utterance so the analyzer
	// can renormalize it itself.
	Symptoms string `json:"symptoms,omitempty"`
}

// utterance bundles the raw text with everything the rules keep re-deriving.
type utterance struct {
	raw        string
	norm       string
	runeLen    int
	region     string
	department string
}

type rule struct {
	name  string
	match func(u *utterance) *Intent
}

// rules is the cascade, highest priority first. Do not reorder casually:
// plenty of utterances satisfy several predicates and depend on this order
// for a deterministic outcome.
var rules = []rule{
	{"greeting", matchGreeting},
	{"explain_recommendation", matchExplain},
	{"help", matchHelp},
	{"ask_disease_info", matchAskDisease},
	{"suggest_other_departments", matchSuggestOther},
	{"more_hospitals", matchMoreHospitals},
	{"search_pharmacy", matchSearchPharmacy},
	{"search_hospital", matchSearchHospital},
	{"analyze_symptoms", matchAnalyzeSymptoms},
}

// Classify maps one utterance to an intent. It never fails: utterances no
// rule claims fall through to help (too short to mean anything) or to
// symptom analysis.
func Classify(text string) Intent {
	norm := analyzer.Normalize(text)
	u := &utterance{
		raw:        text,
		norm:       norm,
		runeLen:    len([]rune(norm)),
		region:     ExtractRegion(norm),
		department: ExtractDepartment(norm),
	}
	for _, r := range rules {
		if it := r.match(u); it != nil {
			return *it
		}
	}
	if u.runeLen < 3 {
		return Intent{Type: Help}
	}
	return Intent{Type: AnalyzeSymptoms, Symptoms: text, Region: u.region}
}

// ExtractRegion returns the longest recognized place name contained in the
// normalized text, or "".
func ExtractRegion(norm string) string {
	return longestContained(norm, lexicon.KnownRegions)
}

// ExtractDepartment returns the longest recognized department name
// contained in the normalized text, or "".
func ExtractDepartment(norm string) string {
	return longestContained(norm, lexicon.KnownDepartments)
}

func extractDisease(norm string) string {
	return longestContained(norm, lexicon.KnownDiseases)
}

func longestContained(norm string, candidates []string) string {
	best := ""
	bestLen := 0
	for _, c := range candidates {
		if !strings.Contains(norm, c) {
			continue
		}
		if l := len([]rune(c)); l > bestLen {
			best, bestLen = c, l
		}
	}
	return best
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
