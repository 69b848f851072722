package types

// Confidence grades how well an utterance matched the symptom tables.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Severity grades a suspected disease.
type Severity string

const (
	SeverityLow    Severity = "낮음"
	SeverityMedium Severity = "중간"
	SeverityHigh   Severity = "높음"
	// SeverityUrgent marks conditions that border on emergencies but did not
	// trip the emergency triage (e.g. suspected appendicitis).
	SeverityUrgent Severity = "응급주의"
)

// MatchType says whether a diagnosis came from a symptom combination key or
// a single-symptom key. Combination matches outrank single matches.
type MatchType string

const (
	MatchCombination MatchType = "combination"
	MatchSingle      MatchType = "single"
)

// AnalysisResult is the outcome of department-oriented symptom analysis.
// Plain data; the formatter renders it, callers never reach back into the
// analyzer.
type AnalysisResult struct {
	MatchedSymptoms        []string           `json:"matched_symptoms"`
	RecommendedDepartments []string           `json:"recommended_departments"`
	DepartmentScores       map[string]float64 `json:"department_scores"`
	RelatedKeywords        []string           `json:"related_keywords"`
	Confidence             Confidence         `json:"confidence"`
	Summary                string             `json:"analysis_summary"`
}

// DiseaseMatch is one lexicon hit produced while diagnosing.
type DiseaseMatch struct {
	MatchedKey  string    `json:"matched_key"`
	Diseases    []string  `json:"diseases"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Departments []string  `json:"departments"`
	MatchType   MatchType `json:"match_type"`
}

// Diagnosis is the merged outcome of disease diagnosis over an utterance.
// SuspectedDiseases is capped at 5 and RecommendedDepartments at 3;
// Severity and Description come from the primary (first) match only.
type Diagnosis struct {
	HasDiagnosis           bool      `json:"has_diagnosis"`
	SuspectedDiseases      []string  `json:"suspected_diseases"`
	RecommendedDepartments []string  `json:"recommended_departments"`
	Severity               Severity  `json:"severity,omitempty"`
	Description            string    `json:"diagnosis_description,omitempty"`
	PrimaryMatchType       MatchType `json:"primary_match_type,omitempty"`
}

// EmergencyGuidance is the fixed instruction bundle attached to any
// emergency detection. Content never varies per input.
type EmergencyGuidance struct {
	Call        string   `json:"call"`
	Actions     []string `json:"actions"`
	DoNotMove   string   `json:"do_not_move"`
}

// EmergencyHit is one triggered emergency category with the first keyword
// that matched it.
type EmergencyHit struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

// EmergencyResult reports emergency triage. When no category matched,
// IsEmergency is false and Guidance is nil.
type EmergencyResult struct {
	IsEmergency bool               `json:"is_emergency"`
	Hits        []EmergencyHit     `json:"detected,omitempty"`
	Guidance    *EmergencyGuidance `json:"guidance,omitempty"`
}

// SpecialtyInfo describes a named specialty (e.g. 아토피) extracted from an
// utterance, resolved through the specialty dictionary.
type SpecialtyInfo struct {
	SpecialtyName     string   `json:"specialty_name"`
	Department        string   `json:"department"`
	SpecialtyKeywords []string `json:"specialty_keywords"`
	SearchTerms       []string `json:"search_terms"`
	PriorityKeywords  []string `json:"priority_keywords"`
}

// SpecialtySearch is the uniform shape handed to hospital search regardless
// of whether a specialty was found. When HasSpecialty is false,
// PrimarySearchTerm falls back to the caller's department.
type SpecialtySearch struct {
	HasSpecialty      bool     `json:"has_specialty"`
	SpecialtyName     string   `json:"specialty_name,omitempty"`
	Department        string   `json:"department"`
	SpecialtyKeywords []string `json:"specialty_keywords,omitempty"`
	PriorityKeywords  []string `json:"priority_keywords,omitempty"`
	PrimarySearchTerm string   `json:"primary_search_term"`
	AllSearchTerms    []string `json:"all_search_terms,omitempty"`
}
