package analyzer

import (
	"strings"
	"testing"

	"github.com/medimatch/medimatch-agent/types"
)

// TestNormalize tests whitespace, punctuation and case handling
func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"머리가 아파요", "머리가아파요"},
		{"머리가  아파요?!", "머리가아파요"},
		{"배가~ 아프고, 설사를 해요.", "배가아프고설사를해요"},
		{"ATOPY 아토피", "atopy아토피"},
		{"허리-디스크", "허리디스크"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
		// Normalization must be idempotent
		if again := Normalize(got); again != got {
			t.Errorf("Normalize not idempotent: %q -> %q", got, again)
		}
	}
}

// TestSubstrings tests substring generation bounds
func TestSubstrings(t *testing.T) {
	subs := Substrings("무릎이아파요")

	if _, ok := subs["무릎"]; !ok {
		t.Errorf("Expected 2-rune substring 무릎 to be present")
	}
	if _, ok := subs["무릎이아파요"]; !ok {
		t.Errorf("Expected full 6-rune substring to be present")
	}
	if _, ok := subs["무"]; ok {
		t.Errorf("Did not expect 1-rune substrings")
	}
	for s := range subs {
		if n := len([]rune(s)); n < 2 || n > 10 {
			t.Errorf("Substring %q has length %d outside [2,10]", s, n)
		}
	}
}

// TestSubstringsInputCap tests the 200-rune input cap
func TestSubstringsInputCap(t *testing.T) {
	long := strings.Repeat("가", 300) + "무릎"
	subs := Substrings(long)
	if _, ok := subs["무릎"]; ok {
		t.Errorf("Expected content beyond 200 runes to be ignored")
	}
}

// TestAnalyzeSymptomsDepartments tests primary department selection
func TestAnalyzeSymptomsDepartments(t *testing.T) {
	tests := []struct {
		input   string
		primary string
	}{
		{"무릎이 아파요", "정형외과"},
		{"피부가 가렵고 붉어요", "피부과"},
		{"아토피가 심해졌어요", "피부과"},
		{"소화가 안되고 속이 쓰려요", "내과"},
		{"귀에서 소리가 나요", "이비인후과"},
		{"눈이 침침해요", "안과"},
		{"잠이 안 오고 불면이 심해요", "정신건강의학과"},
	}
	for _, tt := range tests {
		result := AnalyzeSymptoms(tt.input)
		if len(result.RecommendedDepartments) == 0 {
			t.Fatalf("AnalyzeSymptoms(%q) returned no departments", tt.input)
		}
		if got := result.RecommendedDepartments[0]; got != tt.primary {
			t.Errorf("AnalyzeSymptoms(%q) primary = %s, want %s (scores: %v)",
				tt.input, got, tt.primary, result.DepartmentScores)
		}
		if len(result.RecommendedDepartments) > 3 {
			t.Errorf("Expected at most 3 departments, got %d", len(result.RecommendedDepartments))
		}
	}
}

// TestAnalyzeSymptomsConfidence tests the confidence grading rules
func TestAnalyzeSymptomsConfidence(t *testing.T) {
	// Three exact matches on the same leading department
	high := AnalyzeSymptoms("머리가 아프고 어지럽고 두통이 심해요")
	if high.Confidence != types.ConfidenceHigh {
		t.Errorf("Expected high confidence, got %s (matched %v, scores %v)",
			high.Confidence, high.MatchedSymptoms, high.DepartmentScores)
	}
	if high.RecommendedDepartments[0] != "신경과" {
		t.Errorf("Expected 신경과 primary, got %s", high.RecommendedDepartments[0])
	}

	medium := AnalyzeSymptoms("무릎이 아파요")
	if medium.Confidence != types.ConfidenceMedium {
		t.Errorf("Expected medium confidence for a single match, got %s", medium.Confidence)
	}

	low := AnalyzeSymptoms("그냥 기분이 이상해요")
	if low.Confidence != types.ConfidenceLow {
		t.Errorf("Expected low confidence for no match, got %s", low.Confidence)
	}
	if len(low.RecommendedDepartments) != 0 {
		t.Errorf("Expected no departments on no match, got %v", low.RecommendedDepartments)
	}
	if low.Summary == "" {
		t.Errorf("Expected a rephrase prompt in the summary on no match")
	}
}

// TestAnalyzeSymptomsDeduplication tests that fuzzy re-hits of an already
// covered department set are suppressed while exact hits still count
func TestAnalyzeSymptomsDeduplication(t *testing.T) {
	result := AnalyzeSymptoms("머리가 아파요")

	for _, sym := range result.MatchedSymptoms {
		if sym == "머리가아프" {
			t.Errorf("Expected fuzzy duplicate 머리가아프 to be suppressed, matched %v", result.MatchedSymptoms)
		}
	}
	if got := result.DepartmentScores["신경과"]; got != 1.0 {
		t.Errorf("Expected 신경과 score 1.0 from a single exact match, got %v", got)
	}

	// Two exact hits on the same department set both count
	double := AnalyzeSymptoms("어깨가 결리고 몸이 뻐근해요")
	if got := double.DepartmentScores["정형외과"]; got != 2.0 {
		t.Errorf("Expected 정형외과 score 2.0 from two exact matches, got %v (matched %v)",
			got, double.MatchedSymptoms)
	}
}

// TestAnalyzeSymptomsRelatedKeywords tests clinic keyword surfacing
func TestAnalyzeSymptomsRelatedKeywords(t *testing.T) {
	result := AnalyzeSymptoms("허리가 아파요")
	found := false
	for _, kw := range result.RelatedKeywords {
		if kw == "디스크" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected related keyword 디스크 for 허리, got %v", result.RelatedKeywords)
	}
}

// TestMatchKeyStrategies tests the three matching strategies directly
func TestMatchKeyStrategies(t *testing.T) {
	norm := Normalize("머리가 어지럽고 귀에서 소리가 나요")
	subs := Substrings(norm)

	if conf, exact, ok := matchKey(norm, subs, "귀에서소리"); !ok || !exact || conf != 1.0 {
		t.Errorf("Expected exact match at 1.0, got conf=%v exact=%v ok=%v", conf, exact, ok)
	}
	if _, _, ok := matchKey(norm, subs, "무릎"); ok {
		t.Errorf("Did not expect 무릎 to match")
	}
	// Reverse: a long key whose 4-rune window appears in the input
	if conf, exact, ok := matchKey(norm, subs, "귀에서소리가남"); !ok || exact || conf != 0.7 {
		t.Errorf("Expected reverse match at 0.7, got conf=%v exact=%v ok=%v", conf, exact, ok)
	}
	// Short windows must not cross-match unrelated keys
	if _, _, ok := matchKey(Normalize("배가 아파요"), Substrings(Normalize("배가 아파요")), "머리가아파"); ok {
		t.Errorf("Did not expect 머리가아파 to match a stomach complaint")
	}
}
