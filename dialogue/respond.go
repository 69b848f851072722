package dialogue

import (
	"fmt"
	"strings"

	"github.com/medimatch/medimatch-agent/intent"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/types"
)

func greetingResult() *Result {
	return &Result{
		Text: "안녕하세요! 증상을 말씀해 주시면 알맞은 진료과와 가까운 병원을 찾아드려요.",
		QuickReplies: []types.QuickReply{
			kakao.QuickReplyText("증상 말하기", "머리가 아파요"),
			kakao.QuickReplyText("병원 찾기", "강남 내과 찾아줘"),
			kakao.QuickReplyText("도움말", "도움말"),
		},
	}
}

func helpResult() *Result {
	var b strings.Builder
	b.WriteString("이런 걸 도와드릴 수 있어요.\n\n")
	b.WriteString("• 증상 분석: \"머리가 어지럽고 귀에서 소리가 나요\"\n")
	b.WriteString("• 병원 찾기: \"강남 피부과 찾아줘\"\n")
	b.WriteString("• 약국 찾기: \"근처 약국 알려줘\"\n")
	b.WriteString("• 더 보기: \"다른 병원 추천해줘\"\n")
	b.WriteString("• 추천 이유: \"왜 그 과를 추천했어?\"\n\n")
	b.WriteString("응급 증상이 의심되면 즉시 119에 전화하세요.")
	return &Result{Text: b.String()}
}

func emergencyResult(e *types.EmergencyResult) *Result {
	var b strings.Builder
	b.WriteString("🚨 응급 상황이 의심됩니다!\n\n")
	for _, hit := range e.Hits {
		b.WriteString(fmt.Sprintf("• 의심 상황: %s (감지 표현: %s)\n", hit.Category, hit.Keyword))
	}
	if e.Guidance != nil {
		b.WriteString("\n" + e.Guidance.Call + "\n\n")
		for _, action := range e.Guidance.Actions {
			b.WriteString("- " + action + "\n")
		}
		b.WriteString("\n⚠️ " + e.Guidance.DoNotMove)
	}
	return &Result{Text: b.String(), Emergency: e}
}

func explanationFromRecommendation(rec *types.Recommendation) *Result {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("말씀해 주신 \"%s\" 증상을 바탕으로 추천해 드렸어요.\n\n", rec.Symptoms))
	if len(rec.Departments) > 0 {
		b.WriteString("추천 진료과: " + strings.Join(rec.Departments, ", ") + "\n")
		if rationale, ok := lexicon.DepartmentRationales[rec.Departments[0]]; ok {
			b.WriteString(rationale + "\n")
		}
	}
	if len(rec.Diseases) > 0 {
		b.WriteString("\n관련 가능성이 있는 질환: " + strings.Join(rec.Diseases, ", ") + "\n")
	}
	b.WriteString("\n정확한 진단은 병원 진료를 통해 받아보세요.")
	return &Result{Text: b.String()}
}

func diseaseInfoResult(it intent.Intent) *Result {
	name := it.DiseaseName
	if match := findDiseaseEntry(name); match != nil {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s 가능성을 물어보셨네요.\n\n", name))
		b.WriteString(match.Description + "\n\n")
		if len(match.Departments) > 0 {
			b.WriteString("관련 진료과: " + strings.Join(match.Departments, ", ") + "\n")
		}
		b.WriteString("증상만으로는 단정할 수 없으니 꼭 진료를 받아보세요.")
		return &Result{
			Text: b.String(),
			QuickReplies: []types.QuickReply{
				kakao.QuickReplyText("병원 찾기", strings.Join(match.Departments, " ")+" 찾아줘"),
			},
		}
	}
	return &Result{
		Text: fmt.Sprintf("%s에 대한 정보가 아직 없어요. 증상을 말씀해 주시면 분석해 드릴게요.", name),
	}
}

// findDiseaseEntry locates a disease by name across the combination and
// single tables; combination entries win.
func findDiseaseEntry(name string) *types.DiseaseMatch {
	for _, combo := range lexicon.DiseaseCombinations {
		for _, d := range combo.Diseases {
			if strings.Contains(d, name) || strings.Contains(name, d) {
				return &types.DiseaseMatch{
					Diseases:    combo.Diseases,
					Description: combo.Description,
					Severity:    combo.Severity,
					Departments: combo.Departments,
					MatchType:   types.MatchCombination,
				}
			}
		}
	}
	for _, single := range lexicon.SingleDiseases {
		for _, d := range single.Diseases {
			if strings.Contains(d, name) || strings.Contains(name, d) {
				return &types.DiseaseMatch{
					Diseases:    single.Diseases,
					Description: single.Description,
					Severity:    single.Severity,
					Departments: single.Departments,
					MatchType:   types.MatchSingle,
				}
			}
		}
	}
	return nil
}

func otherDepartmentsResult(dept string) *Result {
	alts, ok := lexicon.DepartmentAlternatives[dept]
	if !ok || len(alts) == 0 {
		return &Result{Text: fmt.Sprintf("%s 외에 딱 맞는 다른 진료과를 찾지 못했어요. 가정의학과에서 일차 진료를 받아보시는 것도 방법이에요.", dept)}
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s 대신 고려해 볼 수 있는 진료과예요.\n\n", dept))
	for _, alt := range alts {
		b.WriteString("• " + alt)
		if desc, ok := lexicon.DepartmentDescriptions[alt]; ok {
			b.WriteString(": " + desc)
		}
		b.WriteString("\n")
	}
	replies := make([]types.QuickReply, 0, len(alts))
	for _, alt := range alts {
		replies = append(replies, kakao.QuickReplyText(alt+" 찾기", alt+" 찾아줘"))
	}
	return &Result{Text: strings.TrimRight(b.String(), "\n"), QuickReplies: replies}
}

func departmentValidationResult(dept string) *Result {
	// UnknownDepartment: structured validation message, never a crash.
	return &Result{
		Text: fmt.Sprintf("'%s'은(는) 지원하지 않는 진료과예요.\n\n지원 진료과: %s",
			dept, strings.Join(lexicon.KnownDepartments, ", ")),
	}
}

func upstreamFallbackResult() *Result {
	return &Result{
		Text: "지금 병원 정보를 불러오지 못했어요. 잠시 후 다시 시도해 주세요.",
	}
}

func analysisResult(analysis *types.AnalysisResult, diagnosis *types.Diagnosis) *Result {
	var b strings.Builder
	b.WriteString(analysis.Summary + "\n")

	if diagnosis.HasDiagnosis {
		b.WriteString("\n의심해 볼 수 있는 질환: " + strings.Join(diagnosis.SuspectedDiseases, ", ") + "\n")
		if diagnosis.Description != "" {
			b.WriteString(diagnosis.Description + "\n")
		}
		if diagnosis.Severity == types.SeverityHigh || diagnosis.Severity == types.SeverityUrgent {
			b.WriteString("\n⚠️ 증상이 심하면 빨리 진료를 받아보세요.\n")
		}
	}
	if len(analysis.RelatedKeywords) > 0 {
		keywords := analysis.RelatedKeywords
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}
		b.WriteString("\n관련 검색어: " + strings.Join(keywords, ", "))
	}

	replies := []types.QuickReply{
		kakao.QuickReplyText("병원 찾기", analysis.RecommendedDepartments[0]+" 찾아줘"),
		kakao.QuickReplyText("왜요?", "왜 "+analysis.RecommendedDepartments[0]+"를 추천했어요?"),
		kakao.QuickReplyText("다른 과는?", "다른 과는 없나요?"),
	}
	return &Result{
		Text:         strings.TrimRight(b.String(), "\n"),
		Analysis:     analysis,
		Diagnosis:    diagnosis,
		QuickReplies: replies,
	}
}
