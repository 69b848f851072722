package intent

import "strings"

// Length ceilings keep short-message intents from swallowing longer
// symptom sentences that happen to contain a trigger substring.
const (
	maxGreetingLen = 15
	maxHelpLen     = 20
	maxBareWhyLen  = 20
	maxShortAskLen = 25

	// Bare body-part mentions need at least this much context to count as
	// a symptom description.
	minBodyPartLen = 4
)

var greetingKeywords = []string{
	"안녕", "하이", "헬로", "반가워", "반갑습니다", "hello", "hi", "좋은아침",
}

var helpKeywords = []string{
	"도움말", "도와줘", "사용법", "어떻게써", "어떻게사용", "뭘할수있",
	"무엇을할수있", "help", "설명서", "기능이뭐",
}

var whyKeywords = []string{"왜", "이유", "어째서", "근거"}

var bareWhyPatterns = []string{
	"왜요", "왜죠", "왜예요", "왜에요", "왜그래", "이유가뭐", "무슨이유", "이유가궁금",
}

var confirmationMarkers = []string{
	"인가요", "일까요", "아닌가요", "맞나요", "인건가요", "걸까요", "인지궁금", "아니에요",
}

var suggestOtherKeywords = []string{
	"다른과", "다른진료과", "다른선택지", "다른데는없", "다른곳은없",
}

var moreExplicitKeywords = []string{
	"더보여줘", "더알려줘", "더찾아줘", "더추천", "다른병원", "다른곳",
}

var moreQuantifiers = []string{"다른", "또", "더"}

var hospitalActionKeywords = []string{"병원", "추천", "찾아", "검색", "알려", "어디"}

var painKeywords = []string{
	"아파", "아프", "아픈", "통증", "쑤셔", "쑤시", "저려", "저리", "결려", "결리", "쓰려", "쓰라",
}

var symptomKeywords = []string{
	"가렵", "가려", "간지", "열나", "열이", "기침", "콧물", "가래", "어지럽", "어지러",
	"메스껍", "메스꺼", "구토", "토할", "설사", "변비", "소화", "붓고", "부었", "부어",
	"답답", "피곤", "피로", "불면", "잠이안", "우울", "불안", "두근", "침침", "이명",
}

var bodyPartKeywords = []string{
	"머리", "이마", "눈", "귀", "코", "목", "어깨", "가슴", "배", "허리",
	"팔", "다리", "무릎", "발목", "손목", "손", "발", "피부", "엉덩이", "골반",
}

func matchGreeting(u *utterance) *Intent {
	if u.runeLen < maxGreetingLen && containsAny(u.norm, greetingKeywords) {
		return &Intent{Type: Greeting}
	}
	return nil
}

func matchExplain(u *utterance) *Intent {
	if u.department != "" && containsAny(u.norm, whyKeywords) {
		return &Intent{Type: ExplainRecommendation, Department: u.department}
	}
	if u.runeLen < maxBareWhyLen && (u.norm == "왜" || containsAny(u.norm, bareWhyPatterns)) {
		return &Intent{Type: ExplainRecommendation}
	}
	return nil
}

func matchHelp(u *utterance) *Intent {
	if u.runeLen < maxHelpLen && containsAny(u.norm, helpKeywords) {
		return &Intent{Type: Help}
	}
	return nil
}

func matchAskDisease(u *utterance) *Intent {
	disease := extractDisease(u.norm)
	if disease == "" {
		return nil
	}
	shortQuestion := u.runeLen < maxShortAskLen && strings.Contains(u.raw, "?")
	if containsAny(u.norm, confirmationMarkers) || shortQuestion {
		return &Intent{Type: AskDiseaseInfo, DiseaseName: disease, QuestionType: "confirmation"}
	}
	return nil
}

func matchSuggestOther(u *utterance) *Intent {
	if containsAny(u.norm, suggestOtherKeywords) {
		return &Intent{Type: SuggestOtherDepartments}
	}
	return nil
}

func matchMoreHospitals(u *utterance) *Intent {
	if containsAny(u.norm, moreExplicitKeywords) {
		return &Intent{Type: MoreHospitals}
	}
	if containsAny(u.norm, moreQuantifiers) && containsAny(u.norm, hospitalActionKeywords) {
		return &Intent{Type: MoreHospitals}
	}
	return nil
}

func matchSearchPharmacy(u *utterance) *Intent {
	if strings.Contains(u.norm, "약국") {
		return &Intent{Type: SearchPharmacy, Region: u.region}
	}
	return nil
}

func matchSearchHospital(u *utterance) *Intent {
	if u.department == "" {
		return nil
	}
	if u.region != "" || containsAny(u.norm, hospitalActionKeywords) {
		return &Intent{Type: SearchHospital, Region: u.region, Department: u.department}
	}
	return nil
}

func matchAnalyzeSymptoms(u *utterance) *Intent {
	hit := containsAny(u.norm, painKeywords) ||
		containsAny(u.norm, symptomKeywords) ||
		extractDisease(u.norm) != "" ||
		(containsAny(u.norm, bodyPartKeywords) && u.runeLen >= minBodyPartLen)
	if hit {
		return &Intent{Type: AnalyzeSymptoms, Symptoms: u.raw, Region: u.region}
	}
	return nil
}
