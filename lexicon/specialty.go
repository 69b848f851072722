package lexicon

// SpecialtyTerm maps a surface term (normalized) to a canonical specialty
// name. Detection uses exact containment only; when several terms match
// the same input, the longest term wins.
type SpecialtyTerm struct {
	Term      string
	Specialty string
}

var SpecialtyTerms = []SpecialtyTerm{
	// 피부과 계열
	{"아토피", "아토피"},
	{"여드름", "여드름"},
	{"건선", "건선"},
	{"탈모", "탈모"},
	{"두드러기", "두드러기"},
	// 이비인후과 계열
	{"비염", "비염"},
	{"축농증", "축농증"},
	{"이명", "이명"},
	{"귀에서소리", "이명"},
	{"코골이", "코골이"},
	{"중이염", "중이염"},
	// 정형외과 계열
	{"디스크", "허리디스크"},
	{"허리디스크", "허리디스크"},
	{"목디스크", "목디스크"},
	{"무릎통증", "무릎통증"},
	{"무릎", "무릎통증"},
	{"어깨통증", "어깨통증"},
	{"오십견", "오십견"},
	// 내과 계열
	{"위염", "위염"},
	{"속쓰림", "위염"},
	{"당뇨", "당뇨"},
	{"고혈압", "고혈압"},
	{"갑상선", "갑상선"},
	{"천식", "천식"},
	// 기타
	{"두통", "두통"},
	{"편두통", "두통"},
	{"우울증", "우울증"},
	{"우울", "우울증"},
	{"불면증", "불면증"},
	{"불면", "불면증"},
}

// SpecialtyProfile describes how to search for and rank hospitals
// treating one specialty.
type SpecialtyProfile struct {
	Department       string
	SpecialtyKeyword []string
	SearchTerms      []string
	PriorityKeywords []string
}

// SpecialtyProfiles keyed by canonical specialty name.
var SpecialtyProfiles = map[string]SpecialtyProfile{
	"아토피": {
		Department:       "피부과",
		SpecialtyKeyword: []string{"아토피", "알레르기", "면역"},
		SearchTerms:      []string{"아토피 피부과", "알레르기 피부과"},
		PriorityKeywords: []string{"아토피전문", "아토피클리닉", "알레르기"},
	},
	"여드름": {
		Department:       "피부과",
		SpecialtyKeyword: []string{"여드름", "피부관리"},
		SearchTerms:      []string{"여드름 피부과", "여드름 클리닉"},
		PriorityKeywords: []string{"여드름전문", "여드름클리닉"},
	},
	"건선": {
		Department:       "피부과",
		SpecialtyKeyword: []string{"건선", "면역"},
		SearchTerms:      []string{"건선 피부과"},
		PriorityKeywords: []string{"건선전문", "건선클리닉"},
	},
	"탈모": {
		Department:       "피부과",
		SpecialtyKeyword: []string{"탈모", "두피"},
		SearchTerms:      []string{"탈모 피부과", "탈모 클리닉"},
		PriorityKeywords: []string{"탈모전문", "탈모클리닉", "두피"},
	},
	"두드러기": {
		Department:       "피부과",
		SpecialtyKeyword: []string{"두드러기", "알레르기"},
		SearchTerms:      []string{"두드러기 피부과", "알레르기 피부과"},
		PriorityKeywords: []string{"알레르기전문", "알레르기클리닉"},
	},
	"비염": {
		Department:       "이비인후과",
		SpecialtyKeyword: []string{"비염", "알레르기"},
		SearchTerms:      []string{"비염 이비인후과", "알레르기 이비인후과"},
		PriorityKeywords: []string{"비염전문", "알레르기비염", "비염클리닉"},
	},
	"축농증": {
		Department:       "이비인후과",
		SpecialtyKeyword: []string{"축농증", "부비동"},
		SearchTerms:      []string{"축농증 이비인후과"},
		PriorityKeywords: []string{"축농증전문", "부비동"},
	},
	"이명": {
		Department:       "이비인후과",
		SpecialtyKeyword: []string{"이명", "난청", "청력"},
		SearchTerms:      []string{"이명 이비인후과", "이명 클리닉"},
		PriorityKeywords: []string{"이명전문", "이명클리닉", "난청"},
	},
	"코골이": {
		Department:       "이비인후과",
		SpecialtyKeyword: []string{"코골이", "수면"},
		SearchTerms:      []string{"코골이 이비인후과", "수면 클리닉"},
		PriorityKeywords: []string{"코골이전문", "수면클리닉"},
	},
	"중이염": {
		Department:       "이비인후과",
		SpecialtyKeyword: []string{"중이염", "귀"},
		SearchTerms:      []string{"중이염 이비인후과"},
		PriorityKeywords: []string{"중이염전문", "귀전문"},
	},
	"허리디스크": {
		Department:       "정형외과",
		SpecialtyKeyword: []string{"척추", "디스크"},
		SearchTerms:      []string{"척추 정형외과", "디스크 병원"},
		PriorityKeywords: []string{"척추전문", "디스크전문", "척추클리닉"},
	},
	"목디스크": {
		Department:       "정형외과",
		SpecialtyKeyword: []string{"척추", "목디스크", "경추"},
		SearchTerms:      []string{"목디스크 정형외과", "척추 병원"},
		PriorityKeywords: []string{"척추전문", "목디스크전문", "경추"},
	},
	"무릎통증": {
		Department:       "정형외과",
		SpecialtyKeyword: []string{"무릎", "관절"},
		SearchTerms:      []string{"무릎 정형외과", "관절 병원"},
		PriorityKeywords: []string{"관절전문", "무릎전문", "관절클리닉"},
	},
	"어깨통증": {
		Department:       "정형외과",
		SpecialtyKeyword: []string{"어깨", "관절"},
		SearchTerms:      []string{"어깨 정형외과", "관절 병원"},
		PriorityKeywords: []string{"어깨전문", "관절전문"},
	},
	"오십견": {
		Department:       "정형외과",
		SpecialtyKeyword: []string{"오십견", "어깨", "관절"},
		SearchTerms:      []string{"오십견 정형외과", "어깨 병원"},
		PriorityKeywords: []string{"오십견전문", "어깨전문"},
	},
	"위염": {
		Department:       "내과",
		SpecialtyKeyword: []string{"소화기", "위장"},
		SearchTerms:      []string{"소화기내과", "위내시경 내과"},
		PriorityKeywords: []string{"소화기전문", "내시경전문", "소화기내과"},
	},
	"당뇨": {
		Department:       "내과",
		SpecialtyKeyword: []string{"당뇨", "내분비"},
		SearchTerms:      []string{"당뇨 내과", "내분비내과"},
		PriorityKeywords: []string{"당뇨전문", "내분비전문", "당뇨클리닉"},
	},
	"고혈압": {
		Department:       "내과",
		SpecialtyKeyword: []string{"고혈압", "순환기", "심장"},
		SearchTerms:      []string{"고혈압 내과", "순환기내과"},
		PriorityKeywords: []string{"순환기전문", "심장전문"},
	},
	"갑상선": {
		Department:       "내과",
		SpecialtyKeyword: []string{"갑상선", "내분비"},
		SearchTerms:      []string{"갑상선 내과", "내분비내과"},
		PriorityKeywords: []string{"갑상선전문", "내분비전문", "갑상선클리닉"},
	},
	"천식": {
		Department:       "내과",
		SpecialtyKeyword: []string{"천식", "호흡기", "알레르기"},
		SearchTerms:      []string{"천식 내과", "호흡기내과"},
		PriorityKeywords: []string{"호흡기전문", "천식전문", "알레르기"},
	},
	"두통": {
		Department:       "신경과",
		SpecialtyKeyword: []string{"두통", "신경"},
		SearchTerms:      []string{"두통 신경과", "두통 클리닉"},
		PriorityKeywords: []string{"두통전문", "두통클리닉", "신경과전문"},
	},
	"우울증": {
		Department:       "정신건강의학과",
		SpecialtyKeyword: []string{"우울증", "마음", "상담"},
		SearchTerms:      []string{"정신건강의학과", "마음 클리닉"},
		PriorityKeywords: []string{"우울증전문", "마음클리닉"},
	},
	"불면증": {
		Department:       "정신건강의학과",
		SpecialtyKeyword: []string{"불면", "수면"},
		SearchTerms:      []string{"수면 클리닉", "정신건강의학과"},
		PriorityKeywords: []string{"수면전문", "수면클리닉", "불면증"},
	},
}
