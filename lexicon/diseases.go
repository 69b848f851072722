package lexicon

import "github.com/medimatch/medimatch-agent/types"

// CombinationEntry triggers when every member symptom fuzzy-matches the
// input. Combinations carry more clinical signal than any single member
// and are evaluated before single-symptom entries.
type CombinationEntry struct {
	Symptoms    []string
	Diseases    []string
	Departments []string
	Severity    types.Severity
	Description string
}

// SingleDiseaseEntry triggers on one fuzzy-matched symptom key.
type SingleDiseaseEntry struct {
	Symptom     string
	Diseases    []string
	Departments []string
	Severity    types.Severity
	Description string
}

// DiseaseCombinations in priority order. All member keys are normalized.
var DiseaseCombinations = []CombinationEntry{
	{
		Symptoms:    []string{"어지", "귀에서소리"},
		Diseases:    []string{"메니에르병", "이석증", "전정신경염"},
		Departments: []string{"이비인후과", "신경과"},
		Severity:    types.SeverityMedium,
		Description: "어지럼증과 이명이 함께 나타나면 내이 전정기관의 이상을 의심할 수 있습니다. 이비인후과 진료를 권합니다.",
	},
	{
		Symptoms:    []string{"어지", "이명"},
		Diseases:    []string{"메니에르병", "이석증"},
		Departments: []string{"이비인후과", "신경과"},
		Severity:    types.SeverityMedium,
		Description: "어지럼증과 이명이 함께 나타나면 내이 전정기관의 이상을 의심할 수 있습니다. 이비인후과 진료를 권합니다.",
	},
	{
		Symptoms:    []string{"가렵", "각질"},
		Diseases:    []string{"아토피피부염", "건선", "습진"},
		Departments: []string{"피부과"},
		Severity:    types.SeverityLow,
		Description: "가려움과 각질이 동반되면 만성 염증성 피부질환 가능성이 있습니다. 피부과에서 정확한 진단을 받으세요.",
	},
	{
		Symptoms:    []string{"가렵", "붉어"},
		Diseases:    []string{"아토피피부염", "접촉성피부염", "두드러기"},
		Departments: []string{"피부과"},
		Severity:    types.SeverityLow,
		Description: "가려움과 피부 발적이 함께 있으면 알레르기성 피부질환을 의심할 수 있습니다.",
	},
	{
		Symptoms:    []string{"가렵", "아토피"},
		Diseases:    []string{"아토피피부염"},
		Departments: []string{"피부과"},
		Severity:    types.SeverityLow,
		Description: "아토피피부염은 만성 재발성 질환으로 꾸준한 피부과 관리가 필요합니다.",
	},
	{
		Symptoms:    []string{"허리", "저려"},
		Diseases:    []string{"허리디스크", "좌골신경통", "척추관협착증"},
		Departments: []string{"정형외과", "신경외과"},
		Severity:    types.SeverityMedium,
		Description: "허리 통증과 다리 저림이 함께 나타나면 요추 추간판 탈출증(허리디스크)을 의심할 수 있습니다.",
	},
	{
		Symptoms:    []string{"허리", "저리"},
		Diseases:    []string{"허리디스크", "좌골신경통"},
		Departments: []string{"정형외과", "신경외과"},
		Severity:    types.SeverityMedium,
		Description: "허리 통증과 다리 저림이 함께 나타나면 요추 추간판 탈출증(허리디스크)을 의심할 수 있습니다.",
	},
	{
		Symptoms:    []string{"두통", "어지"},
		Diseases:    []string{"편두통", "긴장성두통", "빈혈"},
		Departments: []string{"신경과", "내과"},
		Severity:    types.SeverityMedium,
		Description: "두통과 어지럼증이 함께 지속되면 신경과 진료로 원인을 확인하는 것이 좋습니다.",
	},
	{
		Symptoms:    []string{"기침", "콧물"},
		Diseases:    []string{"감기", "상기도감염", "알레르기비염"},
		Departments: []string{"내과", "이비인후과"},
		Severity:    types.SeverityLow,
		Description: "기침과 콧물이 함께 있으면 감기 등 상기도 감염일 가능성이 높습니다. 증상이 1주 이상 지속되면 진료를 받으세요.",
	},
	{
		Symptoms:    []string{"기침", "발열"},
		Diseases:    []string{"독감", "폐렴", "기관지염"},
		Departments: []string{"내과"},
		Severity:    types.SeverityMedium,
		Description: "기침과 발열이 동반되면 독감이나 하기도 감염 가능성이 있어 내과 진료가 필요합니다.",
	},
	{
		Symptoms:    []string{"복통", "설사"},
		Diseases:    []string{"장염", "과민성대장증후군", "식중독"},
		Departments: []string{"내과"},
		Severity:    types.SeverityMedium,
		Description: "복통과 설사가 함께 나타나면 급성 장염이나 식중독을 의심할 수 있습니다. 수분을 충분히 섭취하세요.",
	},
	{
		Symptoms:    []string{"가슴", "두근"},
		Diseases:    []string{"부정맥", "갑상선기능항진증", "불안장애"},
		Departments: []string{"내과", "정신건강의학과"},
		Severity:    types.SeverityMedium,
		Description: "가슴 두근거림이 반복되면 심장 리듬이나 갑상선 기능 검사가 필요할 수 있습니다.",
	},
	{
		Symptoms:    []string{"소변", "통증"},
		Diseases:    []string{"방광염", "요로감염"},
		Departments: []string{"비뇨의학과"},
		Severity:    types.SeverityMedium,
		Description: "배뇨 시 통증이 있으면 요로 감염 가능성이 높습니다. 비뇨의학과에서 소변 검사를 받으세요.",
	},
}

// SingleDiseases in priority order, evaluated after combinations.
var SingleDiseases = []SingleDiseaseEntry{
	{
		Symptom:     "아토피",
		Diseases:    []string{"아토피피부염"},
		Departments: []string{"피부과"},
		Severity:    types.SeverityLow,
		Description: "아토피피부염은 만성 재발성 질환으로 꾸준한 피부과 관리가 필요합니다.",
	},
	{
		Symptom:     "이명",
		Diseases:    []string{"이명증", "돌발성난청"},
		Departments: []string{"이비인후과"},
		Severity:    types.SeverityMedium,
		Description: "이명이 지속되면 청력 검사를 포함한 이비인후과 진료를 받는 것이 좋습니다.",
	},
	{
		Symptom:     "귀에서소리",
		Diseases:    []string{"이명증"},
		Departments: []string{"이비인후과"},
		Severity:    types.SeverityMedium,
		Description: "이명이 지속되면 청력 검사를 포함한 이비인후과 진료를 받는 것이 좋습니다.",
	},
	{
		Symptom:     "두통",
		Diseases:    []string{"긴장성두통", "편두통"},
		Departments: []string{"신경과", "내과"},
		Severity:    types.SeverityLow,
		Description: "반복되는 두통은 유형에 따라 치료가 다르므로 신경과 상담을 권합니다.",
	},
	{
		Symptom:     "속쓰림",
		Diseases:    []string{"위염", "역류성식도염"},
		Departments: []string{"내과"},
		Severity:    types.SeverityLow,
		Description: "속쓰림이 반복되면 위염이나 역류성 식도염 가능성이 있어 내과 진료를 권합니다.",
	},
	{
		Symptom:     "쓰려",
		Diseases:    []string{"위염", "역류성식도염"},
		Departments: []string{"내과"},
		Severity:    types.SeverityLow,
		Description: "속쓰림이 반복되면 위염이나 역류성 식도염 가능성이 있어 내과 진료를 권합니다.",
	},
	{
		Symptom:     "무릎",
		Diseases:    []string{"퇴행성관절염", "슬개골연골연화증"},
		Departments: []string{"정형외과"},
		Severity:    types.SeverityLow,
		Description: "무릎 통증이 지속되면 관절 상태 확인을 위해 정형외과 진료를 권합니다.",
	},
	{
		Symptom:     "비염",
		Diseases:    []string{"알레르기비염"},
		Departments: []string{"이비인후과"},
		Severity:    types.SeverityLow,
		Description: "알레르기비염은 원인 항원 확인과 꾸준한 관리가 중요합니다.",
	},
	{
		Symptom:     "설사",
		Diseases:    []string{"장염", "과민성대장증후군"},
		Departments: []string{"내과"},
		Severity:    types.SeverityLow,
		Description: "설사가 2일 이상 지속되거나 혈변이 보이면 내과 진료가 필요합니다.",
	},
	{
		Symptom:     "변비",
		Diseases:    []string{"변비", "과민성대장증후군"},
		Departments: []string{"내과"},
		Severity:    types.SeverityLow,
		Description: "만성 변비는 생활 습관 개선과 함께 내과 상담을 받는 것이 좋습니다.",
	},
	{
		Symptom:     "불면",
		Diseases:    []string{"불면증"},
		Departments: []string{"정신건강의학과"},
		Severity:    types.SeverityLow,
		Description: "불면이 2주 이상 지속되면 정신건강의학과 상담을 고려하세요.",
	},
	{
		Symptom:     "탈모",
		Diseases:    []string{"탈모증"},
		Departments: []string{"피부과"},
		Severity:    types.SeverityLow,
		Description: "탈모는 원인에 따라 치료법이 다르므로 피부과에서 두피 진단을 받으세요.",
	},
}

// KnownDiseases are the disease names the intent layer recognizes in
// confirmation questions ("감기인가요?"). Longer names first so 허리디스크
// wins over 디스크.
var KnownDiseases = []string{
	"역류성식도염", "과민성대장증후군", "아토피피부염", "허리디스크", "목디스크",
	"메니에르병", "공황장애", "축농증", "중이염", "결막염", "방광염",
	"요로감염", "갑상선", "고혈압", "우울증", "불면증", "이석증",
	"아토피", "편두통", "몸살", "감기", "독감", "장염", "위염", "비염",
	"천식", "당뇨", "빈혈", "이명", "건선", "습진", "디스크", "두통",
	"탈모", "변비",
}

// DiseaseKeywordEntry holds clinic-search keywords associated with a
// disease or symptom family, surfaced as related keywords when the
// entry name overlaps a matched symptom.
type DiseaseKeywordEntry struct {
	Name     string
	Keywords []string
}

var DiseaseKeywords = []DiseaseKeywordEntry{
	{"아토피", []string{"아토피", "아토피피부염", "알레르기", "피부면역"}},
	{"두드러기", []string{"두드러기", "알레르기", "피부과"}},
	{"이명", []string{"이명", "난청", "어지럼증", "청력검사"}},
	{"귀에서소리", []string{"이명", "난청", "청력검사"}},
	{"어지러", []string{"어지럼증", "이석증", "전정기능검사"}},
	{"어지럽", []string{"어지럼증", "이석증", "전정기능검사"}},
	{"두통", []string{"두통클리닉", "편두통", "신경과"}},
	{"허리", []string{"척추", "디스크", "통증클리닉"}},
	{"디스크", []string{"척추", "디스크", "통증클리닉"}},
	{"무릎", []string{"관절", "연골", "정형외과"}},
	{"어깨", []string{"오십견", "회전근개", "재활치료"}},
	{"속쓰림", []string{"위내시경", "소화기내과", "역류성식도염"}},
	{"소화", []string{"위내시경", "소화기내과"}},
	{"비염", []string{"비염", "알레르기", "코내시경"}},
	{"기침", []string{"호흡기내과", "감기", "기관지"}},
	{"불면", []string{"수면클리닉", "수면다원검사"}},
	{"탈모", []string{"탈모클리닉", "두피관리"}},
	{"소변", []string{"비뇨의학과", "방광염", "요로감염"}},
}
