package lexicon

// DepartmentCodes maps a department name to its registry subject code,
// used when querying the public hospital registry.
var DepartmentCodes = map[string]string{
	"일반의":     "00",
	"내과":      "01",
	"신경과":     "02",
	"정신건강의학과": "03",
	"외과":      "04",
	"정형외과":    "05",
	"신경외과":    "06",
	"흉부외과":    "07",
	"성형외과":    "08",
	"마취통증의학과": "09",
	"산부인과":    "10",
	"소아청소년과":  "11",
	"안과":      "12",
	"이비인후과":   "13",
	"피부과":     "14",
	"비뇨의학과":   "15",
	"재활의학과":   "21",
	"가정의학과":   "23",
	"치과":      "49",
	"한의원":     "80",
}

// KnownDepartments is the ordered list shown to users and used to
// validate department parameters.
var KnownDepartments = []string{
	"내과", "외과", "정형외과", "신경외과", "신경과", "정신건강의학과",
	"피부과", "이비인후과", "안과", "산부인과", "소아청소년과",
	"비뇨의학과", "재활의학과", "가정의학과", "흉부외과", "성형외과",
	"마취통증의학과", "치과", "한의원",
}

// DepartmentCategory groups departments for the browsing surface.
type DepartmentCategory struct {
	Name        string
	Departments []string
}

var DepartmentCategories = []DepartmentCategory{
	{"내과 계열", []string{"내과", "가정의학과", "소아청소년과"}},
	{"외과 계열", []string{"외과", "정형외과", "신경외과", "흉부외과", "성형외과"}},
	{"신경/정신", []string{"신경과", "정신건강의학과"}},
	{"감각기관", []string{"안과", "이비인후과", "피부과"}},
	{"여성/비뇨", []string{"산부인과", "비뇨의학과"}},
	{"통증/재활", []string{"마취통증의학과", "재활의학과"}},
	{"기타", []string{"치과", "한의원"}},
}

// DepartmentDescriptions gives the one-line explanation attached to a
// recommendation.
var DepartmentDescriptions = map[string]string{
	"내과":      "감기, 소화기 질환, 만성질환 등 내과적 질환을 진료합니다.",
	"외과":      "수술적 치료가 필요한 질환과 외상을 진료합니다.",
	"정형외과":    "뼈, 관절, 근육, 인대 등 근골격계 질환을 진료합니다.",
	"신경외과":    "뇌와 척추 신경계의 수술적 질환을 진료합니다.",
	"신경과":     "두통, 어지럼증, 뇌졸중 등 신경계 질환을 진료합니다.",
	"정신건강의학과": "우울, 불안, 불면 등 정신건강 문제를 진료합니다.",
	"피부과":     "아토피, 여드름, 두드러기 등 피부 질환을 진료합니다.",
	"이비인후과":   "귀, 코, 목 질환과 어지럼증을 진료합니다.",
	"안과":      "시력 저하, 안구 건조, 충혈 등 눈 질환을 진료합니다.",
	"산부인과":    "여성 생식기 질환과 임신, 출산을 진료합니다.",
	"소아청소년과":  "영유아와 청소년의 질환을 진료합니다.",
	"비뇨의학과":   "배뇨 장애와 요로계 질환을 진료합니다.",
	"재활의학과":   "재활 치료와 만성 통증 관리를 담당합니다.",
	"가정의학과":   "나이와 질환 구분 없이 일차 진료를 제공합니다.",
	"흉부외과":    "심장, 폐, 식도 등 흉부 질환의 수술적 치료를 담당합니다.",
	"성형외과":    "선천적 기형과 외상 후 재건, 미용 수술을 담당합니다.",
	"마취통증의학과": "만성 통증의 진단과 신경 차단 치료를 담당합니다.",
	"치과":      "치아와 잇몸 질환을 진료합니다.",
	"한의원":     "한방 치료와 침, 뜸 등 전통 의학 진료를 제공합니다.",
}

// DepartmentRationales backs the "why this department" explanation when
// no session recommendation is available.
var DepartmentRationales = map[string]string{
	"내과":      "소화불량, 속쓰림, 감기, 발열 같은 내과적 증상은 내과에서 일차 진료를 받는 것이 적절합니다.",
	"정형외과":    "관절, 허리, 어깨 등 근골격계 통증은 정형외과에서 영상 검사와 함께 진단받는 것이 좋습니다.",
	"신경외과":    "디스크처럼 신경 압박이 의심되는 척추 질환은 신경외과 진료 대상이 됩니다.",
	"신경과":     "두통과 어지럼증은 신경계 원인을 배제해야 하므로 신경과 진료를 권합니다.",
	"정신건강의학과": "수면, 기분, 불안 문제는 정신건강의학과에서 전문적인 상담과 치료를 받을 수 있습니다.",
	"피부과":     "가려움, 발진, 아토피 같은 피부 증상은 피부과에서 직접 병변을 확인하는 것이 정확합니다.",
	"이비인후과":   "귀, 코, 목 증상과 이명, 어지럼증은 이비인후과 검사가 우선입니다.",
	"안과":      "눈에 나타나는 증상은 안과에서 세극등 검사 등으로 확인해야 합니다.",
	"비뇨의학과":   "배뇨 관련 증상은 비뇨의학과에서 소변 검사로 감염 여부를 확인할 수 있습니다.",
	"산부인과":    "생리 불순이나 생리통 등 여성 질환은 산부인과 진료 대상입니다.",
	"재활의학과":   "만성 근골격계 통증은 재활의학과의 물리치료와 재활 프로그램이 도움이 됩니다.",
	"가정의학과":   "증상이 애매하거나 여러 부위에 걸쳐 있으면 가정의학과에서 일차 진료를 받는 것이 좋습니다.",
	"외과":      "외상이나 수술이 필요할 수 있는 질환은 외과 진료 대상입니다.",
	"흉부외과":    "가슴 부위의 구조적 질환이 의심될 때 흉부외과 진료가 필요합니다.",
}

// DepartmentAlternatives suggests adjacent departments when the user asks
// for options beyond the recommended one.
var DepartmentAlternatives = map[string][]string{
	"내과":      {"가정의학과", "소화기내과"},
	"정형외과":    {"재활의학과", "신경외과", "마취통증의학과"},
	"신경외과":    {"정형외과", "신경과"},
	"신경과":     {"신경외과", "내과"},
	"피부과":     {"알레르기내과", "가정의학과"},
	"이비인후과":   {"내과", "신경과"},
	"안과":      {"신경과"},
	"정신건강의학과": {"신경과", "가정의학과"},
	"비뇨의학과":   {"내과"},
	"산부인과":    {"내과", "비뇨의학과"},
	"재활의학과":   {"정형외과", "마취통증의학과"},
	"가정의학과":   {"내과"},
}
