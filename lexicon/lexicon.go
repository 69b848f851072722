// Package lexicon holds the static dictionaries driving symptom analysis:
// symptom→department tables, symptom-combination→disease tables, specialty
// keyword profiles, emergency keyword categories and department metadata.
//
// All keys are stored pre-normalized (no whitespace, lowercase, no
// punctuation) and are only ever compared against normalized input. Tables
// are slices, not maps, because iteration order is part of the matching
// contract: matched symptoms are reported in table order.
package lexicon

// SymptomEntry maps one symptom key to its departments. Department order
// encodes recommendation priority; the first entry is the primary
// department and earns the highest reciprocal-rank weight.
type SymptomEntry struct {
	Key         string
	Departments []string
}

// SymptomDepartments is the primary symptom→department table.
var SymptomDepartments = []SymptomEntry{
	// 피부
	{"가렵", []string{"피부과"}},
	{"가려", []string{"피부과"}},
	{"두드러기", []string{"피부과"}},
	{"발진", []string{"피부과"}},
	{"아토피", []string{"피부과"}},
	{"여드름", []string{"피부과"}},
	{"습진", []string{"피부과"}},
	{"건선", []string{"피부과"}},
	{"각질", []string{"피부과"}},
	{"피부", []string{"피부과"}},
	{"탈모", []string{"피부과"}},
	{"붉어", []string{"피부과"}},

	// 소화기
	{"소화", []string{"내과"}},
	{"속쓰림", []string{"내과"}},
	{"쓰려", []string{"내과"}},
	{"더부룩", []string{"내과"}},
	{"복통", []string{"내과", "외과"}},
	{"배가아파", []string{"내과", "외과"}},
	{"배가아프", []string{"내과", "외과"}},
	{"꾸르륵", []string{"내과"}},
	{"설사", []string{"내과"}},
	{"변비", []string{"내과"}},
	{"구토", []string{"내과"}},
	{"메스꺼", []string{"내과"}},

	// 호흡기
	{"기침", []string{"내과", "이비인후과"}},
	{"콧물", []string{"이비인후과", "내과"}},
	{"가래", []string{"내과", "이비인후과"}},
	{"감기", []string{"내과", "이비인후과"}},
	{"발열", []string{"내과"}},
	{"열이나", []string{"내과"}},
	{"숨이차", []string{"내과", "흉부외과"}},

	// 근골격
	{"무릎", []string{"정형외과", "재활의학과"}},
	{"허리", []string{"정형외과", "신경외과", "재활의학과"}},
	{"어깨", []string{"정형외과", "재활의학과"}},
	{"관절", []string{"정형외과", "재활의학과"}},
	{"발목", []string{"정형외과"}},
	{"삐끗", []string{"정형외과"}},
	{"뻐근", []string{"정형외과", "재활의학과"}},
	{"손목", []string{"정형외과"}},
	{"목디스크", []string{"정형외과", "신경외과"}},
	{"디스크", []string{"정형외과", "신경외과"}},
	{"저려", []string{"신경외과", "정형외과", "신경과"}},
	{"저리", []string{"신경외과", "정형외과", "신경과"}},

	// 신경/머리
	{"두통", []string{"신경과", "내과"}},
	{"머리가아파", []string{"신경과", "내과"}},
	{"머리가아프", []string{"신경과", "내과"}},
	{"지끈", []string{"신경과", "내과"}},
	{"어지러", []string{"신경과", "이비인후과"}},
	{"어지럽", []string{"신경과", "이비인후과"}},
	{"현기증", []string{"신경과", "이비인후과"}},

	// 귀/코/목
	{"귀에서소리", []string{"이비인후과"}},
	{"이명", []string{"이비인후과"}},
	{"귀가먹먹", []string{"이비인후과"}},
	{"코막힘", []string{"이비인후과"}},
	{"코가막", []string{"이비인후과"}},
	{"목이아파", []string{"이비인후과", "내과"}},
	{"목이아프", []string{"이비인후과", "내과"}},
	{"편도", []string{"이비인후과", "내과"}},
	{"비염", []string{"이비인후과"}},
	{"축농증", []string{"이비인후과"}},

	// 눈
	{"침침", []string{"안과"}},
	{"눈이빨개", []string{"안과"}},
	{"눈이아파", []string{"안과"}},
	{"눈이아프", []string{"안과"}},
	{"눈곱", []string{"안과"}},
	{"시력", []string{"안과"}},

	// 가슴/순환기
	{"가슴이아파", []string{"내과", "흉부외과"}},
	{"가슴이아프", []string{"내과", "흉부외과"}},
	{"가슴통증", []string{"내과", "흉부외과"}},
	{"두근", []string{"내과"}},

	// 비뇨/산부인과
	{"소변", []string{"비뇨의학과"}},
	{"빈뇨", []string{"비뇨의학과"}},
	{"잔뇨", []string{"비뇨의학과"}},
	{"생리통", []string{"산부인과"}},
	{"생리불순", []string{"산부인과"}},

	// 정신건강
	{"불면", []string{"정신건강의학과"}},
	{"우울", []string{"정신건강의학과"}},
	{"불안", []string{"정신건강의학과"}},
	{"공황", []string{"정신건강의학과"}},

	// 전신
	{"피곤", []string{"내과", "가정의학과"}},
	{"피로", []string{"내과", "가정의학과"}},
	{"몸살", []string{"내과", "가정의학과"}},
}
