package lexicon

import "github.com/medimatch/medimatch-agent/types"

// EmergencyCategory is one life-threatening condition family. A category
// fires when any of its keywords is contained in the normalized input;
// only the first matching keyword per category is reported.
type EmergencyCategory struct {
	Name     string
	Keywords []string
}

// EmergencyCategories in fixed evaluation order.
var EmergencyCategories = []EmergencyCategory{
	{"뇌졸중", []string{"마비", "말이어눌", "어눌", "안면마비", "한쪽팔에힘", "팔다리에힘이없", "발음이새"}},
	{"심근경색", []string{"가슴을쥐어짜", "심장이조여", "식은땀", "흉통", "가슴통증"}},
	{"대량출혈", []string{"피가멈추지", "출혈이멈추지", "대량출혈", "피를토", "피가많이"}},
	{"호흡곤란", []string{"숨을못쉬", "숨이안쉬어", "숨쉬기힘들", "호흡곤란", "질식"}},
	{"의식저하", []string{"의식을잃", "의식이없", "깨워도일어나지", "기절", "쓰러졌"}},
	{"중독", []string{"약을한꺼번에", "약물과다", "농약", "음독", "중독"}},
	{"아나필락시스", []string{"아나필락시스", "알레르기쇼크", "벌에쏘", "목이붓고숨", "온몸에두드러기가나고숨"}},
	{"발작", []string{"경련", "발작", "거품을물"}},
}

// EmergencyGuidanceFor returns the static first-aid guidance attached to
// every emergency result. The text does not vary by category.
func EmergencyGuidanceFor() types.EmergencyGuidance {
	return types.EmergencyGuidance{
		Call: "즉시 119에 전화하세요. 증상 시작 시각을 기억해 두세요.",
		Actions: []string{
			"환자를 안전한 곳에 눕히고 기도를 확보하세요.",
			"의식이 있는지 말을 걸어 확인하세요.",
			"119 상담원의 안내에 따라 행동하세요.",
			"가능하면 복용 중인 약 목록을 준비하세요.",
		},
		DoNotMove: "목이나 척추 손상이 의심되면 환자를 함부로 움직이지 마세요.",
	}
}
