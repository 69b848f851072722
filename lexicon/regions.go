package lexicon

import "github.com/medimatch/medimatch-agent/types"

// KnownRegions are the place names the dialogue layer recognizes in free
// text. Longer names come first so 서울 강남구 resolves to the district,
// not the city.
var KnownRegions = []string{
	// 서울 자치구
	"강남구", "강동구", "강북구", "강서구", "관악구", "광진구", "구로구",
	"금천구", "노원구", "도봉구", "동대문구", "동작구", "마포구", "서대문구",
	"서초구", "성동구", "성북구", "송파구", "양천구", "영등포구", "용산구",
	"은평구", "종로구", "중랑구",
	// 주요 역/동네 (긴 형태 먼저)
	"강남역", "삼성동", "역삼동", "논현동", "압구정", "해운대",
	"강남", "홍대", "신촌", "잠실", "여의도", "건대", "이태원", "명동",
	"역삼", "서면",
	// 광역시/도청 소재지
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"수원", "성남", "고양", "용인", "분당", "일산", "판교",
	"청주", "천안", "전주", "포항", "창원", "제주",
}

// SidoCodes maps a top-level region to its registry area code.
var SidoCodes = map[string]string{
	"서울": "110000",
	"부산": "210000",
	"대구": "230000",
	"인천": "220000",
	"광주": "240000",
	"대전": "250000",
	"울산": "260000",
	"세종": "410000",
	"경기": "310000",
	"강원": "320000",
	"충북": "330000",
	"충남": "340000",
	"전북": "350000",
	"전남": "360000",
	"경북": "370000",
	"경남": "380000",
	"제주": "390000",
}

// DefaultLocation is the fallback coordinate (서울시청) used when neither
// a region nor stored user location is available.
var DefaultLocation = types.Coordinates{X: "126.9779692", Y: "37.566535"}
