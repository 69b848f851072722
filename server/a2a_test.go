package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trpc.group/trpc-go/trpc-a2a-go/protocol"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/medimatch/medimatch-agent/config"
	"github.com/medimatch/medimatch-agent/dialogue"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/registry"
	"github.com/medimatch/medimatch-agent/session"
	"github.com/medimatch/medimatch-agent/types"
)

func newTestProcessor(fake *fakeSearch) *ToolProcessor {
	handler := dialogue.NewHandler(fake, session.NewManager())
	return NewToolProcessor(handler, fake)
}

func resultText(t *testing.T, res *taskmanager.MessageProcessingResult) string {
	t.Helper()
	msg, ok := res.Result.(*protocol.Message)
	if !ok {
		t.Fatalf("Expected a message result, got %T", res.Result)
	}
	return extractText(*msg)
}

func dispatchJSON(t *testing.T, p *ToolProcessor, skill, args string) map[string]interface{} {
	t.Helper()
	call := toolCall{Skill: skill, Args: json.RawMessage(args)}
	res := p.dispatch(context.Background(), call)

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("decoding tool payload: %v", err)
	}
	return payload
}

// TestAnalyzeSymptomsTool tests the structured analysis skill
func TestAnalyzeSymptomsTool(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "analyze_symptoms", `{"symptoms":"머리가 어지럽고 귀에서 소리가 나요"}`)
	if payload["error"] != nil {
		t.Fatalf("Expected success, got error %v", payload["error"])
	}
	analysis, ok := payload["analysis"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected an analysis block, got %+v", payload)
	}
	depts, _ := analysis["recommended_departments"].([]interface{})
	if len(depts) == 0 {
		t.Errorf("Expected recommended departments, got %+v", analysis)
	}
	if _, ok := payload["diagnosis"]; !ok {
		t.Errorf("Expected a diagnosis block")
	}
	if _, ok := payload["emergency"]; ok {
		t.Errorf("Expected no emergency block for a routine utterance")
	}
}

// TestAnalyzeSymptomsToolFlagsEmergency tests that danger keywords surface
func TestAnalyzeSymptomsToolFlagsEmergency(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "analyze_symptoms", `{"symptoms":"가슴을 쥐어짜는 것 같고 식은땀이 나요"}`)
	if _, ok := payload["emergency"]; !ok {
		t.Errorf("Expected an emergency block, got %+v", payload)
	}
}

// TestSearchHospitalsToolValidatesDepartment tests the department guard
func TestSearchHospitalsToolValidatesDepartment(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "search_hospitals", `{"region":"강남","department":"없는과"}`)
	if payload["code"] != types.ErrCodeUnknownDepartment {
		t.Fatalf("Expected code %s, got %+v", types.ErrCodeUnknownDepartment, payload)
	}
	if payload["success"] != false {
		t.Errorf("Expected success false, got %v", payload["success"])
	}
	options, _ := payload["valid_options"].([]interface{})
	found := false
	for _, o := range options {
		if o == "피부과" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 피부과 among the valid options, got %v", options)
	}
}

// TestSearchHospitalsTool tests the happy path
func TestSearchHospitalsTool(t *testing.T) {
	fake := &fakeSearch{
		keywordFn: func(query string, opt kakao.SearchOptions) *types.SearchResult {
			if query != "강남 피부과" {
				t.Errorf("Expected query 강남 피부과, got %q", query)
			}
			return &types.SearchResult{Success: true, Places: testPlaces(2)}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_hospitals", `{"region":"강남","department":"피부과"}`)
	places, _ := payload["places"].([]interface{})
	if len(places) != 2 {
		t.Errorf("Expected 2 places, got %+v", payload)
	}
}

// TestFindSpecialistHospitalTool tests specialty term extraction and ranking
func TestFindSpecialistHospitalTool(t *testing.T) {
	fake := &fakeSearch{
		keywordFn: func(query string, opt kakao.SearchOptions) *types.SearchResult {
			if query != "아토피 피부과" {
				t.Errorf("Expected the specialty search term, got %q", query)
			}
			return &types.SearchResult{Success: true, Places: testPlaces(2)}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "find_specialist_hospital", `{"region":"강남","text":"아토피 전문 병원"}`)
	if payload["error"] != nil {
		t.Fatalf("Expected success, got %v", payload["error"])
	}
	specialty, _ := payload["specialty"].(map[string]interface{})
	if specialty["department"] != "피부과" {
		t.Errorf("Expected 피부과 specialty mapping, got %+v", specialty)
	}
}

// TestReferenceTools tests the department and region listings
func TestReferenceTools(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	res := p.dispatch(context.Background(), toolCall{Skill: "get_available_departments"})
	text := resultText(t, res)
	if !strings.Contains(text, "피부과") || !strings.Contains(text, "정형외과") {
		t.Errorf("Expected known departments in %q", text)
	}

	res = p.dispatch(context.Background(), toolCall{Skill: "get_available_regions"})
	text = resultText(t, res)
	if !strings.Contains(text, "강남") {
		t.Errorf("Expected known regions in %q", text)
	}
}

// TestUnknownSkillReturnsError tests the dispatch fallback
func TestUnknownSkillReturnsError(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "order_pizza", `{}`)
	if payload["error"] == nil {
		t.Errorf("Expected an unknown-skill error, got %+v", payload)
	}
}

// TestRenderToolTextListsPlaces tests the text flattening for plain callers
func TestRenderToolTextListsPlaces(t *testing.T) {
	res := &dialogue.Result{
		Text:   "강남 주변 피부과이에요.",
		Places: testPlaces(2),
	}
	text := renderToolText(res)
	if !strings.Contains(text, "1. 테스트의원1") || !strings.Contains(text, "2. 테스트의원2") {
		t.Errorf("Expected numbered places, got %q", text)
	}
	if !strings.Contains(text, "02-000-0000") {
		t.Errorf("Expected phone numbers included, got %q", text)
	}
}

// TestAgentCardFromManifest tests the card mapping
func TestAgentCardFromManifest(t *testing.T) {
	m := &config.Manifest{
		Name:        "medimatch",
		Description: "symptom triage agent",
		Version:     "1.0.0",
		URL:         "http://localhost:8084",
		Skills: []config.SkillEntry{
			{Name: "analyze_symptoms", Description: "map symptoms", Tags: []string{"analysis"}},
			{Name: "search_hospitals", Description: "find hospitals"},
		},
	}

	card := AgentCard(m)
	if card.Name != "medimatch" || card.Version != "1.0.0" {
		t.Errorf("Expected manifest identity on the card, got %s %s", card.Name, card.Version)
	}
	if len(card.Skills) != 2 {
		t.Fatalf("Expected 2 skills, got %d", len(card.Skills))
	}
	if card.Skills[0].ID != "analyze_symptoms" {
		t.Errorf("Expected skill ids preserved, got %s", card.Skills[0].ID)
	}
	if card.Skills[0].Description == nil || *card.Skills[0].Description != "map symptoms" {
		t.Errorf("Expected skill description carried over")
	}
}

// TestSearchNearbyHospitalsTool tests the coordinate-anchored hospital sweep
func TestSearchNearbyHospitalsTool(t *testing.T) {
	var gotCategory string
	var gotOpt kakao.SearchOptions
	fake := &fakeSearch{
		categoryFn: func(category string, opt kakao.SearchOptions) *types.SearchResult {
			gotCategory = category
			gotOpt = opt
			return &types.SearchResult{Success: true, Places: testPlaces(3)}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_nearby_hospitals", `{"x":"127.03","y":"37.49"}`)

	if gotCategory != "병원" {
		t.Errorf("Expected category 병원, got %q", gotCategory)
	}
	if gotOpt.X != "127.03" || gotOpt.Y != "37.49" {
		t.Errorf("Expected search anchored at the given coordinates, got %s,%s", gotOpt.X, gotOpt.Y)
	}
	places, ok := payload["places"].([]interface{})
	if !ok || len(places) != 3 {
		t.Errorf("Expected 3 places, got %v", payload["places"])
	}
}

func TestSearchNearbyHospitalsToolRequiresCoordinates(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "search_nearby_hospitals", `{"department":"피부과"}`)

	if _, ok := payload["error"]; !ok {
		t.Errorf("Expected an error without coordinates, got %v", payload)
	}
}

// TestSearchHospitalsNearPlaceTool tests place-name resolution before the search
func TestSearchHospitalsNearPlaceTool(t *testing.T) {
	var resolved string
	var gotQuery string
	fake := &fakeSearch{
		resolveFn: func(place string) *types.ResolvedLocation {
			resolved = place
			return &types.ResolvedLocation{Success: true, X: "127.1", Y: "37.4", PlaceName: place}
		},
		keywordFn: func(query string, opt kakao.SearchOptions) *types.SearchResult {
			gotQuery = query
			return &types.SearchResult{Success: true, Places: testPlaces(2)}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_hospitals_near_place", `{"place":"서울역","department":"정형외과"}`)

	if resolved != "서울역" {
		t.Errorf("Expected 서울역 to be resolved, got %q", resolved)
	}
	if gotQuery != "정형외과" {
		t.Errorf("Expected a department keyword search, got %q", gotQuery)
	}
	if payload["place"] != "서울역" {
		t.Errorf("Expected the place echoed back, got %v", payload["place"])
	}
}

// TestSearchNearbyWithPharmacyTool tests the combined hospital+pharmacy sweep
func TestSearchNearbyWithPharmacyTool(t *testing.T) {
	var categories []string
	fake := &fakeSearch{
		categoryFn: func(category string, opt kakao.SearchOptions) *types.SearchResult {
			categories = append(categories, category)
			return &types.SearchResult{Success: true, Places: testPlaces(2)}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_nearby_with_pharmacy", `{"x":"127.0","y":"37.5"}`)

	if len(categories) != 2 || categories[0] != "병원" || categories[1] != "약국" {
		t.Errorf("Expected 병원 then 약국 category searches, got %v", categories)
	}
	if _, ok := payload["hospitals"]; !ok {
		t.Errorf("Expected hospitals in the payload, got %v", payload)
	}
	if _, ok := payload["pharmacies"]; !ok {
		t.Errorf("Expected pharmacies in the payload, got %v", payload)
	}
}

func TestSearchNearbyWithPharmacyToolPlaceFallback(t *testing.T) {
	fake := &fakeSearch{
		resolveFn: func(place string) *types.ResolvedLocation {
			return &types.ResolvedLocation{Success: true, X: "126.9", Y: "37.5", PlaceName: place}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_nearby_with_pharmacy", `{"place":"홍대입구역"}`)

	origin, ok := payload["origin"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected an origin in the payload, got %v", payload["origin"])
	}
	if origin["x"] != "126.9" {
		t.Errorf("Expected the resolved place coordinates, got %v", origin["x"])
	}
}

// TestFindSpecialistFallsBackToRegistry tests the public-registry fallback
// when place search finds nothing
func TestFindSpecialistFallsBackToRegistry(t *testing.T) {
	reg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("dgsbjtCd") != "14" {
			t.Errorf("Expected 피부과 subject code 14, got %q", r.URL.Query().Get("dgsbjtCd"))
		}
		w.Write([]byte(`{"response":{"body":{"items":{"item":{
			"yadmNm":"등록피부과의원","addr":"서울 강남구","telno":"02-777-8888",
			"clCdNm":"의원","XPos":127.05,"YPos":37.5,"ykiho":"R001"
		}},"totalCount":1}}}`))
	}))
	defer reg.Close()

	fake := &fakeSearch{
		keywordFn: func(query string, opt kakao.SearchOptions) *types.SearchResult {
			return &types.SearchResult{Success: true, Places: []types.Place{}}
		},
	}
	handler := dialogue.NewHandler(fake, session.NewManager())
	p := NewToolProcessor(handler, fake,
		WithRegistry(registry.NewClient("reg-key", registry.WithBaseURL(reg.URL))))

	payload := dispatchJSON(t, p, "find_specialist_hospital", `{"region":"서울","text":"아토피 피부과"}`)

	if payload["source"] != "registry" {
		t.Fatalf("Expected the registry source, got %v", payload["source"])
	}
	places, ok := payload["places"].([]interface{})
	if !ok || len(places) != 1 {
		t.Fatalf("Expected 1 fallback place, got %v", payload["places"])
	}
	first := places[0].(map[string]interface{})
	if first["name"] != "등록피부과의원" {
		t.Errorf("Expected 등록피부과의원, got %v", first["name"])
	}
}

// TestSearchHospitalsToolUnknownRegion tests the region validation shape
func TestSearchHospitalsToolUnknownRegion(t *testing.T) {
	fake := &fakeSearch{
		resolveFn: func(place string) *types.ResolvedLocation {
			return &types.ResolvedLocation{Success: false, Error: "검색 결과가 없습니다", Suggestion: "행정구역 이름을 확인해주세요"}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_hospitals", `{"region":"없는동네","department":"피부과"}`)

	if payload["code"] != types.ErrCodeUnknownRegion {
		t.Fatalf("Expected code %s, got %+v", types.ErrCodeUnknownRegion, payload)
	}
	if options, _ := payload["valid_options"].([]interface{}); len(options) == 0 {
		t.Errorf("Expected known regions listed, got %v", payload["valid_options"])
	}
}

// TestSearchHospitalsToolUpstreamFailure tests the recoverable failure shape
func TestSearchHospitalsToolUpstreamFailure(t *testing.T) {
	fake := &fakeSearch{
		keywordFn: func(query string, opt kakao.SearchOptions) *types.SearchResult {
			return &types.SearchResult{Success: false, Error: "kakao responded with HTTP 502"}
		},
	}
	p := newTestProcessor(fake)

	payload := dispatchJSON(t, p, "search_hospitals", `{"region":"강남","department":"피부과"}`)

	if payload["success"] != false {
		t.Fatalf("Expected success false, got %+v", payload)
	}
	detail, ok := payload["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a structured error, got %v", payload["error"])
	}
	if detail["code"] != types.ErrCodeUpstreamUnavailable {
		t.Errorf("Expected code %s, got %v", types.ErrCodeUpstreamUnavailable, detail["code"])
	}
	if detail["recoverable"] != true {
		t.Errorf("Expected a recoverable error, got %v", detail["recoverable"])
	}
}

// TestAnalyzeSymptomsToolEmptyInput tests the ambiguous-input shape
func TestAnalyzeSymptomsToolEmptyInput(t *testing.T) {
	p := newTestProcessor(&fakeSearch{})

	payload := dispatchJSON(t, p, "analyze_symptoms", `{"symptoms":"  "}`)
	if payload["code"] != types.ErrCodeInputAmbiguous {
		t.Errorf("Expected code %s, got %+v", types.ErrCodeInputAmbiguous, payload)
	}
}
