package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"trpc.group/trpc-go/trpc-a2a-go/protocol"
	"trpc.group/trpc-go/trpc-a2a-go/server"
	"trpc.group/trpc-go/trpc-a2a-go/taskmanager"

	"github.com/medimatch/medimatch-agent/analyzer"
	"github.com/medimatch/medimatch-agent/config"
	"github.com/medimatch/medimatch-agent/dialogue"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/registry"
	"github.com/medimatch/medimatch-agent/types"
)

const (
	toolSearchRadius   = 5000
	toolSearchSize     = 5
	toolPharmacyRadius = 3000
)

// toolCall is the structured invocation format. A text part that parses as
// one of these runs a single skill; anything else is a conversational turn.
type toolCall struct {
	Skill string          `json:"skill"`
	Args  json.RawMessage `json:"args,omitempty"`
}

// ToolProcessor implements taskmanager.MessageProcessor. It serves both
// invocation styles over the same endpoint.
type ToolProcessor struct {
	handler  *dialogue.Handler
	search   dialogue.PlaceSearcher
	registry *registry.Client
	log      *logger.Logger
}

// ToolOption configures a ToolProcessor.
type ToolOption func(*ToolProcessor)

// WithRegistry adds the public hospital registry as a fallback source
// for the specialist lookup.
func WithRegistry(r *registry.Client) ToolOption {
	return func(p *ToolProcessor) { p.registry = r }
}

func NewToolProcessor(handler *dialogue.Handler, search dialogue.PlaceSearcher, opts ...ToolOption) *ToolProcessor {
	p := &ToolProcessor{
		handler: handler,
		search:  search,
		log:     logger.GetLogger().WithField("component", "tools"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessMessage implements the taskmanager.MessageProcessor interface.
func (p *ToolProcessor) ProcessMessage(
	ctx context.Context,
	message protocol.Message,
	options taskmanager.ProcessOptions,
	handle taskmanager.TaskHandler,
) (*taskmanager.MessageProcessingResult, error) {
	text := extractText(message)
	if text == "" {
		return textResult("input message must contain text"), nil
	}

	var call toolCall
	if err := json.Unmarshal([]byte(text), &call); err == nil && call.Skill != "" {
		p.log.WithField("skill", call.Skill).Info("tool call")
		return p.dispatch(ctx, call), nil
	}

	// Conversational turn: the A2A context keys the session so follow-ups
	// like 더 보여줘 work across calls.
	sessionID := handle.GetContextID()
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	res := p.handler.Handle(ctx, sessionID, text)
	return textResult(renderToolText(res)), nil
}

func (p *ToolProcessor) dispatch(ctx context.Context, call toolCall) *taskmanager.MessageProcessingResult {
	var (
		payload interface{}
		err     error
	)
	switch call.Skill {
	case "analyze_symptoms":
		payload, err = p.analyzeSymptoms(call.Args)
	case "search_hospitals":
		payload, err = p.searchHospitals(ctx, call.Args)
	case "find_specialist_hospital":
		payload, err = p.findSpecialistHospital(ctx, call.Args)
	case "search_pharmacies":
		payload, err = p.searchPharmacies(ctx, call.Args)
	case "search_nearby_hospitals":
		payload, err = p.searchNearbyHospitals(ctx, call.Args)
	case "search_hospitals_near_place":
		payload, err = p.searchHospitalsNearPlace(ctx, call.Args)
	case "search_nearby_with_pharmacy":
		payload, err = p.searchNearbyWithPharmacy(ctx, call.Args)
	case "get_available_departments":
		payload = availableDepartments()
	case "get_available_regions":
		payload = lexicon.KnownRegions
	default:
		err = fmt.Errorf("unknown skill: %s", call.Skill)
	}

	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			return jsonResult(ae.payload)
		}
		return jsonResult(map[string]interface{}{"error": err.Error()})
	}
	return jsonResult(payload)
}

// apiError carries a structured failure payload through the error return,
// so callers see the taxonomy shape instead of a bare message.
type apiError struct {
	payload interface{}
	msg     string
}

func (e *apiError) Error() string { return e.msg }

func unknownDepartmentErr(dept string) *apiError {
	return &apiError{
		msg: fmt.Sprintf("unknown department %q", dept),
		payload: types.ValidationFailure{
			Code:         types.ErrCodeUnknownDepartment,
			Error:        fmt.Sprintf("알 수 없는 진료과입니다: %s", dept),
			ValidOptions: lexicon.KnownDepartments,
		},
	}
}

func unknownRegionErr(region, detail string) *apiError {
	text := fmt.Sprintf("지역을 찾을 수 없습니다: %s", region)
	if detail != "" {
		text += " (" + detail + ")"
	}
	return &apiError{
		msg: fmt.Sprintf("could not resolve region %q", region),
		payload: types.ValidationFailure{
			Code:         types.ErrCodeUnknownRegion,
			Error:        text,
			ValidOptions: lexicon.KnownRegions,
		},
	}
}

func upstreamErr(op, detail string) *apiError {
	return &apiError{
		msg: fmt.Sprintf("%s failed: %s", op, detail),
		payload: map[string]interface{}{
			"success": false,
			"error": types.ErrorDetail{
				Code:        types.ErrCodeUpstreamUnavailable,
				Message:     fmt.Sprintf("%s 검색에 실패했습니다. 잠시 후 다시 시도해주세요.", op),
				Details:     detail,
				Recoverable: true,
			},
		},
	}
}

type analyzeArgs struct {
	Symptoms string `json:"symptoms"`
}

func (p *ToolProcessor) analyzeSymptoms(raw json.RawMessage) (interface{}, error) {
	var args analyzeArgs
	if err := json.Unmarshal(raw, &args); err != nil || strings.TrimSpace(args.Symptoms) == "" {
		return types.ValidationFailure{
			Code:  types.ErrCodeInputAmbiguous,
			Error: "분석할 증상 설명이 필요합니다",
		}, nil
	}

	emergency := analyzer.CheckEmergency(args.Symptoms)
	result := map[string]interface{}{
		"analysis":  analyzer.AnalyzeSymptoms(args.Symptoms),
		"diagnosis": analyzer.DiagnoseDisease(args.Symptoms),
	}
	if emergency.IsEmergency {
		result["emergency"] = emergency
	}
	return result, nil
}

type hospitalArgs struct {
	Region     string `json:"region"`
	Department string `json:"department"`
	Text       string `json:"text,omitempty"`
}

func (p *ToolProcessor) searchHospitals(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args hospitalArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("search_hospitals requires region and department")
	}
	if !validDepartment(args.Department) {
		return nil, unknownDepartmentErr(args.Department)
	}

	origin, err := p.resolveRegion(ctx, args.Region)
	if err != nil {
		return nil, err
	}

	result := p.search.SearchKeyword(ctx, args.Region+" "+args.Department, kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: toolSearchRadius,
		Size:   toolSearchSize,
	})
	if !result.Success {
		return nil, upstreamErr("병원", result.Error)
	}
	return map[string]interface{}{
		"places": result.Places,
		"origin": origin,
	}, nil
}

func (p *ToolProcessor) findSpecialistHospital(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args hospitalArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("find_specialist_hospital requires region and text")
	}
	if args.Text == "" {
		args.Text = args.Department
	}

	specialty := analyzer.BuildSpecialtySearch(args.Text, args.Department)
	if !validDepartment(specialty.Department) {
		return types.ValidationFailure{
			Code:  types.ErrCodeInputAmbiguous,
			Error: fmt.Sprintf("어떤 진료과를 찾으시는지 알 수 없습니다: %s", args.Text),
		}, nil
	}

	origin, err := p.resolveRegion(ctx, args.Region)
	if err != nil {
		return nil, err
	}

	result := p.search.SearchKeyword(ctx, specialty.PrimarySearchTerm, kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: toolSearchRadius,
		Size:   toolSearchSize,
	})
	if !result.Success {
		return nil, upstreamErr("병원", result.Error)
	}

	places := result.Places
	if info := analyzer.ExtractSpecialty(args.Text); info != nil {
		places = analyzer.RankHospitalsBySpecialty(places, info)
	}

	source := "kakao"
	// Place search found nothing: fall back to the public hospital
	// registry, which covers clinics Kakao has no listing for.
	if len(places) == 0 && p.registry != nil {
		reg := p.registry.Search(ctx, registry.Query{
			Department: specialty.Department,
			Region:     args.Region,
		})
		if reg.Success && len(reg.Hospitals) > 0 {
			places = reg.Places()
			source = "registry"
		}
	}

	return map[string]interface{}{
		"places":    places,
		"origin":    origin,
		"specialty": specialty,
		"source":    source,
	}, nil
}

type pharmacyArgs struct {
	Region string `json:"region,omitempty"`
	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
}

func (p *ToolProcessor) searchPharmacies(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args pharmacyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("search_pharmacies requires a region or coordinates")
	}

	origin := &types.Coordinates{X: args.X, Y: args.Y}
	if args.X == "" || args.Y == "" {
		resolved, err := p.resolveRegion(ctx, args.Region)
		if err != nil {
			return nil, err
		}
		origin = resolved
	}

	result := p.search.SearchCategory(ctx, "약국", kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: toolPharmacyRadius,
	})
	if !result.Success {
		return nil, upstreamErr("약국", result.Error)
	}
	return map[string]interface{}{
		"places": result.Places,
		"origin": origin,
	}, nil
}

type nearbyArgs struct {
	X          string `json:"x,omitempty"`
	Y          string `json:"y,omitempty"`
	Place      string `json:"place,omitempty"`
	Department string `json:"department,omitempty"`
}

// originFor picks coordinates from explicit x/y, falling back to resolving
// a named place.
func (p *ToolProcessor) originFor(ctx context.Context, args nearbyArgs) (*types.Coordinates, error) {
	if args.X != "" && args.Y != "" {
		return &types.Coordinates{X: args.X, Y: args.Y}, nil
	}
	if args.Place == "" {
		return nil, fmt.Errorf("coordinates (x, y) or a place name are required")
	}
	return p.resolveRegion(ctx, args.Place)
}

// hospitalsAround searches hospitals around an origin: a keyword search
// when a department narrows it, a category sweep otherwise.
func (p *ToolProcessor) hospitalsAround(ctx context.Context, origin *types.Coordinates, department string) (*types.SearchResult, error) {
	opt := kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: toolSearchRadius,
		Size:   toolSearchSize,
	}

	var result *types.SearchResult
	if department != "" {
		if !validDepartment(department) {
			return nil, unknownDepartmentErr(department)
		}
		result = p.search.SearchKeyword(ctx, department, opt)
	} else {
		result = p.search.SearchCategory(ctx, "병원", opt)
	}
	if !result.Success {
		return nil, upstreamErr("병원", result.Error)
	}
	return result, nil
}

func (p *ToolProcessor) searchNearbyHospitals(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args nearbyArgs
	if err := json.Unmarshal(raw, &args); err != nil || args.X == "" || args.Y == "" {
		return nil, fmt.Errorf("search_nearby_hospitals requires x and y coordinates")
	}

	origin := &types.Coordinates{X: args.X, Y: args.Y}
	result, err := p.hospitalsAround(ctx, origin, args.Department)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"places": result.Places,
		"origin": origin,
	}, nil
}

func (p *ToolProcessor) searchHospitalsNearPlace(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args nearbyArgs
	if err := json.Unmarshal(raw, &args); err != nil || args.Place == "" {
		return nil, fmt.Errorf("search_hospitals_near_place requires a place name")
	}

	origin, err := p.resolveRegion(ctx, args.Place)
	if err != nil {
		return nil, err
	}
	result, err := p.hospitalsAround(ctx, origin, args.Department)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"places": result.Places,
		"origin": origin,
		"place":  args.Place,
	}, nil
}

func (p *ToolProcessor) searchNearbyWithPharmacy(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var args nearbyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("search_nearby_with_pharmacy requires coordinates or a place name")
	}

	origin, err := p.originFor(ctx, args)
	if err != nil {
		return nil, err
	}
	hospitals, err := p.hospitalsAround(ctx, origin, args.Department)
	if err != nil {
		return nil, err
	}

	pharmacies := p.search.SearchCategory(ctx, "약국", kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: toolPharmacyRadius,
	})

	result := map[string]interface{}{
		"hospitals": hospitals.Places,
		"origin":    origin,
	}
	if pharmacies.Success {
		result["pharmacies"] = pharmacies.Places
	} else {
		result["pharmacies"] = []types.Place{}
		result["pharmacy_error"] = pharmacies.Error
	}
	return result, nil
}

// resolveRegion turns a region name into coordinates, defaulting to the
// city-hall anchor when no region was given.
func (p *ToolProcessor) resolveRegion(ctx context.Context, region string) (*types.Coordinates, error) {
	if region == "" {
		def := kakao.DefaultLocation()
		return &types.Coordinates{X: def.X, Y: def.Y}, nil
	}
	loc := p.search.ResolvePlace(ctx, region)
	if !loc.Success {
		detail := loc.Error
		if loc.Suggestion != "" {
			detail = loc.Suggestion
		}
		return nil, unknownRegionErr(region, detail)
	}
	return &types.Coordinates{X: loc.X, Y: loc.Y}, nil
}

func availableDepartments() interface{} {
	type deptInfo struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	out := make([]deptInfo, 0, len(lexicon.KnownDepartments))
	for _, d := range lexicon.KnownDepartments {
		out = append(out, deptInfo{Name: d, Description: lexicon.DepartmentDescriptions[d]})
	}
	return out
}

func validDepartment(dept string) bool {
	for _, d := range lexicon.KnownDepartments {
		if d == dept {
			return true
		}
	}
	return false
}

// renderToolText flattens a dialogue result into plain text for callers
// that speak only text parts.
func renderToolText(res *dialogue.Result) string {
	if len(res.Places) == 0 {
		return res.Text
	}
	var b strings.Builder
	b.WriteString(res.Text)
	for i, p := range res.Places {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, p.Name))
		if p.Address != "" {
			b.WriteString(" - " + p.Address)
		}
		if p.Phone != "" {
			b.WriteString(" (" + p.Phone + ")")
		}
	}
	return b.String()
}

func textResult(text string) *taskmanager.MessageProcessingResult {
	msg := protocol.NewMessage(
		protocol.MessageRoleAgent,
		[]protocol.Part{protocol.NewTextPart(text)},
	)
	return &taskmanager.MessageProcessingResult{Result: &msg}
}

func jsonResult(payload interface{}) *taskmanager.MessageProcessingResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return textResult(fmt.Sprintf("failed to encode result: %v", err))
	}
	return textResult(string(data))
}

// extractText extracts the text content from a message.
func extractText(message protocol.Message) string {
	var result strings.Builder
	for _, part := range message.Parts {
		switch textPart := part.(type) {
		case *protocol.TextPart:
			result.WriteString(textPart.Text)
		case protocol.TextPart:
			result.WriteString(textPart.Text)
		}
	}
	return result.String()
}

// AgentCard builds the published A2A card from the capability manifest.
func AgentCard(m *config.Manifest) server.AgentCard {
	skills := make([]server.AgentSkill, 0, len(m.Skills))
	for _, s := range m.Skills {
		desc := s.Description
		skills = append(skills, server.AgentSkill{
			ID:          s.Name,
			Name:        s.Name,
			Description: &desc,
			Tags:        s.Tags,
			Examples:    s.Examples,
			InputModes:  []string{"text"},
			OutputModes: []string{"text"},
		})
	}

	return server.AgentCard{
		Name:        m.Name,
		Description: m.Description,
		URL:         m.URL,
		Version:     m.Version,
		Capabilities: server.AgentCapabilities{
			Streaming:              boolPtr(false),
			PushNotifications:      boolPtr(false),
			StateTransitionHistory: boolPtr(true),
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills:             skills,
	}
}

func boolPtr(b bool) *bool {
	return &b
}
