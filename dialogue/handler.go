// Package dialogue drives one conversational turn: emergency triage first,
// then intent classification, then the intent-specific flow against the
// per-user session state and the place-search collaborators.
package dialogue

import (
	"context"
	"time"

	"github.com/medimatch/medimatch-agent/analyzer"
	"github.com/medimatch/medimatch-agent/intent"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/lexicon"
	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/session"
	"github.com/medimatch/medimatch-agent/types"
)

// Search radii and result sizes per flow, in meters.
const (
	hospitalSearchRadius = 5000
	hospitalSearchSize   = 5
	widenedSearchRadius  = 10000

	moreSearchRadius = 7000
	moreSearchSize   = 15
	moreShowSize     = 5

	analyzeSearchRadius = 5000
	analyzeSearchSize   = 3

	pharmacySearchRadius = 3000
)

// PlaceSearcher is the outbound collaborator surface; *kakao.Client
// satisfies it, tests fake it.
type PlaceSearcher interface {
	SearchKeyword(ctx context.Context, query string, opt kakao.SearchOptions) *types.SearchResult
	SearchCategory(ctx context.Context, category string, opt kakao.SearchOptions) *types.SearchResult
	ResolvePlace(ctx context.Context, placeName string) *types.ResolvedLocation
}

// Result is what one turn hands to the presentation layer: plain data, no
// transport envelope.
type Result struct {
	Intent       intent.Intent
	Text         string
	Places       []types.Place
	Origin       *types.Coordinates
	QuickReplies []types.QuickReply
	Emergency    *types.EmergencyResult
	Analysis     *types.AnalysisResult
	Diagnosis    *types.Diagnosis
}

// Handler owns the dialogue flow. The clock is injectable for session
// stamp tests.
type Handler struct {
	search   PlaceSearcher
	sessions session.Store
	log      *logger.Logger
	now      func() time.Time
	onTurn   func(*types.TurnLog)
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// WithTurnListener registers a sink for per-turn log events (the live
// websocket feed).
func WithTurnListener(fn func(*types.TurnLog)) HandlerOption {
	return func(h *Handler) { h.onTurn = fn }
}

func NewHandler(search PlaceSearcher, sessions session.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		search:   search,
		sessions: sessions,
		log:      logger.GetLogger().WithField("component", "dialogue"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one utterance for one user. It never returns an error:
// every failure mode degrades to a textual reply.
func (h *Handler) Handle(ctx context.Context, userID, utterance string) *Result {
	// Emergency triage takes hard precedence over everything else,
	// including intent classification.
	if emergency := analyzer.CheckEmergency(utterance); emergency.IsEmergency {
		h.emitTurn(userID, types.LogTypeEmergency, utterance)
		return emergencyResult(emergency)
	}

	it := intent.Classify(utterance)
	h.log.WithFields(map[string]interface{}{
		"user":   userID,
		"intent": string(it.Type),
	}).Debug("classified utterance")
	h.emitTurn(userID, types.LogTypeIntent, string(it.Type))

	var res *Result
	switch it.Type {
	case intent.Greeting:
		res = greetingResult()
	case intent.Help:
		res = helpResult()
	case intent.ExplainRecommendation:
		res = h.explain(userID, it)
	case intent.AskDiseaseInfo:
		res = diseaseInfoResult(it)
	case intent.SuggestOtherDepartments:
		res = h.suggestOther(userID)
	case intent.MoreHospitals:
		res = h.moreHospitals(ctx, userID)
	case intent.SearchPharmacy:
		res = h.searchPharmacy(ctx, userID, it)
	case intent.SearchHospital:
		res = h.searchHospital(ctx, userID, it, utterance)
	default:
		res = h.analyzeSymptoms(ctx, userID, it)
	}
	res.Intent = it
	return res
}

// explain answers the "why this department" question from the last
// recommendation; it never mutates session state.
func (h *Handler) explain(userID string, it intent.Intent) *Result {
	snap := h.sessions.Snapshot(userID)
	if snap.LastRecommendation != nil {
		return explanationFromRecommendation(snap.LastRecommendation)
	}

	dept := it.Department
	if dept == "" {
		dept = snap.Department
	}
	if rationale, ok := lexicon.DepartmentRationales[dept]; ok {
		return &Result{Text: rationale + "\n\n증상을 말씀해 주시면 더 정확하게 안내해 드릴게요."}
	}
	return &Result{
		Text: "아직 추천해 드린 진료과가 없어요. 증상을 말씀해 주시면 알맞은 진료과를 추천해 드릴게요.",
		QuickReplies: []types.QuickReply{
			kakao.QuickReplyText("증상 말하기", "머리가 아파요"),
		},
	}
}

// suggestOther proposes adjacent departments to the last recommended one.
func (h *Handler) suggestOther(userID string) *Result {
	snap := h.sessions.Snapshot(userID)
	dept := snap.Department
	if dept == "" && snap.LastRecommendation != nil && len(snap.LastRecommendation.Departments) > 0 {
		dept = snap.LastRecommendation.Departments[0]
	}
	if dept == "" {
		return &Result{Text: "먼저 증상을 말씀해 주시면 진료과를 추천해 드릴게요."}
	}
	return otherDepartmentsResult(dept)
}

// moreHospitals re-queries around the last search, excluding everything
// already shown. A fresh session gets a clarifying prompt, not a search.
func (h *Handler) moreHospitals(ctx context.Context, userID string) *Result {
	snap := h.sessions.Snapshot(userID)
	if snap.Fresh() {
		return &Result{
			Text: "어느 지역에서 어떤 진료과를 찾으시는지 먼저 알려주세요. (예: 강남 피부과 찾아줘)",
		}
	}

	result := h.search.SearchKeyword(ctx, snap.Region+" "+snap.Department, kakao.SearchOptions{
		X:      snap.Location.X,
		Y:      snap.Location.Y,
		Radius: moreSearchRadius,
		Size:   moreSearchSize,
	})
	if !result.Success {
		h.emitTurn(userID, types.LogTypeError, result.Error)
		return upstreamFallbackResult()
	}
	if len(result.Places) == 0 {
		return &Result{Text: "주변에서 " + snap.Department + "을(를) 더 찾지 못했어요."}
	}

	var fresh []types.Place
	for _, p := range result.Places {
		if !snap.Shown(p.ID) {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		// Everything the upstream returned was already shown: exhaustion,
		// not an empty area.
		return &Result{Text: "이미 보여드린 곳 외에는 더 찾지 못했어요. 다른 지역으로 검색해 보시겠어요?"}
	}
	if len(fresh) > moreShowSize {
		fresh = fresh[:moreShowSize]
	}

	shownIDs := placeIDs(fresh)
	h.sessions.Update(userID, func(s *types.SessionState) {
		s.MarkShown(shownIDs...)
		s.LastUpdated = h.now()
	})
	h.emitTurn(userID, types.LogTypeSearch, "more_hospitals")

	origin := snap.Location
	return &Result{
		Text:   "추가로 찾은 " + snap.Department + "이에요.",
		Places: fresh,
		Origin: origin,
	}
}

// searchPharmacy finds pharmacies around the requested region or, absent
// one, the last known location.
func (h *Handler) searchPharmacy(ctx context.Context, userID string, it intent.Intent) *Result {
	origin, where, fail := h.resolveOrigin(ctx, userID, it.Region)
	if fail != nil {
		return fail
	}

	result := h.search.SearchCategory(ctx, "약국", kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: pharmacySearchRadius,
	})
	if !result.Success {
		h.emitTurn(userID, types.LogTypeError, result.Error)
		return upstreamFallbackResult()
	}
	if len(result.Places) == 0 {
		return &Result{Text: where + " 주변에서 약국을 찾지 못했어요."}
	}
	h.emitTurn(userID, types.LogTypeSearch, "pharmacy")
	return &Result{
		Text:   where + " 주변 약국이에요.",
		Places: capPlaces(result.Places, hospitalSearchSize),
		Origin: origin,
	}
}

// searchHospital looks up hospitals for a department, preferring specialty
// search terms extracted from the utterance, and stamps the session on
// success.
func (h *Handler) searchHospital(ctx context.Context, userID string, it intent.Intent, utterance string) *Result {
	if !knownDepartment(it.Department) {
		return departmentValidationResult(it.Department)
	}

	origin, where, fail := h.resolveOrigin(ctx, userID, it.Region)
	if fail != nil {
		return fail
	}

	specialty := analyzer.BuildSpecialtySearch(utterance, it.Department)
	result := h.search.SearchKeyword(ctx, specialty.PrimarySearchTerm, kakao.SearchOptions{
		X:      origin.X,
		Y:      origin.Y,
		Radius: hospitalSearchRadius,
		Size:   hospitalSearchSize,
	})
	if !result.Success {
		h.emitTurn(userID, types.LogTypeError, result.Error)
		return upstreamFallbackResult()
	}
	if len(result.Places) == 0 {
		// Widen once before giving up.
		result = h.search.SearchKeyword(ctx, specialty.PrimarySearchTerm, kakao.SearchOptions{
			X:      origin.X,
			Y:      origin.Y,
			Radius: widenedSearchRadius,
			Size:   hospitalSearchSize,
		})
	}
	if !result.Success || len(result.Places) == 0 {
		return &Result{Text: where + " 주변에서 " + it.Department + "을(를) 찾지 못했어요. 다른 지역으로 검색해 보시겠어요?"}
	}

	places := result.Places
	if specialty.HasSpecialty {
		if info := analyzer.ExtractSpecialty(utterance); info != nil {
			places = analyzer.RankHospitalsBySpecialty(places, info)
		}
	}
	places = capPlaces(places, hospitalSearchSize)

	region := it.Region
	if region == "" {
		region = where
	}
	shownIDs := placeIDs(places)
	h.sessions.Update(userID, func(s *types.SessionState) {
		s.Region = region
		s.Department = it.Department
		s.Location = &types.Coordinates{X: origin.X, Y: origin.Y}
		s.ShownResultIDs = nil
		s.MarkShown(shownIDs...)
		s.LastUpdated = h.now()
	})
	h.emitTurn(userID, types.LogTypeSearch, "hospital")

	return &Result{
		Text:   where + " 주변 " + it.Department + "이에요.",
		Places: places,
		Origin: origin,
	}
}

// analyzeSymptoms runs the analysis pipeline, remembers the
// recommendation, and best-effort searches hospitals when a region came
// with the symptoms.
func (h *Handler) analyzeSymptoms(ctx context.Context, userID string, it intent.Intent) *Result {
	text := it.Symptoms
	analysis := analyzer.AnalyzeSymptoms(text)
	diagnosis := analyzer.DiagnoseDisease(text)

	if len(analysis.RecommendedDepartments) == 0 {
		// InputAmbiguous: low-confidence result with a nudge, never an error.
		return &Result{Text: analysis.Summary, Analysis: analysis}
	}

	area := ""
	if len(analysis.MatchedSymptoms) > 0 {
		area = analysis.MatchedSymptoms[0]
	}
	h.sessions.Update(userID, func(s *types.SessionState) {
		s.LastRecommendation = &types.Recommendation{
			SymptomArea: area,
			Symptoms:    text,
			Departments: analysis.RecommendedDepartments,
			Diseases:    diagnosis.SuspectedDiseases,
		}
		s.LastUpdated = h.now()
	})
	h.emitTurn(userID, types.LogTypeAnalysis, area)

	res := analysisResult(analysis, diagnosis)

	// Region present: try to attach nearby hospitals for the primary
	// department, best effort only.
	if it.Region != "" {
		if loc := h.search.ResolvePlace(ctx, it.Region); loc.Success {
			dept := analysis.RecommendedDepartments[0]
			found := h.search.SearchKeyword(ctx, it.Region+" "+dept, kakao.SearchOptions{
				X:      loc.X,
				Y:      loc.Y,
				Radius: analyzeSearchRadius,
				Size:   analyzeSearchSize,
			})
			if found.Success && len(found.Places) > 0 {
				origin := &types.Coordinates{X: loc.X, Y: loc.Y}
				res.Places = capPlaces(found.Places, analyzeSearchSize)
				res.Origin = origin
				shownIDs := placeIDs(res.Places)
				h.sessions.Update(userID, func(s *types.SessionState) {
					s.Region = it.Region
					s.Department = dept
					s.Location = origin
					s.ShownResultIDs = nil
					s.MarkShown(shownIDs...)
					s.LastUpdated = h.now()
				})
			}
		}
	}
	return res
}

// resolveOrigin picks the search center: an explicit region, else the
// session's last location, else the default (서울시청). The second return
// is a human-readable label for the chosen spot.
func (h *Handler) resolveOrigin(ctx context.Context, userID, region string) (*types.Coordinates, string, *Result) {
	if region != "" {
		loc := h.search.ResolvePlace(ctx, region)
		if !loc.Success {
			text := loc.Error
			if loc.Suggestion != "" {
				text += "\n" + loc.Suggestion
			}
			return nil, "", &Result{Text: text}
		}
		return &types.Coordinates{X: loc.X, Y: loc.Y}, region, nil
	}

	snap := h.sessions.Snapshot(userID)
	if snap.Location != nil {
		where := snap.Region
		if where == "" {
			where = "이전에 찾으신 곳"
		}
		return snap.Location, where, nil
	}

	def := kakao.DefaultLocation()
	return &types.Coordinates{X: def.X, Y: def.Y}, def.PlaceName, nil
}

func (h *Handler) emitTurn(userID, turnType, message string) {
	if h.onTurn == nil {
		return
	}
	h.onTurn(types.NewTurnLog(turnType, userID, message))
}

func knownDepartment(dept string) bool {
	for _, d := range lexicon.KnownDepartments {
		if d == dept {
			return true
		}
	}
	return false
}

func placeIDs(places []types.Place) []string {
	ids := make([]string, 0, len(places))
	for _, p := range places {
		ids = append(ids, p.ID)
	}
	return ids
}

func capPlaces(places []types.Place, n int) []types.Place {
	if len(places) > n {
		return places[:n]
	}
	return places
}
