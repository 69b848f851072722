// Package server exposes the two inbound surfaces: the Kakao openbuilder
// skill webhook and the A2A tool endpoint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/medimatch/medimatch-agent/dialogue"
	"github.com/medimatch/medimatch-agent/kakao"
	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/types"
)

const skillRequestBodyLimit = 1 << 20

// SkillServer serves the openbuilder webhook. Every response is a valid
// skill payload; upstream failures degrade to a polite text bubble.
type SkillServer struct {
	handler *dialogue.Handler
	port    int
	server  *http.Server
	log     *logger.Logger
}

func NewSkillServer(handler *dialogue.Handler, port int) *SkillServer {
	return &SkillServer{
		handler: handler,
		port:    port,
		log:     logger.GetLogger().WithField("component", "skill"),
	}
}

// Start brings the webhook up. Non-blocking.
func (s *SkillServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/kakao/skill", s.handleSkill)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("skill server stopped", err)
		}
	}()

	s.log.WithField("port", s.port).Info("skill webhook listening")
	return nil
}

// Stop drains in-flight requests before closing.
func (s *SkillServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *SkillServer) handleSkill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The openbuilder treats non-200 responses as a dead skill, so every
	// failure inside the turn still answers with a skill payload.
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithField("panic", fmt.Sprintf("%v", rec)).Error("turn panicked", nil)
			writeSkillResponse(w, kakao.SimpleTextResponse(
				"죄송해요, 답변을 준비하다 문제가 생겼어요. 잠시 후 다시 말씀해 주세요."))
		}
	}()

	var req types.SkillRequest
	body := http.MaxBytesReader(w, r.Body, skillRequestBodyLimit)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.log.Error("decoding skill request", err)
		writeSkillResponse(w, kakao.SimpleTextResponse(
			"요청을 이해하지 못했어요. 다시 말씀해 주세요."))
		return
	}

	utterance := req.UserRequest.Utterance
	if utterance == "" {
		writeSkillResponse(w, kakao.SimpleTextResponse(
			"증상이나 찾으시는 병원을 말씀해 주세요."))
		return
	}

	res := s.handler.Handle(r.Context(), req.UserID(), utterance)
	writeSkillResponse(w, renderSkill(res))
}

// renderSkill maps a dialogue result onto the openbuilder template: a
// carousel when places came back, a text bubble otherwise.
func renderSkill(res *dialogue.Result) *types.SkillResponse {
	if len(res.Places) > 0 {
		cards := kakao.PlaceCards(res.Places, res.Origin)
		return kakao.CarouselResponse(res.Text, cards, res.QuickReplies...)
	}
	return kakao.SimpleTextResponse(res.Text, res.QuickReplies...)
}

func writeSkillResponse(w http.ResponseWriter, resp *types.SkillResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (s *SkillServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := types.HealthCheckResponse{
		Status:    types.StatusHealthy,
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}
