// Package websocket exposes the live dialogue monitor feed: every handled
// turn is broadcast as a TurnLog to connected dashboard clients.
package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/medimatch/medimatch-agent/logger"
	"github.com/medimatch/medimatch-agent/types"
)

const (
	heartbeatInterval = 30 * time.Second
	replayBufferSize  = 100
	serverVersion     = "1.0.0"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard origin is not pinned yet.
		return true
	},
}

// MonitorServer serves the /ws turn feed plus health and stats endpoints.
// New clients get a replay of the most recent turns before live messages.
type MonitorServer struct {
	hub    *Hub
	port   int
	server *http.Server
	log    *logger.Logger

	bufferMu sync.RWMutex
	buffer   []types.TurnLog

	clientsMu sync.RWMutex
	clients   map[string]*types.ConnectionStatus

	startTime time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

func NewMonitorServer(port int) *MonitorServer {
	return &MonitorServer{
		hub:       NewHub(),
		port:      port,
		log:       logger.GetLogger().WithField("component", "monitor"),
		buffer:    make([]types.TurnLog, 0, replayBufferSize),
		clients:   make(map[string]*types.ConnectionStatus),
		startTime: time.Now(),
		stopChan:  make(chan struct{}),
	}
}

// Start brings up the hub, the heartbeat and the HTTP listener. Non-blocking.
func (s *MonitorServer) Start() error {
	go s.hub.Run()

	s.wg.Add(1)
	go s.heartbeatLoop()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/stats", s.handleStats)

	s.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", s.port),
		Handler:        corsMiddleware(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("monitor server stopped", err)
		}
	}()

	s.log.WithField("port", s.port).Info("monitor feed listening")
	return nil
}

// Stop tells clients the feed is going away and shuts the listener down.
func (s *MonitorServer) Stop() error {
	s.broadcastConnection(false)
	close(s.stopChan)
	if s.server != nil {
		if err := s.server.Close(); err != nil {
			s.log.Error("closing monitor server", err)
		}
	}
	s.wg.Wait()
	return nil
}

// BroadcastTurn publishes one turn log to every monitor. Matches the
// dialogue.WithTurnListener signature.
func (s *MonitorServer) BroadcastTurn(turn *types.TurnLog) {
	if turn == nil {
		return
	}
	s.addToBuffer(*turn)

	msg := types.NewWebSocketMessage(types.WSTypeLog, turn)
	data, err := msg.ToJSON()
	if err != nil {
		s.log.Error("marshaling turn log", err)
		return
	}
	s.hub.Broadcast(data)
}

// BroadcastError publishes an error-level entry outside the turn flow.
func (s *MonitorServer) BroadcastError(userID, message string) {
	turn := types.NewTurnLog(types.LogTypeError, userID, message)
	turn.Level = types.LogLevelError
	s.BroadcastTurn(turn)
}

func (s *MonitorServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", err)
		return
	}

	clientID := fmt.Sprintf("monitor-%d", time.Now().UnixNano())
	client := NewClient(s.hub, conn)

	s.registerClient(clientID)
	client.hub.register <- client

	s.sendConnectionConfirmation(client, clientID)
	s.replayToClient(client)

	go client.writePump()
	go client.readPump()

	go func() {
		<-client.done
		s.unregisterClient(clientID)
	}()
}

func (s *MonitorServer) addToBuffer(turn types.TurnLog) {
	s.bufferMu.Lock()
	defer s.bufferMu.Unlock()
	s.buffer = append(s.buffer, turn)
	if len(s.buffer) > replayBufferSize {
		s.buffer = s.buffer[len(s.buffer)-replayBufferSize:]
	}
}

// replayToClient sends the buffered turns so a freshly attached dashboard
// has context. Skips entries the client cannot absorb.
func (s *MonitorServer) replayToClient(client *Client) {
	s.bufferMu.RLock()
	turns := make([]types.TurnLog, len(s.buffer))
	copy(turns, s.buffer)
	s.bufferMu.RUnlock()

	for i := range turns {
		msg := types.NewWebSocketMessage(types.WSTypeLog, &turns[i])
		data, err := msg.ToJSON()
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}

func (s *MonitorServer) sendConnectionConfirmation(client *Client, clientID string) {
	confirmation := map[string]interface{}{
		"connected": true,
		"clientId":  clientID,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   serverVersion,
	}
	msg := types.NewWebSocketMessage(types.WSTypeConnection, confirmation)
	if data, err := msg.ToJSON(); err == nil {
		select {
		case client.send <- data:
		default:
		}
	}
}

func (s *MonitorServer) registerClient(clientID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[clientID] = &types.ConnectionStatus{
		Connected:   true,
		ClientID:    clientID,
		ConnectedAt: time.Now(),
	}
	s.log.WithField("client", clientID).Debug("monitor attached")
}

func (s *MonitorServer) unregisterClient(clientID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, clientID)
	s.log.WithField("client", clientID).Debug("monitor detached")
}

func (s *MonitorServer) heartbeatLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.clientsMu.RLock()
			clientCount := len(s.clients)
			s.clientsMu.RUnlock()

			heartbeat := map[string]interface{}{
				"timestamp": time.Now().Format(time.RFC3339),
				"uptime":    time.Since(s.startTime).Seconds(),
				"clients":   clientCount,
			}
			msg := types.NewWebSocketMessage(types.WSTypeHeartbeat, heartbeat)
			if data, err := msg.ToJSON(); err == nil {
				s.hub.Broadcast(data)
			}
		}
	}
}

func (s *MonitorServer) broadcastConnection(connected bool) {
	status := map[string]interface{}{
		"connected": connected,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	msg := types.NewWebSocketMessage(types.WSTypeConnection, status)
	if data, err := msg.ToJSON(); err == nil {
		s.hub.Broadcast(data)
	}
}

func (s *MonitorServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.clientsMu.RLock()
	clientCount := len(s.clients)
	s.clientsMu.RUnlock()

	health := types.HealthCheckResponse{
		Status:    types.StatusHealthy,
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   serverVersion,
		Services: map[string]types.ServiceStatus{
			"monitor": {
				Name:      "Dialogue Monitor Feed",
				Status:    types.StatusUp,
				LastCheck: time.Now().Format(time.RFC3339),
				Error:     fmt.Sprintf("connected clients: %d", clientCount),
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(health)
}

func (s *MonitorServer) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(s.Stats())
}

// Stats reports feed-level counters for the /stats endpoint.
func (s *MonitorServer) Stats() map[string]interface{} {
	s.bufferMu.RLock()
	buffered := len(s.buffer)
	s.bufferMu.RUnlock()

	s.clientsMu.RLock()
	clientList := make([]string, 0, len(s.clients))
	for id := range s.clients {
		clientList = append(clientList, id)
	}
	s.clientsMu.RUnlock()

	return map[string]interface{}{
		"uptime":      time.Since(s.startTime).Seconds(),
		"clients":     len(clientList),
		"client_ids":  clientList,
		"buffered":    buffered,
		"max_buffer":  replayBufferSize,
		"port":        s.port,
		"started_at":  s.startTime.Format(time.RFC3339),
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
