package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/medimatch/medimatch-agent/types"
)

// TestBufferTrimsToReplaySize tests that the replay buffer keeps only the
// most recent turns
func TestBufferTrimsToReplaySize(t *testing.T) {
	s := NewMonitorServer(0)
	for i := 0; i < replayBufferSize+20; i++ {
		s.BroadcastTurn(types.NewTurnLog(types.LogTypeIntent, "u1", "turn"))
	}

	stats := s.Stats()
	if got := stats["buffered"].(int); got != replayBufferSize {
		t.Errorf("Expected buffer trimmed to %d, got %d", replayBufferSize, got)
	}
}

// TestNilTurnIgnored tests that a nil turn does not panic or buffer
func TestNilTurnIgnored(t *testing.T) {
	s := NewMonitorServer(0)
	s.BroadcastTurn(nil)
	if got := s.Stats()["buffered"].(int); got != 0 {
		t.Errorf("Expected empty buffer, got %d", got)
	}
}

// TestClientGetsConfirmationAndReplay tests the connect handshake over a
// real websocket
func TestClientGetsConfirmationAndReplay(t *testing.T) {
	s := NewMonitorServer(0)
	go s.hub.Run()

	s.BroadcastTurn(types.NewTurnLog(types.LogTypeEmergency, "u1", "심근경색"))

	srv := httptest.NewServer(corsMiddleware(monitorMux(s)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// First frame is the connection confirmation.
	var confirmation types.WebSocketMessage
	if err := conn.ReadJSON(&confirmation); err != nil {
		t.Fatalf("reading confirmation: %v", err)
	}
	if confirmation.Type != types.WSTypeConnection {
		t.Fatalf("Expected connection frame first, got %s", confirmation.Type)
	}

	// Then the buffered turn is replayed.
	var replay types.WebSocketMessage
	if err := conn.ReadJSON(&replay); err != nil {
		t.Fatalf("reading replay: %v", err)
	}
	if replay.Type != types.WSTypeLog {
		t.Fatalf("Expected log frame, got %s", replay.Type)
	}
	payload, _ := json.Marshal(replay.Payload)
	var turn types.TurnLog
	if err := json.Unmarshal(payload, &turn); err != nil {
		t.Fatalf("decoding turn payload: %v", err)
	}
	if turn.Type != types.LogTypeEmergency || turn.Content != "심근경색" {
		t.Errorf("Expected the buffered emergency turn, got %+v", turn)
	}
}

// TestLiveBroadcastReachesClient tests a turn published after connect
func TestLiveBroadcastReachesClient(t *testing.T) {
	s := NewMonitorServer(0)
	go s.hub.Run()

	srv := httptest.NewServer(monitorMux(s))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// Drain the confirmation frame.
	var confirmation types.WebSocketMessage
	if err := conn.ReadJSON(&confirmation); err != nil {
		t.Fatalf("reading confirmation: %v", err)
	}

	// Registration races the broadcast; give the hub a beat.
	time.Sleep(50 * time.Millisecond)
	s.BroadcastTurn(types.NewTurnLog(types.LogTypeSearch, "u2", "hospital"))

	var live types.WebSocketMessage
	if err := conn.ReadJSON(&live); err != nil {
		t.Fatalf("reading live frame: %v", err)
	}
	if live.Type != types.WSTypeLog {
		t.Errorf("Expected log frame, got %s", live.Type)
	}
}

func monitorMux(s *MonitorServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}
