package types

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// WebSocketMessage represents a WebSocket message on the monitor stream
type WebSocketMessage struct {
	Type      string      `json:"type"` // "log", "error", "status", "heartbeat", "connection"
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
	MessageID string      `json:"messageId,omitempty"`
}

// TurnLog represents one dialogue-turn log entry broadcast to monitors
type TurnLog struct {
	Type      string `json:"type"` // "intent", "analysis", "emergency", "search", "session", "error"
	UserID    string `json:"userId,omitempty"`
	Intent    string `json:"intent,omitempty"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	MessageID string `json:"messageId,omitempty"`
	Level     string `json:"level,omitempty"` // "info", "warning", "error", "debug"
}

// ConnectionStatus represents WebSocket connection status
type ConnectionStatus struct {
	Connected    bool      `json:"connected"`
	ClientID     string    `json:"clientId"`
	ConnectedAt  time.Time `json:"connectedAt,omitempty"`
	LastPing     time.Time `json:"lastPing,omitempty"`
	MessageCount int       `json:"messageCount"`
}

// HealthCheckResponse represents the health status of the service
type HealthCheckResponse struct {
	Status    string                   `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus represents the status of a dependent service
type ServiceStatus struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`            // "up", "down", "degraded"
	Latency   float64 `json:"latency,omitempty"` // in milliseconds
	LastCheck string  `json:"lastCheck"`
	Error     string  `json:"error,omitempty"`
}

// Constants for message types
const (
	// WebSocket message types
	WSTypeLog        = "log"
	WSTypeError      = "error"
	WSTypeStatus     = "status"
	WSTypeHeartbeat  = "heartbeat"
	WSTypeConnection = "connection"

	// Turn log types
	LogTypeIntent    = "intent"
	LogTypeAnalysis  = "analysis"
	LogTypeEmergency = "emergency"
	LogTypeSearch    = "search"
	LogTypeSession   = "session"
	LogTypeError     = "error"

	// Log levels
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelDebug   = "debug"

	// Service status
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusUp        = "up"
	StatusDown      = "down"
)

// NewWebSocketMessage creates a new WebSocket message
func NewWebSocketMessage(msgType string, payload interface{}) *WebSocketMessage {
	return &WebSocketMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().Format(time.RFC3339),
		MessageID: generateMessageID(),
	}
}

// NewTurnLog creates a new turn log entry
func NewTurnLog(logType, userID, content string) *TurnLog {
	return &TurnLog{
		Type:      logType,
		UserID:    userID,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
		MessageID: generateMessageID(),
		Level:     LogLevelInfo,
	}
}

// ToJSON converts the message to JSON
func (m *WebSocketMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ToJSON converts the log to JSON
func (l *TurnLog) ToJSON() ([]byte, error) {
	return json.Marshal(l)
}

// generateMessageID generates a unique message ID
func generateMessageID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), generateRandomString(8))
}

// generateRandomString generates a random string of specified length
func generateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
