package live

import (
	"encoding/json"
	"strings"
	"time"
)

// Message is the envelope for every frame on the live socket.
type Message struct {
	Type      string          `json:"type"`
	ClientID  string          `json:"clientId,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	TypeWelcome      = "welcome"
	TypeSessionJoin  = "session.join"
	TypeSessionLeave = "session.leave"
	TypeError        = "error"

	// Relayed visualizer events.
	TypeAreaMoved      = "activearea:moved"
	TypeAreaCentered   = "activearea:centered"
	TypeAreaPositioned = "activearea:positioned"
)

// relayable reports whether t is forwarded to an account's other sessions.
func relayable(t string) bool {
	switch t {
	case TypeAreaMoved, TypeAreaCentered, TypeAreaPositioned:
		return true
	}
	return false
}

func isAreaEvent(t string) bool {
	return strings.HasPrefix(t, "activearea:")
}

// Session describes one open tab of an account.
type Session struct {
	ClientID  string    `json:"clientId"`
	SessionID string    `json:"sessionId"`
	Agent     string    `json:"agent,omitempty"`
	Since     time.Time `json:"since"`
}

type WelcomePayload struct {
	ClientID  string    `json:"clientId"`
	SessionID string    `json:"sessionId"`
	Sessions  []Session `json:"sessions"`
}

type SessionLeavePayload struct {
	ClientID string `json:"clientId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
