package live

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/areaviz/areaviz/backend-go/internal/typeid"
)

// TokenValidator resolves a bearer token to an account id.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// Handler upgrades GET /ws/live?token= to a live session.
type Handler struct {
	hub            *Hub
	tokens         TokenValidator
	originPatterns []string
}

func NewHandler(hub *Hub, tokens TokenValidator, originPatterns []string) *Handler {
	return &Handler{hub: hub, tokens: tokens, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	accountID, err := h.tokens.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, conn, accountID, uuid.New().String(), typeid.NewSessionID(), r.UserAgent())
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
