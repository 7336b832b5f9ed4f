// Package live relays visualizer events between the open sessions of one
// account over websockets.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/areaviz/areaviz/backend-go/internal/visualizer"
)

// Room holds every connected session of one account.
type Room struct {
	accountID string
	clients   map[string]*Client // clientID -> client
	sessions  *sessionSet
}

func newRoom(accountID string) *Room {
	return &Room{
		accountID: accountID,
		clients:   make(map[string]*Client),
		sessions:  newSessionSet(),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // accountID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx is cancelled, then closes every
// client's send queue.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return nil
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Sessions returns the open sessions of an account.
func (h *Hub) Sessions(accountID string) []Session {
	h.mu.RLock()
	room, ok := h.rooms[accountID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	return room.sessions.list()
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.AccountID]
	if !ok {
		room = newRoom(client.AccountID)
		h.rooms[client.AccountID] = room
	}
	room.clients[client.ClientID] = client
	room.sessions.add(client.session())
	h.mu.Unlock()

	welcome, _ := json.Marshal(WelcomePayload{
		ClientID:  client.ClientID,
		SessionID: client.SessionID,
		Sessions:  room.sessions.list(),
	})
	client.Send(&Message{Type: TypeWelcome, Payload: welcome})

	joinPayload, _ := json.Marshal(client.session())
	h.broadcast(client.AccountID, &Message{
		Type:      TypeSessionJoin,
		ClientID:  client.ClientID,
		SessionID: client.SessionID,
		Payload:   joinPayload,
	}, client.ClientID)

	slog.Info("session joined", "account", client.AccountID, "session", client.SessionID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.AccountID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.closeSend()
	room.sessions.remove(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.AccountID)
	}
	h.mu.Unlock()

	leavePayload, _ := json.Marshal(SessionLeavePayload{ClientID: client.ClientID})
	h.broadcast(client.AccountID, &Message{
		Type:     TypeSessionLeave,
		ClientID: client.ClientID,
		Payload:  leavePayload,
	}, "")

	slog.Info("session left", "account", client.AccountID, "session", client.SessionID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			c.closeSend()
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	if !relayable(msg.Type) {
		slog.Warn("unknown message type", "type", msg.Type, "account", sender.AccountID)
		if isAreaEvent(msg.Type) {
			sender.sendError("unsupported event " + msg.Type)
		}
		return
	}

	var ev visualizer.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		slog.Warn("invalid event payload", "type", msg.Type, "error", err)
		sender.sendError("invalid payload")
		return
	}
	ev.Name = msg.Type

	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshal event", "error", err)
		return
	}
	h.broadcast(sender.AccountID, &Message{
		Type:      msg.Type,
		ClientID:  sender.ClientID,
		SessionID: sender.SessionID,
		Payload:   payload,
	}, sender.ClientID)
}

func (h *Hub) broadcast(accountID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[accountID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
