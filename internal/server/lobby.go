package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
)

// Lobby is the site-wide chat hub. Every connected client receives
// every chat frame, plus a live connection count on each join and
// leave.
type Lobby struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewLobby returns an empty lobby.
func NewLobby() *Lobby {
	return &Lobby{clients: make(map[*Client]struct{})}
}

func (l *Lobby) join(c *Client) {
	l.mu.Lock()
	l.clients[c] = struct{}{}
	l.mu.Unlock()
	l.broadcastCount()
}

func (l *Lobby) leave(c *Client) {
	l.mu.Lock()
	delete(l.clients, c)
	l.mu.Unlock()
	l.broadcastCount()
}

// relay re-stamps an inbound frame as chat and fans it out. Frames that
// are not JSON objects pass through untouched, matching the permissive
// behavior clients rely on.
func (l *Lobby) relay(raw []byte) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		l.broadcast(raw)
		return
	}
	m["type"] = "chat"
	frame, err := json.Marshal(m)
	if err != nil {
		log.Printf("lobby: marshal chat: %v", err)
		return
	}
	l.broadcast(frame)
}

func (l *Lobby) broadcastCount() {
	l.mu.Lock()
	n := len(l.clients)
	l.mu.Unlock()

	frame, err := json.Marshal(map[string]any{"type": "count", "count": n})
	if err != nil {
		return
	}
	l.broadcast(frame)
}

func (l *Lobby) broadcast(frame []byte) {
	l.mu.Lock()
	clients := make([]*Client, 0, len(l.clients))
	for c := range l.clients {
		clients = append(clients, c)
	}
	l.mu.Unlock()

	for _, c := range clients {
		c.Send(frame)
	}
}

// handleLobbyChat serves the /ws/chat endpoint.
func (s *Server) handleLobbyChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("lobby: upgrade: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()

	s.lobby.join(client)
	client.readLoop(s.lobby.relay)

	s.lobby.leave(client)
	client.Close()
}
