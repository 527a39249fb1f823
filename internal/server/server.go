// Package server exposes the WebSocket endpoints: matchmaking, per-game
// channels and the lobby chat. It authenticates handshakes, decodes
// inbound frames and routes them into the game core.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/damavoadora/server/internal/auth"
	"github.com/damavoadora/server/internal/board"
	"github.com/damavoadora/server/internal/game"
)

// Close code sent on attach to an unknown game id.
const closeUnknownGame = 4000

// sessionCookie is the HTTP-only cookie carrying the session token.
const sessionCookie = "access_token"

// anonymousName is the display name for unauthenticated players.
const anonymousName = "Guest"

// Authenticator resolves handshake credentials to identities. Both
// lookups return auth.ErrUnknownIdentity for unknown credentials, which
// the server treats as "play anonymously".
type Authenticator interface {
	ResolveSession(token string) (*auth.User, error)
	ResolveUserByID(id string) (*auth.User, error)
}

// Server holds the endpoint dependencies.
type Server struct {
	registry *game.Registry
	queue    *game.Queue
	auth     Authenticator
	lobby    *Lobby
	upgrader websocket.Upgrader
}

// New creates a server. An empty allowedOrigins list accepts any
// origin.
func New(registry *game.Registry, queue *game.Queue, authn Authenticator, allowedOrigins []string) *Server {
	s := &Server{
		registry: registry,
		queue:    queue,
		auth:     authn,
		lobby:    NewLobby(),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return s
}

// Routes returns the HTTP mux with all endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/matchmaking", s.handleMatchmaking)
	mux.HandleFunc("GET /ws/game/{game_id}/{color}", s.handleGame)
	mux.HandleFunc("GET /ws/chat", s.handleLobbyChat)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// handleMatchmaking queues the client until an opponent shows up.
// Inbound frames are heartbeat only and ignored.
func (s *Server) handleMatchmaking(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("matchmaking: upgrade: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()

	s.queue.Enqueue(client)
	client.readLoop(func([]byte) {})

	s.queue.Remove(client)
	client.Close()
}

// handleGame attaches the client to its session and routes frames until
// the channel closes.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("game_id")
	colorName := r.PathValue("color")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("game %s: upgrade: %v", gameID, err)
		return
	}

	color, ok := board.ParseColor(colorName)
	if !ok {
		closeWith(conn, websocket.ClosePolicyViolation, "bad color")
		return
	}

	session := s.registry.Get(gameID)
	if session == nil {
		closeWith(conn, closeUnknownGame, "unknown game")
		return
	}

	participant := s.identify(r)
	log.Printf("game %s: %s attached as %s", gameID, participant.Name, color)

	client := newClient(conn)
	go client.writePump()
	session.Attach(color, client, participant)

	client.readLoop(func(raw []byte) {
		s.routeGameFrame(session, color, raw)
	})

	session.Detach(color, client)
	client.Close()
	log.Printf("game %s: %s detached", gameID, color)
}

// routeGameFrame decodes one inbound frame and dispatches it. Malformed
// JSON and unknown types are dropped silently.
func (s *Server) routeGameFrame(session *game.Session, color board.Color, raw []byte) {
	var frame game.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return
	}

	switch frame.Type {
	case game.TypeMove:
		if frame.From == nil || frame.To == nil {
			return
		}
		session.ProcessMove(color, *frame.From, *frame.To)
	case game.TypeSurrender:
		session.Surrender(color)
	case game.TypeChat, game.TypeSignal:
		session.Relay(color, frame.Type, raw)
	case game.TypeRequestState:
		session.RequestState(color)
	}
}

// identify resolves the connecting client's identity: session cookie
// first, then the userId query parameter, else anonymous. Lookup
// failures demote to anonymous rather than refusing the connection.
func (s *Server) identify(r *http.Request) game.Participant {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		user, err := s.auth.ResolveSession(cookie.Value)
		if err == nil {
			return game.Participant{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		log.Printf("auth: session cookie rejected: %v", err)
	}

	if id := r.URL.Query().Get("userId"); id != "" {
		user, err := s.auth.ResolveUserByID(id)
		if err == nil {
			return game.Participant{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		log.Printf("auth: userId %q rejected: %v", id, err)
	}

	return game.Participant{Name: anonymousName}
}

// closeWith performs the closing handshake with the given status code
// and shuts the raw connection down.
func closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	conn.Close()
}
