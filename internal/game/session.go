package game

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/damavoadora/server/internal/board"
)

// Session owns one match: the authoritative board, whose turn it is, the
// chain pin during multi-jump sequences, and the two participant slots.
// All state is guarded by mu; broadcasts marshal a snapshot and collect
// the attached connections under the lock, then send after release, so
// no network I/O ever happens while the lock is held.
type Session struct {
	id        string
	startedAt time.Time
	registry  *Registry
	stats     StatsRecorder

	mu         sync.Mutex
	board      *board.Board
	turn       board.Color
	chainPiece *board.Square
	lastFrom   *board.Square
	lastTo     *board.Square
	white      slot
	black      slot
	finished   bool
}

type slot struct {
	conn        Conn
	participant Participant
}

// NewSession creates a session in the initial position with white to
// move. The registry reference is used for self-removal on game over.
func NewSession(id string, registry *Registry, stats StatsRecorder) *Session {
	return &Session{
		id:        id,
		startedAt: time.Now(),
		registry:  registry,
		stats:     stats,
		board:     board.New(),
		turn:      board.White,
	}
}

// ID returns the session's game identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) slot(color board.Color) *slot {
	if color == board.White {
		return &s.white
	}
	return &s.black
}

// Attach stores the connection and identity for the given color and
// broadcasts a full state snapshot to every attached channel.
func (s *Session) Attach(color board.Color, conn Conn, p Participant) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		conn.Close()
		return
	}
	sl := s.slot(color)
	sl.conn = conn
	sl.participant = p
	frame, conns := s.updateLocked()
	s.mu.Unlock()

	deliver(frame, conns)
}

// Detach nulls the connection slot if conn is still the attached
// channel. The session stays alive; there is no forfeit on disconnect.
func (s *Session) Detach(color board.Color, conn Conn) {
	s.mu.Lock()
	if sl := s.slot(color); sl.conn == conn {
		sl.conn = nil
	}
	s.mu.Unlock()
}

// ProcessMove validates and applies a move for the given color.
// Out-of-turn moves are dropped silently; illegal moves trigger a state
// re-broadcast so the offending client rolls back its optimistic UI. A
// capture with a continuation pins the chain piece and keeps the turn;
// any other applied move flips the turn and runs the terminal check.
func (s *Session) ProcessMove(color board.Color, from, to board.Square) {
	s.mu.Lock()
	if s.finished || s.turn != color {
		s.mu.Unlock()
		return
	}

	ok, capture := board.Validate(s.board, s.chainPiece, from, to, color)
	if !ok {
		frame, conns := s.updateLocked()
		s.mu.Unlock()
		deliver(frame, conns)
		return
	}

	board.Apply(s.board, from, to, capture)
	f, t := from, to
	s.lastFrom, s.lastTo = &f, &t
	s.chainPiece = nil

	if capture && board.CanCaptureFrom(s.board, to, color) {
		pin := to
		s.chainPiece = &pin
	} else {
		s.turn = color.Opposite()
		if v := board.CheckTerminal(s.board, color); v.Over {
			fin := s.finishLocked(v.Winner, v.Reason)
			s.mu.Unlock()
			fin.run()
			return
		}
	}

	frame, conns := s.updateLocked()
	s.mu.Unlock()
	deliver(frame, conns)
}

// RequestState sends the current snapshot to the requesting color only.
func (s *Session) RequestState(color board.Color) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	frame, _ := s.updateLocked()
	conn := s.slot(color).conn
	s.mu.Unlock()

	if conn != nil {
		conn.Send(frame)
	}
}

// Surrender finalizes the game with the opposite color as winner.
func (s *Session) Surrender(color board.Color) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	fin := s.finishLocked(color.Opposite(), ReasonSurrender)
	s.mu.Unlock()
	fin.run()
}

// Relay forwards a chat or signal frame to the opposite color. Chat
// frames are re-encoded with the sender's display name stamped in;
// signal frames (WebRTC SDP/ICE) pass through byte for byte.
func (s *Session) Relay(from board.Color, frameType string, raw []byte) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	target := s.slot(from.Opposite()).conn
	payload := raw
	if frameType == TypeChat {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			s.mu.Unlock()
			return
		}
		m["sender"] = s.slot(from).participant.Name
		stamped, err := json.Marshal(m)
		if err != nil {
			s.mu.Unlock()
			return
		}
		payload = stamped
	}
	s.mu.Unlock()

	if target != nil {
		target.Send(payload)
	}
}

// updateLocked marshals the current state snapshot and collects the
// attached connections. Callers must hold mu.
func (s *Session) updateLocked() ([]byte, []Conn) {
	frame, err := json.Marshal(updateFrame{
		Type:         "update",
		Board:        s.board,
		Turn:         s.turn,
		ChainPiece:   s.chainPiece,
		LastMoveFrom: s.lastFrom,
		LastMoveTo:   s.lastTo,
		Players: playersInfo{
			White: s.white.participant.info(),
			Black: s.black.participant.info(),
		},
	})
	if err != nil {
		log.Printf("game %s: marshal update: %v", s.id, err)
		return nil, nil
	}
	return frame, s.attachedLocked()
}

func (s *Session) attachedLocked() []Conn {
	conns := make([]Conn, 0, 2)
	if s.white.conn != nil {
		conns = append(conns, s.white.conn)
	}
	if s.black.conn != nil {
		conns = append(conns, s.black.conn)
	}
	return conns
}

func (p Participant) info() PlayerInfo {
	info := PlayerInfo{Name: p.Name, Email: p.Email}
	if p.ID != "" {
		id := p.ID
		info.ID = &id
	}
	return info
}

// finalization carries everything needed to tear a game down after the
// session lock is released: the game_over frame, the channels to notify
// and close, and the statistics to record.
type finalization struct {
	session *Session
	frame   []byte
	conns   []Conn
	results map[string]string
}

// finishLocked marks the session finished and prepares the teardown.
// winner is empty for a draw. Callers must hold mu.
func (s *Session) finishLocked(winner board.Color, reason string) finalization {
	s.finished = true

	label := "draw"
	if winner.Valid() {
		label = string(winner)
	}
	frame, err := json.Marshal(gameOverFrame{Type: "game_over", Winner: label, Reason: reason})
	if err != nil {
		log.Printf("game %s: marshal game_over: %v", s.id, err)
	}

	results := make(map[string]string)
	for _, color := range []board.Color{board.White, board.Black} {
		id := s.slot(color).participant.ID
		if id == "" {
			continue
		}
		switch {
		case !winner.Valid():
			results[id] = OutcomeDraw
		case winner == color:
			results[id] = OutcomeWin
		default:
			results[id] = OutcomeLoss
		}
	}

	return finalization{
		session: s,
		frame:   frame,
		conns:   s.attachedLocked(),
		results: results,
	}
}

// run emits game_over to both channels, closes them, removes the
// session from the registry and records the results. Stats writes are
// fire and forget: failures are logged and the teardown continues.
func (f finalization) run() {
	for _, conn := range f.conns {
		if f.frame != nil {
			conn.Send(f.frame)
		}
		conn.Close()
	}
	f.session.registry.Remove(f.session.id)

	if f.session.stats == nil || len(f.results) == 0 {
		return
	}
	results := f.results
	stats := f.session.stats
	id := f.session.id
	go func() {
		for userID, outcome := range results {
			if err := stats.RecordResult(userID, outcome); err != nil {
				log.Printf("game %s: record %s for user %s: %v", id, outcome, userID, err)
			}
		}
	}()
}

func deliver(frame []byte, conns []Conn) {
	if frame == nil {
		return
	}
	for _, conn := range conns {
		conn.Send(frame)
	}
}
