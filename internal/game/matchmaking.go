package game

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/damavoadora/server/internal/board"
)

// Queue pairs waiting clients first come, first served. When two
// clients are present it creates a session, notifies both with
// match_found (the earlier arrival plays white) and closes their
// matchmaking channels so they reconnect on the game endpoint.
type Queue struct {
	registry *Registry
	stats    StatsRecorder
	capacity int

	mu      sync.Mutex
	waiting []Conn
}

// NewQueue creates a matchmaking queue. capacity bounds the number of
// waiting clients; zero means unbounded.
func NewQueue(registry *Registry, stats StatsRecorder, capacity int) *Queue {
	return &Queue{registry: registry, stats: stats, capacity: capacity}
}

// Enqueue appends a waiting client and pairs the two head-of-line
// waiters when possible. A client arriving at a full queue is closed.
func (q *Queue) Enqueue(conn Conn) {
	var a, b Conn

	q.mu.Lock()
	if q.capacity > 0 && len(q.waiting) >= q.capacity {
		q.mu.Unlock()
		log.Printf("matchmaking: queue full, rejecting client")
		conn.Close()
		return
	}
	q.waiting = append(q.waiting, conn)
	if len(q.waiting) >= 2 {
		a, b = q.waiting[0], q.waiting[1]
		q.waiting = q.waiting[2:]
	}
	q.mu.Unlock()

	if a != nil {
		q.createMatch(a, b)
	}
}

// Remove drops a waiting client, typically on disconnect.
func (q *Queue) Remove(conn Conn) {
	q.mu.Lock()
	for i, c := range q.waiting {
		if c == conn {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			break
		}
	}
	q.mu.Unlock()
}

// Len returns the number of clients currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

// createMatch allocates a game id, registers an empty session and hands
// each client its match notification.
func (q *Queue) createMatch(white, black Conn) {
	id := uuid.NewString()
	q.registry.Add(NewSession(id, q.registry, q.stats))
	log.Printf("matchmaking: created game %s", id)

	notify := func(conn Conn, color board.Color) {
		frame, err := json.Marshal(matchFoundFrame{Type: "match_found", GameID: id, Color: color})
		if err != nil {
			log.Printf("matchmaking: marshal match_found: %v", err)
			return
		}
		conn.Send(frame)
		conn.Close()
	}
	notify(white, board.White)
	notify(black, board.Black)
}
