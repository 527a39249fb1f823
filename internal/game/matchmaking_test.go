package game

import (
	"testing"

	"github.com/damavoadora/server/internal/board"
)

func TestQueuePairsInOrder(t *testing.T) {
	registry := NewRegistry()
	q := NewQueue(registry, nil, 0)

	a, b := &fakeConn{}, &fakeConn{}
	q.Enqueue(a)
	if a.count() != 0 {
		t.Fatal("lone waiter received a frame")
	}
	q.Enqueue(b)

	ma, mb := a.last(t), b.last(t)
	if ma["type"] != "match_found" || mb["type"] != "match_found" {
		t.Fatalf("frames = %v / %v", ma, mb)
	}
	if ma["game_id"] != mb["game_id"] {
		t.Error("paired clients got different game ids")
	}
	if ma["color"] != string(board.White) || mb["color"] != string(board.Black) {
		t.Errorf("colors = %v / %v, want white / black", ma["color"], mb["color"])
	}
	if a.closed == 0 || b.closed == 0 {
		t.Error("matchmaking channels left open after pairing")
	}

	if registry.Get(ma["game_id"].(string)) == nil {
		t.Error("session not registered under the announced game id")
	}
	if q.Len() != 0 {
		t.Errorf("queue length = %d after pairing, want 0", q.Len())
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue(NewRegistry(), nil, 0)

	a, b := &fakeConn{}, &fakeConn{}
	q.Enqueue(a)
	q.Remove(a)
	q.Enqueue(b)

	if a.count() != 0 || b.count() != 0 {
		t.Error("removed waiter was paired")
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d, want 1", q.Len())
	}
}

func TestQueueCapacity(t *testing.T) {
	q := NewQueue(NewRegistry(), nil, 1)

	q.Enqueue(&fakeConn{})
	over := &fakeConn{}
	q.Enqueue(over)

	if over.closed == 0 {
		t.Error("client admitted past queue capacity")
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d, want 1", q.Len())
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	s := NewSession("abc", registry, nil)
	registry.Add(s)

	if registry.Get("abc") != s {
		t.Error("lookup failed")
	}
	if registry.Get("missing") != nil {
		t.Error("unknown id returned a session")
	}

	registry.Remove("abc")
	if registry.Get("abc") != nil || registry.Len() != 0 {
		t.Error("remove left the session behind")
	}
}
