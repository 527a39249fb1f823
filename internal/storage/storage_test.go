package storage

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := &User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	if err := store.PutUser(in); err != nil {
		t.Fatalf("PutUser: %v", err)
	}

	out, err := store.User("u1")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if out.ID != "u1" || out.Name != "Alice" || out.Email != "alice@example.com" {
		t.Errorf("loaded user = %+v", out)
	}
	if out.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped on store")
	}

	if _, err := store.User("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}
}

func TestSessions(t *testing.T) {
	store := openTestStore(t)

	if err := store.PutSession("tok-1", "u1"); err != nil {
		t.Fatalf("PutSession: %v", err)
	}

	id, err := store.UserIDForSession("tok-1")
	if err != nil {
		t.Fatalf("UserIDForSession: %v", err)
	}
	if id != "u1" {
		t.Errorf("resolved user id = %q, want u1", id)
	}

	if err := store.DeleteSession("tok-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := store.UserIDForSession("tok-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted session error = %v, want ErrNotFound", err)
	}
}

func TestRecordResult(t *testing.T) {
	store := openTestStore(t)

	for _, outcome := range []string{"win", "win", "loss", "draw"} {
		if err := store.RecordResult("u1", outcome); err != nil {
			t.Fatalf("RecordResult(%s): %v", outcome, err)
		}
	}

	stats, err := store.Stats("u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Wins != 2 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.GamesPlayed() != 4 {
		t.Errorf("GamesPlayed = %d, want 4", stats.GamesPlayed())
	}

	if err := store.RecordResult("u1", "retired"); err == nil {
		t.Error("unknown outcome accepted")
	}

	// A user with no games reads back zeroed, not an error.
	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats(nobody): %v", err)
	}
	if empty.GamesPlayed() != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}
