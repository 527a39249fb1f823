package auth

import (
	"errors"
	"testing"

	"github.com/damavoadora/server/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewService(store), store
}

func TestResolveSession(t *testing.T) {
	svc, store := newTestService(t)

	if err := store.PutUser(&storage.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := store.PutSession("tok-1", "u1"); err != nil {
		t.Fatal(err)
	}

	u, err := svc.ResolveSession("tok-1")
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if u.ID != "u1" || u.Name != "Alice" {
		t.Errorf("resolved user = %+v", u)
	}

	if _, err := svc.ResolveSession("bogus"); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("bogus token error = %v, want ErrUnknownIdentity", err)
	}
}

func TestResolveUserByID(t *testing.T) {
	svc, store := newTestService(t)

	if err := store.PutUser(&storage.User{ID: "u2", Name: "Beto"}); err != nil {
		t.Fatal(err)
	}

	u, err := svc.ResolveUserByID("u2")
	if err != nil {
		t.Fatalf("ResolveUserByID: %v", err)
	}
	if u.Name != "Beto" {
		t.Errorf("resolved user = %+v", u)
	}

	if _, err := svc.ResolveUserByID("missing"); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("missing id error = %v, want ErrUnknownIdentity", err)
	}
}
