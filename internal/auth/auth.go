// Package auth resolves client-presented credentials to user
// identities. The game core only ever asks two questions: who owns this
// session token, and who is this user id. Token issuance, passwords and
// registration are handled by the account service, not here.
package auth

import (
	"errors"
	"fmt"

	"github.com/damavoadora/server/internal/storage"
)

// ErrUnknownIdentity is returned when a token or user id does not
// resolve. Callers treat it as "play anonymously", not as a failure.
var ErrUnknownIdentity = errors.New("auth: unknown identity")

// User is a resolved identity.
type User struct {
	ID    string
	Name  string
	Email string
}

// Service answers identity lookups against the store.
type Service struct {
	store *storage.Store
}

// NewService creates an auth service backed by the given store.
func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// ResolveSession maps a session token (from the access_token cookie) to
// the user it was issued for.
func (s *Service) ResolveSession(token string) (*User, error) {
	userID, err := s.store.UserIDForSession(token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownIdentity
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return s.ResolveUserByID(userID)
}

// ResolveUserByID loads the identity for a raw user id. This is the
// fallback path for clients that pass ?userId= instead of a cookie.
func (s *Service) ResolveUserByID(id string) (*User, error) {
	u, err := s.store.User(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownIdentity
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", id, err)
	}
	return &User{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}
