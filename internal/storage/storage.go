package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes
const (
	prefixUser    = "user:"
	prefixSession = "session:"
	prefixStats   = "stats:"
)

// ErrNotFound is returned when a user, session token or stats record
// does not exist.
var ErrNotFound = errors.New("storage: not found")

// User is a durable user record. Only the fields the game core needs
// are stored here; registration and credentials live elsewhere.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStats holds a user's lifetime results.
type PlayerStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// GamesPlayed returns the total number of recorded games.
func (s PlayerStats) GamesPlayed() int {
	return s.Wins + s.Losses + s.Draws
}

// Store wraps BadgerDB for user records, session tokens and statistics.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. An empty dir uses the
// platform default data directory.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DatabaseDir()
		if err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is noisy at startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutUser stores a user record.
func (s *Store) PutUser(u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixUser+u.ID), data)
	})
}

// User loads a user record by id.
func (s *Store) User(id string) (*User, error) {
	var u User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixUser + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &u)
		})
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PutSession maps a session token to a user id.
func (s *Store) PutSession(token, userID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixSession+token), []byte(userID))
	})
}

// UserIDForSession resolves a session token to its user id.
func (s *Store) UserIDForSession(token string) (string, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixSession + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteSession removes a session token.
func (s *Store) DeleteSession(token string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixSession + token))
	})
}

// Stats loads a user's counters. A user with no recorded games gets
// zeroed stats, not an error.
func (s *Store) Stats(userID string) (*PlayerStats, error) {
	stats := &PlayerStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixStats + userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordResult increments the counter for one game outcome. The
// read-modify-write runs inside a single transaction.
func (s *Store) RecordResult(userID, outcome string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(prefixStats + userID)
		stats := PlayerStats{}

		item, err := txn.Get(key)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			})
		}
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}

		switch outcome {
		case "win":
			stats.Wins++
		case "loss":
			stats.Losses++
		case "draw":
			stats.Draws++
		default:
			return fmt.Errorf("unknown outcome %q", outcome)
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}
