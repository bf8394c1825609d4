// Package session persists the token and wallet address that authorize
// calls to the wallet backend.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Maphikza/trust-wallet-client.git/internal/config"
)

// Session is the pair that authorizes backend calls. Both fields are
// required; a half-written pair is treated as no session at all.
type Session struct {
	Token         string
	WalletAddress string
}

func (s Session) Valid() bool {
	return s.Token != "" && s.WalletAddress != ""
}

// ErrPartialSession is returned by Save when a field is empty.
var ErrPartialSession = errors.New("session requires both a token and a wallet address")

// Store holds at most one session.
type Store interface {
	// Save replaces the current session with s in a single step.
	Save(s Session) error
	// Load returns the session, or false if none (or only part of one) is stored.
	Load() (Session, bool)
	// Clear removes any stored session, including half-written residue.
	Clear() error
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(s Session) error {
	if !s.Valid() {
		return ErrPartialSession
	}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.current.Valid() {
		return Session{}, false
	}
	return m.current, true
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.current = Session{}
	m.mu.Unlock()
	return nil
}

// Open returns the store selected by the session_backend setting.
// The returned close func releases any resources the store holds.
func Open(s config.Settings) (Store, func() error, error) {
	switch s.SessionBackend {
	case "", "file":
		return NewEnvFileStore(s.SessionFile), func() error { return nil }, nil
	case "sqlite":
		store, err := OpenSQLiteStore(s.SessionDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "memory":
		return NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", s.SessionBackend)
	}
}
