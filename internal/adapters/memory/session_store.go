// Package memory provides in-process adapters for development and tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// ErrNotFound is returned when a session is not present or has expired.
var ErrNotFound = ports.ErrSessionNotFound

type entry struct {
	sess      domainauth.Session
	expiresAt time.Time
}

// SessionStore keeps sessions in memory. It is safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]entry), now: time.Now}
}

// Save stores sess until ttl elapses. A non-positive ttl never expires.
func (m *SessionStore) Save(_ context.Context, sess domainauth.Session, ttl time.Duration) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = entry{sess: sess, expiresAt: exp}
	return nil
}

// Get returns the session or ErrNotFound.
func (m *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.sessions, id)
		return domainauth.Session{}, ErrNotFound
	}
	return e.sess, nil
}

// Delete removes the session; deleting a missing id is not an error.
func (m *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
