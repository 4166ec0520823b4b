package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Sessions ports.SessionStore // Required
	TTL      time.Duration      // Optional: lifetime of sessions saved by Seed
}

// SessionService reads and clears the sessions written at login.
type SessionService struct {
	sessions ports.SessionStore
	ttl      time.Duration
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Sessions == nil {
		panic("session store is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{sessions: opts.Sessions, ttl: ttl}
}

// GetSession retrieves a session by ID.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	session.Role = domainauth.ParseRole(string(session.Role))
	return &session, nil
}

// Seed persists a session under a fresh ID and returns it. Used for local
// development where no login service writes sessions.
func (s *SessionService) Seed(ctx context.Context, sess domainauth.Session) (domainauth.Session, error) {
	sess.ID = generateSessionID()
	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout removes a session.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a random URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}
