package ports

// Package ports defines interfaces (hexagonal ports) for session and backend access.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
)

// ErrSessionNotFound is returned by a SessionStore when the id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions written at login.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
