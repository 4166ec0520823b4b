package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the session storage backend.
type SessionStoreKind string

const (
	// SessionStoreRedis reads sessions written by the login service from Redis.
	SessionStoreRedis SessionStoreKind = "redis"
	// SessionStoreMemory keeps sessions in process memory (development only).
	SessionStoreMemory SessionStoreKind = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: redis, memory)", v)
	}
}

// DevSessionConfig seeds a session when SESSION_STORE=memory.
type DevSessionConfig struct {
	Token       string `env:"TOKEN"`
	CompanyID   string `env:"COMPANY_ID"   envDefault:"1"`
	Role        string `env:"ROLE"         envDefault:"COMPANY"`
	Permissions string `env:"PERMISSIONS"  envDefault:"[]"`
}

// SessionConfig groups session-related configuration.
type SessionConfig struct {
	// Store determines where sessions are read from.
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"redis"`

	// CookieName is the cookie carrying the opaque session id.
	CookieName string `env:"SESSION_COOKIE" envDefault:"session_id"`

	// KeyPrefix namespaces session hashes in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`

	// TTL applies to sessions saved by this process (dev seeding, tests).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Dev seeds a session in memory mode.
	Dev DevSessionConfig `envPrefix:"DEV_SESSION_"`
}

// Sanitize normalises session configuration values.
func (s *SessionConfig) Sanitize() {
	s.CookieName = strings.TrimSpace(s.CookieName)
	if s.CookieName == "" {
		s.CookieName = "session_id"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.Store == "" {
		s.Store = SessionStoreRedis
	}
}
