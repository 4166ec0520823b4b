package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - session.go: Session storage and cookie configuration
//   - database.go: Redis configuration
//   - backend.go: Accounting REST backend configuration
//   - http.go: HTTP server configuration
//   - screens.go: List and form controller tuning
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logs, memory sessions).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Session configuration
	Session SessionConfig

	// Redis configuration (used when SESSION_STORE=redis)
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Backend REST API configuration
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Screen controller configuration
	Screens ScreensConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Screens.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// UsesRedisSessions reports whether sessions are read from Redis.
func (c *AppConfig) UsesRedisSessions() bool {
	return c.Session.Store == SessionStoreRedis
}
