package config

import (
	"strings"
	"time"
)

// BackendConfig describes the accounting REST backend the console talks to.
type BackendConfig struct {
	// BaseURL is the root of the REST API (e.g., "https://api.example.com/api/").
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every backend request.
	UserAgent string `env:"USER_AGENT" envDefault:"ledger-console"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimSpace(b.BaseURL)
	if b.BaseURL != "" && !strings.HasSuffix(b.BaseURL, "/") {
		b.BaseURL += "/"
	}
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(b.UserAgent) == "" {
		b.UserAgent = "ledger-console"
	}
}
