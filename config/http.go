package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the console (e.g., "https://books.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// LoginPath is where unauthenticated requests are redirected.
	// The originally requested location is appended as ?next=.
	LoginPath string `env:"APP_LOGIN_PATH" envDefault:"/login"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.LoginPath = strings.TrimSpace(h.LoginPath)
	if h.LoginPath == "" {
		h.LoginPath = "/login"
	}
	if !strings.HasPrefix(h.LoginPath, "/") {
		h.LoginPath = "/" + h.LoginPath
	}
}
