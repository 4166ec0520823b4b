package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", " https://api.example.com/api ")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("DEV_SESSION_TOKEN", "tok")
	t.Setenv("DEV_SESSION_COMPANY_ID", "42")
	t.Setenv("DEV_SESSION_ROLE", "USER")
	t.Setenv("FORM_SUBMIT_COOLDOWN", "750ms")
	t.Setenv("APP_LOGIN_PATH", "signin")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Backend.BaseURL != "https://api.example.com/api/" {
		t.Fatalf("expected trimmed base url with trailing slash, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("unexpected backend timeout %v", cfg.Backend.Timeout)
	}
	if cfg.UsesRedisSessions() {
		t.Fatalf("expected memory session store")
	}
	if cfg.Screens.SubmitCooldown != 750*time.Millisecond {
		t.Fatalf("unexpected cooldown %v", cfg.Screens.SubmitCooldown)
	}
	if cfg.HTTP.LoginPath != "/signin" {
		t.Fatalf("expected login path to be rooted, got %q", cfg.HTTP.LoginPath)
	}

	expected := DevSessionConfig{Token: "tok", CompanyID: "42", Role: "USER", Permissions: "[]"}
	if !reflect.DeepEqual(cfg.Session.Dev, expected) {
		t.Fatalf("unexpected dev session:\nexpected: %#v\ngot:      %#v", expected, cfg.Session.Dev)
	}
}

func TestAppConfig_MissingBackendURL(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatalf("expected error when BACKEND_BASE_URL is missing")
	}
}

func TestSessionStoreKind_UnmarshalText(t *testing.T) {
	var k SessionStoreKind
	if err := k.UnmarshalText([]byte(" Redis ")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != SessionStoreRedis {
		t.Fatalf("expected redis, got %q", k)
	}
	if err := k.UnmarshalText([]byte("cookie")); err == nil {
		t.Fatalf("expected error for unknown store")
	}
}

func TestScreensConfig_Sanitize(t *testing.T) {
	cfg := ScreensConfig{SubmitCooldown: -time.Second, RefreshTimeout: 0, ToastCapacity: -1}
	cfg.Sanitize()

	if cfg.SubmitCooldown != defaultSubmitCooldown {
		t.Fatalf("expected default cooldown, got %v", cfg.SubmitCooldown)
	}
	if cfg.RefreshTimeout != 20*time.Second {
		t.Fatalf("expected default refresh timeout, got %v", cfg.RefreshTimeout)
	}
	if cfg.ToastCapacity != 20 {
		t.Fatalf("expected default toast capacity, got %d", cfg.ToastCapacity)
	}
	if cfg.IdleTimeout != 30*time.Minute || cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("expected default idle settings, got %v/%v", cfg.IdleTimeout, cfg.SweepInterval)
	}

	cfg = ScreensConfig{SubmitCooldown: time.Hour}
	cfg.Sanitize()
	if cfg.SubmitCooldown != maxSubmitCooldown {
		t.Fatalf("expected cooldown to be clamped, got %v", cfg.SubmitCooldown)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}
	if cfg.Prefix != defaultMetricsPrefix {
		t.Fatalf("expected default prefix, got %q", cfg.Prefix)
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}
