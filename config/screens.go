package config

import "time"

const (
	defaultSubmitCooldown = time.Second
	maxSubmitCooldown     = 30 * time.Second
)

// ScreensConfig tunes the list and form controllers shared by every screen.
type ScreensConfig struct {
	// SubmitCooldown is the minimum interval between two form submissions.
	SubmitCooldown time.Duration `env:"FORM_SUBMIT_COOLDOWN" envDefault:"1s"`

	// RefreshTimeout bounds a single list fetch.
	RefreshTimeout time.Duration `env:"LIST_REFRESH_TIMEOUT" envDefault:"20s"`

	// ToastCapacity bounds the per-screen toast queue.
	ToastCapacity int `env:"TOAST_CAPACITY" envDefault:"20"`

	// IdleTimeout drops a session's screens after this long without a request.
	IdleTimeout time.Duration `env:"SCREEN_IDLE_TIMEOUT" envDefault:"30m"`

	// SweepInterval is how often idle screens are swept.
	SweepInterval time.Duration `env:"SCREEN_SWEEP_INTERVAL" envDefault:"5m"`
}

// Sanitize clamps controller settings to safe ranges.
func (s *ScreensConfig) Sanitize() {
	if s.SubmitCooldown < 0 {
		s.SubmitCooldown = defaultSubmitCooldown
	}
	if s.SubmitCooldown > maxSubmitCooldown {
		s.SubmitCooldown = maxSubmitCooldown
	}
	if s.RefreshTimeout <= 0 {
		s.RefreshTimeout = 20 * time.Second
	}
	if s.ToastCapacity <= 0 {
		s.ToastCapacity = 20
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = 30 * time.Minute
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = 5 * time.Minute
	}
}
