package session

import (
	"time"

	"github.com/zenithfinancial/portal/pkg/cookie"
)

// Config holds session configuration.
type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"zenith_session"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	// Secure sets the Secure cookie attribute. Production deployments must enable it.
	Secure bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the built-in cookie name and a seven day TTL.
func DefaultConfig() Config {
	return Config{
		CookieName: "zenith_session",
		TTL:        7 * 24 * time.Hour,
	}
}

// NewFromConfig creates a Manager from cfg. Options are applied after the config.
func NewFromConfig(cfg Config, cookies *cookie.Manager, opts ...Option) *Manager {
	return New(cookies, append([]Option{WithConfig(cfg)}, opts...)...)
}
