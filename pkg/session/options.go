package session

import (
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithConfig applies cfg. An empty cookie name or a non-positive TTL keeps the default.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		if cfg.CookieName != "" {
			m.config.CookieName = cfg.CookieName
		}
		if cfg.TTL > 0 {
			m.config.TTL = cfg.TTL
		}
		m.config.Secure = cfg.Secure
	}
}

func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.config.CookieName = name
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.config.TTL = ttl
		}
	}
}

func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.config.Secure = secure
	}
}

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source used for issuing and expiring sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
