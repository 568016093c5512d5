package auth

import "time"

// StateCookieName is the encrypted cookie holding the pending login's state.
const StateCookieName = "zenith_oauth_state"

// Config holds the auth flow settings.
type Config struct {
	// AppURL makes redirects to the login page absolute. Relative when empty.
	AppURL      string        `env:"APP_URL"`
	LoginPath   string        `env:"AUTH_LOGIN_PATH" envDefault:"/login"`
	VerifyState bool          `env:"AUTH_VERIFY_STATE" envDefault:"true"`
	StateTTL    time.Duration `env:"AUTH_STATE_TTL" envDefault:"10m"`
}

// DefaultConfig returns the settings used when no environment overrides them.
func DefaultConfig() Config {
	return Config{
		LoginPath:   "/login",
		VerifyState: true,
		StateTTL:    10 * time.Minute,
	}
}
