package identity

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the identity provider credentials.
type Config struct {
	APIKey      string        `env:"WORKOS_API_KEY,required,notEmpty"`
	ClientID    string        `env:"WORKOS_CLIENT_ID,required,notEmpty"`
	RedirectURI string        `env:"WORKOS_REDIRECT_URI,required,notEmpty"`
	BaseURL     string        `env:"WORKOS_BASE_URL" envDefault:"https://api.workos.com"`
	HTTPTimeout time.Duration `env:"WORKOS_HTTP_TIMEOUT" envDefault:"10s"`
}

func (c Config) validate() error {
	switch {
	case c.APIKey == "":
		return fmt.Errorf("%w: api key is empty", ErrInvalidConfig)
	case c.ClientID == "":
		return fmt.Errorf("%w: client id is empty", ErrInvalidConfig)
	case c.RedirectURI == "":
		return fmt.Errorf("%w: redirect uri is empty", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidConfig, c.BaseURL)
	}
	return nil
}
