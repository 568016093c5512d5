package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zenithfinancial/portal/pkg/cookie"
)

const (
	envelopeVersion = 1

	// maxCookieValue keeps name, value and attributes under the 4096 byte
	// limit browsers enforce per cookie.
	maxCookieValue = 3800
)

type envelope struct {
	Version  int     `json:"v"`
	IssuedAt int64   `json:"iat"`
	Expires  int64   `json:"exp"`
	Session  Session `json:"s"`
}

// Codec turns a Session into an opaque cookie value and back.
// The expiry travels inside the sealed envelope, so a replayed cookie stops
// working after its TTL even if the browser kept it.
type Codec struct {
	cookies *cookie.Manager
	name    string
	ttl     time.Duration
	now     func() time.Time
}

// NewCodec returns a codec sealing values for the cookie called name.
func NewCodec(cookies *cookie.Manager, name string, ttl time.Duration) *Codec {
	return &Codec{cookies: cookies, name: name, ttl: ttl, now: time.Now}
}

// WithClock returns a copy of c reading time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Name is the cookie name the codec seals for.
func (c *Codec) Name() string { return c.name }

// TTL is how long an encoded session stays valid.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Encode seals s with an issue time and an expiry of now plus TTL.
func (c *Codec) Encode(s Session) (string, error) {
	now := c.now()
	payload, err := json.Marshal(envelope{
		Version:  envelopeVersion,
		IssuedAt: now.Unix(),
		Expires:  now.Add(c.ttl).Unix(),
		Session:  s,
	})
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}

	value, err := c.cookies.Seal(c.name, payload)
	if err != nil {
		return "", fmt.Errorf("session: seal: %w", err)
	}
	if len(value) > maxCookieValue {
		return "", fmt.Errorf("%w: %d bytes", ErrSessionTooLarge, len(value))
	}
	return value, nil
}

// Decode opens value and returns the session it carries.
// Any failure is reported as ErrInvalidSession, wrapping the cause.
func (c *Codec) Decode(value string) (Session, error) {
	if value == "" {
		return Session{}, ErrInvalidSession
	}

	payload, err := c.cookies.Open(c.name, value)
	if err != nil {
		return Session{}, errors.Join(ErrInvalidSession, err)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Session{}, errors.Join(ErrInvalidSession, err)
	}
	if env.Version != envelopeVersion {
		return Session{}, fmt.Errorf("%w: envelope version %d", ErrInvalidSession, env.Version)
	}
	if !c.now().Before(time.Unix(env.Expires, 0)) {
		return Session{}, fmt.Errorf("%w: expired", ErrInvalidSession)
	}
	if err := env.Session.Validate(); err != nil {
		return Session{}, errors.Join(ErrInvalidSession, err)
	}

	return env.Session, nil
}
