package session

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/rbac"
)

// Manager creates, reads and destroys the session cookie.
// Sessions are stateless: everything lives in the sealed cookie and nothing is
// stored server side, so destroying a session only clears the client's copy.
type Manager struct {
	cookies *cookie.Manager
	codec   *Codec
	config  Config
	logger  *slog.Logger
	now     func() time.Time
}

// New returns a Manager storing sessions in cookies sealed by cookies.
func New(cookies *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		cookies: cookies,
		config:  DefaultConfig(),
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.logger = m.logger.With(logger.Component("session"))
	m.codec = NewCodec(cookies, m.config.CookieName, m.config.TTL).WithClock(m.now)
	return m
}

// Codec exposes the codec used for the session cookie.
func (m *Manager) Codec() *Codec { return m.codec }

func (m *Manager) cookieOptions() []cookie.Option {
	return []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(m.config.Secure),
	}
}

// Create marks data as logged in and writes it to the session cookie.
// Incomplete data is rejected with ErrIncompleteSession and nothing is written.
func (m *Manager) Create(w http.ResponseWriter, data Session) error {
	if err := data.validateFields(); err != nil {
		return err
	}
	data.IsLoggedIn = true

	value, err := m.codec.Encode(data)
	if err != nil {
		return err
	}

	m.cookies.Set(w, m.config.CookieName, value, append(m.cookieOptions(), cookie.WithTTL(m.config.TTL))...)
	return nil
}

// Read returns the request's session. It never fails: a missing, tampered,
// expired or incomplete cookie all read as "no session".
func (m *Manager) Read(r *http.Request) (*Session, bool) {
	value, err := m.cookies.Get(r, m.config.CookieName)
	if err != nil {
		return nil, false
	}

	s, err := m.codec.Decode(value)
	if err != nil {
		m.logger.DebugContext(r.Context(), "session cookie rejected", logger.Error(err))
		return nil, false
	}
	return &s, true
}

// Destroy expires the session cookie. Calling it without a session is harmless.
func (m *Manager) Destroy(w http.ResponseWriter) {
	m.cookies.Delete(w, m.config.CookieName, m.cookieOptions()...)
}

// IsAuthenticated reports whether the request carries a valid session.
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	_, ok := m.Read(r)
	return ok
}

// HasRole reports whether the request's session role is one of roles.
func (m *Manager) HasRole(r *http.Request, roles ...rbac.Role) bool {
	s, ok := m.Read(r)
	return ok && slices.Contains(roles, s.Role)
}
