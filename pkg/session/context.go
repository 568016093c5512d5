package session

import (
	"context"
	"net/http"

	"github.com/zenithfinancial/portal/pkg/rbac"
)

type sessionContextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// Resolve implements rbac.Resolver. Allowed requests reach the next handler
// with the session in their context.
func (m *Manager) Resolve(r *http.Request) (*http.Request, rbac.Role, bool) {
	s, ok := m.Read(r)
	if !ok {
		return r, "", false
	}
	return r.WithContext(WithSession(r.Context(), s)), s.Role, true
}
