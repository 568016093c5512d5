package rbac

import (
	"log/slog"
	"net/http"

	"github.com/zenithfinancial/portal/pkg/logger"
)

// Resolver identifies the caller of a request.
// It returns the request to pass downstream (typically carrying the caller in
// its context), the caller's role, and false when the request has no valid identity.
// Implementations must not write to the response.
type Resolver interface {
	Resolve(r *http.Request) (*http.Request, Role, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(r *http.Request) (*http.Request, Role, bool)

func (f ResolverFunc) Resolve(r *http.Request) (*http.Request, Role, bool) { return f(r) }

// Gate returns middleware enforcing policy before any route handler runs.
// Denied requests are answered with 302 Found; allowed requests continue with
// the request returned by the resolver.
func Gate(policy Policy, resolver Resolver, log *slog.Logger) func(http.Handler) http.Handler {
	log = logger.OrDiscard(log).With(logger.Component("rbac.gate"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if policy.IsPublic(path) {
				next.ServeHTTP(w, r)
				return
			}

			req, role, ok := resolver.Resolve(r)
			if req == nil {
				req = r
			}

			d := policy.Decide(path, role, ok)
			if d.Outcome != Allow {
				log.DebugContext(r.Context(), "request redirected",
					logger.Event(d.Outcome.String()),
					logger.Role(role.String()),
					slog.String("path", path),
					slog.String("location", d.Location),
				)
				http.Redirect(w, r, d.Location, http.StatusFound)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}
