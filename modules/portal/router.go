package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zenithfinancial/portal/handler"
)

// Mountable is a module that serves its own sub-router.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the portal's root router. Nil fields are skipped.
type RouterOptions struct {
	// Middleware runs outermost first, ahead of the gate.
	Middleware []func(http.Handler) http.Handler
	// Gate enforces the access policy on every request, including unmatched
	// paths.
	Gate func(http.Handler) http.Handler

	Auth      Mountable // mounted at /api/auth
	Pages     *Pages
	Liveness  http.Handler
	Readiness http.Handler
}

// Router assembles the portal.
//
//	r := portal.Router(portal.RouterOptions{
//	    Middleware: []func(http.Handler) http.Handler{requestid.Middleware, clientip.Middleware},
//	    Gate:       rbac.Gate(policy, sessions, log),
//	    Auth:       authSvc,
//	    Pages:      portal.NewPages(sessions, log),
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}
	if opts.Gate != nil {
		r.Use(opts.Gate)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, req)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		_ = handler.JSONError(handler.ErrMethodNotAllowed).Render(w, req)
	})

	if opts.Liveness != nil {
		r.Method(http.MethodGet, "/healthz", opts.Liveness)
	}
	if opts.Readiness != nil {
		r.Method(http.MethodGet, "/readyz", opts.Readiness)
	}
	if opts.Auth != nil {
		r.Mount("/api/auth", opts.Auth.Handle())
	}
	if opts.Pages != nil {
		opts.Pages.routes(r)
	}

	return r
}
