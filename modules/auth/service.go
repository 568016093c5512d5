package auth

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zenithfinancial/portal/binder"
	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/session"
)

// Service serves the /api/auth endpoints: login initiation, the provider
// callback, logout, whoami, token refresh and the development login.
type Service struct {
	cfg          Config
	users        UserStore
	idp          IdentityProvider
	sessions     *session.Manager
	cookies      *cookie.Manager
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
	throttle     func(http.Handler) http.Handler
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.OrDiscard(l)
	}
}

// WithErrorHandler replaces the default JSON error handler for bind failures.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

// WithThrottle guards the endpoints that start or renew a login with mw,
// typically a per-IP rate limiter.
func WithThrottle(mw func(http.Handler) http.Handler) Option {
	return func(s *Service) {
		s.throttle = mw
	}
}

// NewService creates the auth service. cookies seals the short-lived state
// cookie; sessions owns the session cookie.
func NewService(
	cfg Config,
	users UserStore,
	idp IdentityProvider,
	sessions *session.Manager,
	cookies *cookie.Manager,
	opts ...Option,
) *Service {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultConfig().LoginPath
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = DefaultConfig().StateTTL
	}

	s := &Service{
		cfg:      cfg,
		users:    users,
		idp:      idp,
		sessions: sessions,
		cookies:  cookies,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s
}

// Handle returns the router to mount under /api/auth.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if s.throttle != nil {
			r.Use(s.throttle)
		}
		r.Get("/login", handler.Wrap(s.login,
			handler.WithBinders[handler.Context, loginRequest](binder.BindQuery()),
			handler.WithErrorHandler[handler.Context, loginRequest](s.errorHandler),
		))
		r.Get("/callback", handler.Wrap(s.callback,
			handler.WithBinders[handler.Context, callbackRequest](binder.BindQuery()),
			handler.WithErrorHandler[handler.Context, callbackRequest](s.errorHandler),
		))
		r.Post("/refresh", handler.Wrap(s.refresh,
			handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
		))
		r.With(productionGuard).Post("/dev-login", handler.Wrap(s.devLogin,
			handler.WithBinders[handler.Context, devLoginRequest](binder.BindJSON()),
			handler.WithErrorHandler[handler.Context, devLoginRequest](s.errorHandler),
		))
	})

	r.Post("/logout", handler.Wrap(s.logout,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/logout", handler.Wrap(s.logoutRedirect,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/me", handler.Wrap(s.me,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	return r
}

// loginURL returns the login page, absolute when AppURL is configured,
// carrying reason as the error query parameter when set.
func (s *Service) loginURL(reason string) string {
	target := s.cfg.LoginPath
	if reason != "" {
		target += "?" + url.Values{"error": {reason}}.Encode()
	}
	if base := strings.TrimRight(s.cfg.AppURL, "/"); base != "" {
		return base + target
	}
	return target
}

func (s *Service) clearState(w http.ResponseWriter) {
	s.cookies.Delete(w, StateCookieName)
}
