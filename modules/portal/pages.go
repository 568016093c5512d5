package portal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zenithfinancial/portal/binder"
	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/svc/identity"
)

// maxReasonLen bounds the echoed ?error= value.
const maxReasonLen = 64

var ErrNoSession = handler.NewHTTPError(http.StatusUnauthorized, "unauthorized")

// Pages serves the portal's placeholder pages. Rendering the real UI is the
// frontend's job; these endpoints only report what the page would show.
type Pages struct {
	sessions     *session.Manager
	loginStart   string
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewPages returns the landing, login and dashboard pages.
func NewPages(sessions *session.Manager, log *slog.Logger) *Pages {
	log = logger.OrDiscard(log).With(logger.Component("portal"))
	return &Pages{
		sessions:     sessions,
		loginStart:   "/api/auth/login",
		logger:       log,
		errorHandler: handler.NewErrorHandler(log),
	}
}

type loginQuery struct {
	Error string `query:"error"`
}

type loginOption struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type loginPage struct {
	Page    string        `json:"page"`
	Error   string        `json:"error,omitempty"`
	Options []loginOption `json:"options"`
}

type dashboardPage struct {
	Dashboard rbac.Role       `json:"dashboard"`
	User      session.Profile `json:"user"`
}

func (p *Pages) root(ctx handler.Context, _ struct{}) handler.Response {
	if s, ok := p.sessions.Read(ctx.Request()); ok {
		return handler.Redirect(s.Role.DashboardPath())
	}
	return handler.Redirect("/login")
}

// login describes the sign-in choices. A visitor who already holds a session
// is sent to their dashboard.
func (p *Pages) login(ctx handler.Context, q loginQuery) handler.Response {
	if s, ok := p.sessions.Read(ctx.Request()); ok {
		return handler.Redirect(s.Role.DashboardPath())
	}

	providers := []identity.Provider{
		identity.ProviderPassword,
		identity.ProviderMagicLink,
		identity.ProviderGoogle,
		identity.ProviderMicrosoft,
	}
	options := make([]loginOption, 0, len(providers))
	for _, pr := range providers {
		options = append(options, loginOption{
			Provider: pr.String(),
			URL:      p.loginStart + "?provider=" + pr.String(),
		})
	}

	return handler.JSON(loginPage{
		Page:    "login",
		Error:   reasonCode(q.Error),
		Options: options,
	})
}

// dashboard serves role's placeholder page. Who may see it is the gate's
// decision; without a session in the context the gate is not in front.
func (p *Pages) dashboard(role rbac.Role) handler.HandlerFunc[handler.Context, struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		s, ok := session.FromContext(ctx)
		if !ok {
			p.logger.WarnContext(ctx, "dashboard reached without a session", slog.String("dashboard", role.String()))
			return handler.JSONError(ErrNoSession)
		}
		return handler.JSON(dashboardPage{Dashboard: role, User: s.Profile()})
	}
}

func (p *Pages) routes(r chi.Router) {
	r.Get("/", handler.Wrap(p.root,
		handler.WithErrorHandler[handler.Context, struct{}](p.errorHandler),
	))
	r.Get("/login", handler.Wrap(p.login,
		handler.WithBinders[handler.Context, loginQuery](binder.BindQuery()),
		handler.WithErrorHandler[handler.Context, loginQuery](p.errorHandler),
	))
	for _, role := range []rbac.Role{rbac.RoleAdmin, rbac.RoleAdvisor, rbac.RoleClient} {
		r.Get(role.DashboardPath(), handler.Wrap(p.dashboard(role),
			handler.WithErrorHandler[handler.Context, struct{}](p.errorHandler),
		))
	}
}

// reasonCode passes through short snake_case codes and drops anything else.
func reasonCode(s string) string {
	if s == "" || len(s) > maxReasonLen {
		return ""
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && c != '_' {
			return ""
		}
	}
	return s
}
