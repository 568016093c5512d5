package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/sanitizer"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/svc/identity"
	"github.com/zenithfinancial/portal/svc/users"
)

const stateBytes = 32

type loginRequest struct {
	Provider string `query:"provider"`
}

type callbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
}

func newState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// login starts a sign-in attempt and sends the browser to the provider.
func (s *Service) login(ctx handler.Context, req loginRequest) handler.Response {
	provider, err := identity.ParseProvider(req.Provider)
	if err != nil {
		return handler.JSONError(ErrInvalidProvider)
	}

	state, err := newState()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate state", logger.Error(err))
		return handler.JSONError(ErrLoginFailed)
	}

	authURL, err := s.idp.AuthorizationURL(provider, state)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build authorization url",
			logger.Provider(provider.String()),
			logger.Error(err),
		)
		return handler.JSONError(ErrLoginFailed)
	}

	if err := s.cookies.SetEncrypted(ctx.ResponseWriter(), StateCookieName, []byte(state), cookie.WithTTL(s.cfg.StateTTL)); err != nil {
		s.logger.ErrorContext(ctx, "failed to store state", logger.Error(err))
		return handler.JSONError(ErrLoginFailed)
	}

	s.logger.DebugContext(ctx, "login started", logger.Provider(provider.String()))
	return handler.Redirect(authURL)
}

// callback completes a sign-in attempt. Every failure ends on the login page
// with a reason code and never creates a session.
func (s *Service) callback(ctx handler.Context, req callbackRequest) handler.Response {
	w := ctx.ResponseWriter()

	fail := func(reason string, err error) handler.Response {
		s.clearState(w)
		s.logger.WarnContext(ctx, "login failed", logger.Reason(reason), logger.Error(err))
		return handler.Redirect(s.loginURL(reason))
	}

	if req.Code == "" {
		return fail(ReasonNoCode, nil)
	}

	if s.cfg.VerifyState {
		stored, err := s.cookies.GetEncrypted(ctx.Request(), StateCookieName)
		if err != nil {
			return fail(ReasonInvalidState, err)
		}
		if req.State == "" || subtle.ConstantTimeCompare(stored, []byte(req.State)) != 1 {
			return fail(ReasonInvalidState, nil)
		}
	}

	res, err := s.idp.Exchange(ctx, req.Code)
	if err != nil {
		return fail(ReasonAuthenticationFailed, err)
	}

	user, err := s.resolveUser(ctx, res.User)
	if err != nil {
		return fail(ReasonAuthenticationFailed, err)
	}

	err = s.sessions.Create(w, session.Session{
		IdentityProviderUserID: res.User.ID,
		Email:                  user.Email,
		FullName:               user.FullName,
		Role:                   user.Role,
		LocalUserID:            user.ID,
		AccessToken:            res.AccessToken,
		RefreshToken:           res.RefreshToken,
	})
	if err != nil {
		return fail(ReasonAuthenticationFailed, err)
	}

	s.touchLastLogin(ctx, user.ID)
	s.clearState(w)

	s.logger.InfoContext(ctx, "login succeeded",
		logger.UserID(user.ID),
		logger.Role(user.Role.String()),
		logger.Email(sanitizer.MaskEmail(user.Email)),
	)
	return handler.Redirect(user.Role.DashboardPath())
}

// resolveUser finds the local user for a provider identity, creating a client
// account on first login.
func (s *Service) resolveUser(ctx handler.Context, pu identity.User) (users.User, error) {
	email := sanitizer.NormalizeEmail(pu.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return users.User{}, err
	}

	user, created, err := s.users.CreateUser(ctx, users.NewUser{
		Email:         email,
		FullName:      sanitizer.FullName(pu.FirstName, pu.LastName, email),
		Role:          rbac.RoleClient,
		EmailVerified: pu.EmailVerified,
	})
	if err != nil {
		return users.User{}, err
	}
	if created {
		s.logger.InfoContext(ctx, "user provisioned", logger.UserID(user.ID), logger.Event("user_created"))
	}
	return user, nil
}

// touchLastLogin records the login time. A failure is logged and does not
// undo the login.
func (s *Service) touchLastLogin(ctx handler.Context, id int64) {
	if err := s.users.TouchLastLogin(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login", logger.UserID(id), logger.Error(err))
	}
}
