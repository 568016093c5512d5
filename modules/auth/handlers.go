package auth

import (
	"errors"
	"net/http"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/svc/users"
)

type successResponse struct {
	Success bool `json:"success"`
}

type meResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *session.Profile `json:"user,omitempty"`
}

type refreshResponse struct {
	Success bool            `json:"success"`
	User    session.Profile `json:"user"`
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	s.sessions.Destroy(ctx.ResponseWriter())
	return handler.JSON(successResponse{Success: true})
}

func (s *Service) logoutRedirect(ctx handler.Context, _ struct{}) handler.Response {
	s.sessions.Destroy(ctx.ResponseWriter())
	return handler.Redirect(s.loginURL(""))
}

// me reports the current session without its provider tokens.
func (s *Service) me(ctx handler.Context, _ struct{}) handler.Response {
	sess, ok := s.sessions.Read(ctx.Request())
	if !ok {
		return handler.JSON(meResponse{Authenticated: false}, handler.WithJSONStatus(http.StatusUnauthorized))
	}
	profile := sess.Profile()
	return handler.JSON(meResponse{Authenticated: true, User: &profile})
}

// refresh renews the provider tokens and re-reads the user's role and name,
// so role changes made by an admin take effect without a new login.
func (s *Service) refresh(ctx handler.Context, _ struct{}) handler.Response {
	w := ctx.ResponseWriter()

	sess, ok := s.sessions.Read(ctx.Request())
	if !ok {
		return handler.JSONError(ErrNotLoggedIn)
	}

	drop := func(err error) handler.Response {
		s.sessions.Destroy(w)
		s.logger.WarnContext(ctx, "session refresh failed", logger.UserID(sess.LocalUserID), logger.Error(err))
		return handler.JSONError(ErrRefreshFailed)
	}

	tokens, err := s.idp.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return drop(err)
	}

	// A user deleted at the provider keeps a valid refresh token until it expires.
	if _, err := s.idp.GetUser(ctx, sess.IdentityProviderUserID); err != nil {
		return drop(err)
	}

	user, err := s.users.GetUserByID(ctx, sess.LocalUserID)
	if errors.Is(err, users.ErrUserNotFound) {
		return drop(err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "user reload failed", logger.UserID(sess.LocalUserID), logger.Error(err))
		return handler.JSONError(err)
	}

	next := session.Session{
		IdentityProviderUserID: sess.IdentityProviderUserID,
		Email:                  user.Email,
		FullName:               user.FullName,
		Role:                   user.Role,
		LocalUserID:            user.ID,
		AccessToken:            tokens.AccessToken,
		RefreshToken:           tokens.RefreshToken,
	}
	if err := s.sessions.Create(w, next); err != nil {
		return drop(err)
	}
	next.IsLoggedIn = true

	return handler.JSON(refreshResponse{Success: true, User: next.Profile()})
}
