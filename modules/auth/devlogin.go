package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/environment"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/svc/users"
)

const (
	devAccessToken  = "dev_token"
	devRefreshToken = "dev_refresh_token"
)

type devLoginRequest struct {
	Email string `json:"email"`
}

type devLoginUser struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     rbac.Role `json:"role"`
}

type devLoginResponse struct {
	Success     bool         `json:"success"`
	User        devLoginUser `json:"user"`
	RedirectURL string       `json:"redirectUrl"`
}

// productionGuard refuses the route in production before the request body is
// read, so no input can produce anything but 403 there.
func productionGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if environment.IsProduction(r.Context()) {
			_ = handler.JSONError(ErrDevLoginOff).Render(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// devLogin signs in as an existing user without the identity provider.
func (s *Service) devLogin(ctx handler.Context, req devLoginRequest) handler.Response {
	if environment.IsProduction(ctx) {
		return handler.JSONError(ErrDevLoginOff)
	}
	if req.Email == "" {
		return handler.JSONError(ErrEmailRequired)
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	switch {
	case errors.Is(err, users.ErrUserNotFound), errors.Is(err, users.ErrInvalidInput):
		return handler.JSONError(ErrUserNotFound)
	case err != nil:
		s.logger.ErrorContext(ctx, "dev login lookup failed", logger.Error(err))
		return handler.JSONError(err)
	}

	err = s.sessions.Create(ctx.ResponseWriter(), session.Session{
		IdentityProviderUserID: fmt.Sprintf("dev_%d", user.ID),
		Email:                  user.Email,
		FullName:               user.FullName,
		Role:                   user.Role,
		LocalUserID:            user.ID,
		AccessToken:            devAccessToken,
		RefreshToken:           devRefreshToken,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "dev login session rejected", logger.UserID(user.ID), logger.Error(err))
		return handler.JSONError(err)
	}

	s.touchLastLogin(ctx, user.ID)
	s.logger.InfoContext(ctx, "dev login", logger.UserID(user.ID), logger.Role(user.Role.String()))

	return handler.JSON(devLoginResponse{
		Success: true,
		User: devLoginUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
		RedirectURL: user.Role.DashboardPath(),
	})
}
