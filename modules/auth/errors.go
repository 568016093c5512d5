package auth

import (
	"net/http"

	"github.com/zenithfinancial/portal/handler"
)

// Reasons appended to the login page as ?error= when a callback fails.
const (
	ReasonNoCode               = "no_code"
	ReasonInvalidState         = "invalid_state"
	ReasonAuthenticationFailed = "authentication_failed"
)

var (
	ErrInvalidProvider = handler.NewHTTPError(http.StatusBadRequest, "invalid_provider")
	ErrLoginFailed     = handler.NewHTTPError(http.StatusInternalServerError, "login_failed")
	ErrEmailRequired   = handler.NewHTTPError(http.StatusBadRequest, "email_required")
	ErrUserNotFound    = handler.NewHTTPError(http.StatusNotFound, "user_not_found")
	ErrDevLoginOff     = handler.NewHTTPError(http.StatusForbidden, "dev_login_disabled")
	ErrNotLoggedIn     = handler.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrRefreshFailed   = handler.NewHTTPError(http.StatusUnauthorized, "refresh_failed")
)
