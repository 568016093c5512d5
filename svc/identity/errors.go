package identity

import "errors"

var (
	ErrInvalidProvider      = errors.New("identity.invalid_provider")
	ErrInvalidConfig        = errors.New("identity.invalid_config")
	ErrAuthenticationFailed = errors.New("identity.authentication_failed")
	ErrRefreshFailed        = errors.New("identity.refresh_failed")
	ErrUserLookupFailed     = errors.New("identity.user_lookup_failed")
)
