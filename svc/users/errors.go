package users

import "errors"

var (
	ErrUserNotFound = errors.New("users.not_found")
	ErrInvalidInput = errors.New("users.invalid_input")
	// ErrStore wraps every other database failure.
	ErrStore = errors.New("users.store_failed")
)
