package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSession covers every reason a cookie value does not yield a
	// usable session: bad encoding, failed authentication, expiry, unknown
	// envelope version or missing fields.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrIncompleteSession is returned by Create when required fields are missing.
	ErrIncompleteSession = errors.New("session.incomplete")

	// ErrSessionTooLarge is returned when the sealed value would not fit in a cookie.
	ErrSessionTooLarge = errors.New("session.too_large")
)

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", ErrIncompleteSession, field)
}
