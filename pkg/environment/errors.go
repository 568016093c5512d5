package environment

import "errors"

// ErrUnknownEnvironment is returned when APP_ENV names no known environment.
var ErrUnknownEnvironment = errors.New("environment.unknown")
