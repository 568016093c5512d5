package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to skip a binder that has
	// nothing to read from the request.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidQuery         = errors.New("invalid query parameter")
)
