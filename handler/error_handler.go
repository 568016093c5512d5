package handler

import (
	"log/slog"
	"net/http"

	"github.com/zenithfinancial/portal/pkg/logger"
)

// NewErrorHandler returns the error handler used by every JSON endpoint.
// Client errors are logged at warn level, everything else at error level,
// and the response is rendered with JSONError.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	log = logger.OrDiscard(log).With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := StatusOf(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
