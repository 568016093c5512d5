package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/logger"
)

// Check is a named readiness dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type probeBody struct {
	Status string   `json:"status"`
	Failed []string `json:"failed,omitempty"`
}

// Liveness answers 200 {"status":"alive"} while the process serves requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSON(probeBody{Status: "alive"}).Render(w, r)
	}
}

// Readiness runs every check with timeout and answers 200 {"status":"ready"}
// or 503 with the names of the failing checks.
func Readiness(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	log = logger.OrDiscard(log)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var failed []string
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", slog.String("check", c.Name), logger.Error(err))
				failed = append(failed, c.Name)
			}
		}

		if len(failed) > 0 {
			_ = handler.JSON(probeBody{Status: "not_ready", Failed: failed},
				handler.WithJSONStatus(http.StatusServiceUnavailable)).Render(w, r)
			return
		}
		_ = handler.JSON(probeBody{Status: "ready"}).Render(w, r)
	}
}
