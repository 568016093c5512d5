package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/pkg/clientip"
	"github.com/zenithfinancial/portal/pkg/logger"
)

var ErrTooManyRequests = handler.NewHTTPError(http.StatusTooManyRequests, "too_many_requests")

// KeyFunc extracts the caller key from a request. An empty key skips limiting.
type KeyFunc func(r *http.Request) string

// ByClientIP keys on the address resolved by clientip.Middleware, falling
// back to resolving it from the request.
func ByClientIP(r *http.Request) string {
	if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}

// Middleware throttles requests per key. Denied requests get 429 with the
// JSON error body and a Retry-After header. A limiter failure lets the
// request through.
func Middleware(b *Bucket, key KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	log = logger.OrDiscard(log).With(logger.Component("ratelimiter"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := b.Allow(r.Context(), k)
			if err != nil {
				log.WarnContext(r.Context(), "rate limit check failed", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				secs := int((res.RetryAfter(b.store.now()) + time.Second - 1) / time.Second)
				h.Set("Retry-After", strconv.Itoa(max(1, secs)))
				log.InfoContext(r.Context(), "request throttled", slog.String("path", r.URL.Path))
				_ = handler.JSONError(ErrTooManyRequests).Render(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
