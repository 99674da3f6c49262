package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds each request; a handler that overruns answers 503 with
// the standard error envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(
				next,
				timeout,
				`{"error":"request timeout"}`,
			)

			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
