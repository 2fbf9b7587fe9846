package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout creates middleware that bounds each request with a deadline,
// so persistent-store calls cannot hang. Handlers classify the resulting
// context.DeadlineExceeded as a transient 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
