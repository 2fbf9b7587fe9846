package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/notablyhq/notably/internal/httputil"
)

// Recover creates middleware that converts panics into 500 responses.
// The panic value and stack stay in the server log; the response body
// carries no internal detail.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					httputil.Error(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
