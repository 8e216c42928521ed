package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/doru1011/swa06/utils"
)

// PanicRecoveryMiddleware turns handler panics into a 500 response instead of
// killing the worker.
func PanicRecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
