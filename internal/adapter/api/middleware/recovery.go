package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/V4T54L/zid-tiktok-bridge/internal/adapter/api/handler"
)

// Recover turns a panic in next into a 500 {"ok":false,"error":...}
// response. Headers already set on w, such as CORS, are kept.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("recovered from panic", "panic", rec, "method", r.Method, "path", r.URL.Path)

				handler.WriteError(w, http.StatusInternalServerError, fmt.Sprint(rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
