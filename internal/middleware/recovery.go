// file: internal/middleware/recovery.go
package middleware

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/contextutils"

	"go.uber.org/zap"
)

// Recovery turns panics into 500 responses instead of dropped connections.
func Recovery(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("panic", err),
						zap.String("request_id", contextutils.GetRequestID(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]interface{}{
						"statusCode": http.StatusInternalServerError,
						"message":    "internal server error",
						"success":    false,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
