// file: internal/middleware/request_id.go
package middleware

import (
	"net/http"

	"vidtube/internal/contextutils"

	"github.com/gofrs/uuid"
)

// RequestID attaches a correlation ID to every request. An incoming
// X-Request-ID header is honored so IDs survive proxy hops.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				if id, err := uuid.NewV4(); err == nil {
					requestID = id.String()
				}
			}

			ctx := contextutils.WithRequestID(r.Context(), requestID)
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
