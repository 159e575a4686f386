// file: internal/middleware/auth.go
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vidtube/internal/contextutils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthMiddleware verifies bearer tokens issued by the identity service and
// places the actor ID on the request context.
type AuthMiddleware struct {
	secret []byte
	logger *zap.Logger
}

// NewAuthMiddleware creates token-verification middleware.
func NewAuthMiddleware(jwtSecret string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(jwtSecret), logger: logger}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID, err := m.authenticate(r)
		if err != nil {
			m.logger.Debug("Authentication failed",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(contextutils.WithActorID(r.Context(), actorID)))
	})
}

// OptionalAuth resolves the actor when a valid token is present but lets
// anonymous requests through. Invalid tokens are treated as anonymous rather
// than rejected, so stale clients can still browse public content.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorID, err := m.authenticate(r); err == nil {
			r = r.WithContext(contextutils.WithActorID(r.Context(), actorID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (int64, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return 0, fmt.Errorf("missing authorization header")
	}
	rawToken, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0, fmt.Errorf("malformed authorization header")
	}

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("unexpected claims type")
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return 0, fmt.Errorf("token has no subject")
	}
	actorID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || actorID <= 0 {
		return 0, fmt.Errorf("invalid subject %q", subject)
	}
	return actorID, nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"statusCode": http.StatusUnauthorized,
		"message":    "authentication required",
		"success":    false,
	})
}
