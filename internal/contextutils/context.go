package contextutils

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorIDKey   contextKey = "actor_id"
)

// GetRequestID retrieves the request correlation ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRequestID adds the request correlation ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetActorID retrieves the authenticated actor ID from the context, or 0 when
// the request is anonymous.
func GetActorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorIDKey).(int64); ok {
		return id
	}
	return 0
}

// WithActorID adds the authenticated actor ID to the context.
func WithActorID(ctx context.Context, actorID int64) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}
