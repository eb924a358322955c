// Package reqctx carries per-request identifiers through a context.Context.
package reqctx

import "context"

// contextKey is unexported so keys from other packages cannot collide.
type contextKey string

const (
	HeaderXRequestID      = "X-Request-Id"
	HeaderXIdempotencyKey = "X-Idempotency-Key"

	requestIDKey      contextKey = "request_id"
	idempotencyKeyKey contextKey = "idempotency_key"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns "" when no id was attached.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyKey, key)
}

func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(idempotencyKeyKey).(string)
	return key
}
