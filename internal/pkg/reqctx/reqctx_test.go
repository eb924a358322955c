package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithIdempotencyKey(ctx, "idem-1")

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "idem-1", IdempotencyKey(ctx))
}
