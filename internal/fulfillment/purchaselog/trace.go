package purchaselog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/pkg/reqctx"
)

// TraceInfo holds the OTel identifiers found in a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo returns the active span's ids, or empty strings when ctx
// carries no valid span.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewRecord builds a record for a purchase of quantity copies of book.
func NewRecord(ctx context.Context, book domain.Book, quantity int) *Record {
	ti := ExtractTraceInfo(ctx)
	return &Record{
		ID:        uuid.NewString(),
		ISBN:      book.ISBN,
		Quantity:  quantity,
		UnitPrice: book.Price,
		RequestID: reqctx.RequestID(ctx),
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		CreatedAt: time.Now().UTC(),
	}
}
