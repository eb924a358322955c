// Package purchaselog records every purchase handed to the storefront's
// BuyBookProcess.
//
// The log is append-only. Each row is one BuyBook call, tagged with the
// request and trace that produced it so a purchase can be followed back to
// the HTTP request and the distributed trace.
package purchaselog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single row in the purchases table.
type Record struct {
	// ID is a random UUID assigned when the record is built.
	ID string

	ISBN      string
	Quantity  int
	UnitPrice decimal.Decimal

	// RequestID is the X-Request-Id of the originating request, if any.
	RequestID string

	TraceID string
	SpanID  string

	CreatedAt time.Time
}

// Total is what the purchase charged.
func (r *Record) Total() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Repository persists purchase records. Save always appends.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
}
