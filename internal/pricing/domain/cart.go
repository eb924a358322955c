package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrCartNotFound = errors.New("cart not found")

// Cart is the storage port the pricing engine reads from and appends to.
// Items must come back in insertion order.
type Cart interface {
	Add(ctx context.Context, item LineItem) error
	Items(ctx context.Context) ([]LineItem, error)
	NumberOfItems(ctx context.Context) (int, error)
}

// PriceRule computes one component of a cart's price from the full cart
// contents. Rules never see each other's output.
type PriceRule interface {
	Name() string
	Charge(items []LineItem) decimal.Decimal
}

// Charge is the amount a single rule contributed to a total.
type Charge struct {
	Rule   string
	Amount decimal.Decimal
}
