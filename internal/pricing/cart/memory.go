// Package cart provides Cart implementations for the pricing engine.
package cart

import (
	"context"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var _ domain.Cart = (*Memory)(nil)

// Memory is an append-only, in-process cart. It is not safe for concurrent use.
type Memory struct {
	items []domain.LineItem
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Add(_ context.Context, item domain.LineItem) error {
	m.items = append(m.items, item)
	return nil
}

// Items returns a copy so callers cannot reorder the cart.
func (m *Memory) Items(_ context.Context) ([]domain.LineItem, error) {
	return append([]domain.LineItem(nil), m.items...), nil
}

func (m *Memory) NumberOfItems(_ context.Context) (int, error) {
	return len(m.items), nil
}
