// Package pricing prices a cart by folding an ordered list of price rules
// over its contents.
//
// The engine itself holds no lock. Callers that share an Engine or its Cart
// between goroutines must serialise access.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var tracer = otel.Tracer("github.com/jcmexdev/storefront-pricing/internal/pricing")

// Engine combines a cart with the rules used to price it.
type Engine struct {
	cart  domain.Cart
	rules []domain.PriceRule
}

// NewEngine copies rules, so later changes to the caller's slice do not
// affect the engine.
func NewEngine(cart domain.Cart, rules []domain.PriceRule) *Engine {
	return &Engine{
		cart:  cart,
		rules: append([]domain.PriceRule(nil), rules...),
	}
}

// AddToCart appends item to the cart. Duplicates are kept as separate entries.
func (e *Engine) AddToCart(ctx context.Context, item domain.LineItem) error {
	if err := e.cart.Add(ctx, item); err != nil {
		return fmt.Errorf("pricing: add %q to cart: %w", item.Name(), err)
	}
	return nil
}

// Calculate returns the sum of every rule's charge.
func (e *Engine) Calculate(ctx context.Context) (decimal.Decimal, error) {
	charges, err := e.Breakdown(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total, nil
}

// Breakdown returns each rule's charge in configured order. Every rule is
// handed a fresh read of the full cart; with no rules the cart is not read.
func (e *Engine) Breakdown(ctx context.Context) ([]domain.Charge, error) {
	ctx, span := tracer.Start(ctx, "pricing.breakdown")
	defer span.End()
	span.SetAttributes(attribute.Int("pricing.rules", len(e.rules)))

	charges := make([]domain.Charge, 0, len(e.rules))
	for _, rule := range e.rules {
		items, err := e.cart.Items(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("pricing: read cart for rule %s: %w", rule.Name(), err)
		}
		charges = append(charges, domain.Charge{
			Rule:   rule.Name(),
			Amount: rule.Charge(items),
		})
	}
	return charges, nil
}
