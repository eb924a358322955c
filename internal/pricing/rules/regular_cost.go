package rules

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

// RegularCost charges quantity × unit price for every item.
type RegularCost struct{}

func (RegularCost) Name() string { return NameRegularCost }

func (RegularCost) Charge(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}
