package rules

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var (
	deliverySmall  = decimal.RequireFromString("5.0")
	deliveryMedium = decimal.RequireFromString("12.5")
	deliveryLarge  = decimal.RequireFromString("20.0")
)

// DeliveryPrice is a step function of the total number of units in the cart.
type DeliveryPrice struct{}

func (DeliveryPrice) Name() string { return NameDeliveryPrice }

func (DeliveryPrice) Charge(items []domain.LineItem) decimal.Decimal {
	units := 0
	for _, it := range items {
		units += it.Quantity()
	}

	switch {
	case units == 0:
		return decimal.Zero
	case units <= 3:
		return deliverySmall
	case units <= 10:
		return deliveryMedium
	default:
		return deliveryLarge
	}
}
