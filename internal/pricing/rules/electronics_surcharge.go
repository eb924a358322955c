package rules

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var electronicsFee = decimal.RequireFromString("7.5")

// ElectronicsSurcharge adds a flat handling fee once per cart when any
// electronic item is present, whatever its quantity.
type ElectronicsSurcharge struct{}

func (ElectronicsSurcharge) Name() string { return NameElectronicsSurcharge }

func (ElectronicsSurcharge) Charge(items []domain.LineItem) decimal.Decimal {
	for _, it := range items {
		if it.Category() == domain.CategoryElectronic {
			return electronicsFee
		}
	}
	return decimal.Zero
}
