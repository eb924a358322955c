// Package rules holds the price rules a storefront can combine. Each rule
// reads the whole cart and returns its own charge.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var ErrUnknownRule = errors.New("unknown price rule")

const (
	NameRegularCost          = "regular"
	NameDeliveryPrice        = "delivery"
	NameElectronicsSurcharge = "electronics"
)

var registry = map[string]func() domain.PriceRule{
	NameRegularCost:          func() domain.PriceRule { return RegularCost{} },
	NameDeliveryPrice:        func() domain.PriceRule { return DeliveryPrice{} },
	NameElectronicsSurcharge: func() domain.PriceRule { return ElectronicsSurcharge{} },
}

// Default returns every rule in the order the storefront applies them.
func Default() []domain.PriceRule {
	return []domain.PriceRule{RegularCost{}, DeliveryPrice{}, ElectronicsSurcharge{}}
}

// ByName builds a rule list in the order the names are given.
func ByName(names ...string) ([]domain.PriceRule, error) {
	out := make([]domain.PriceRule, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		build, ok := registry[n]
		if !ok {
			return nil, fmt.Errorf("rules: %w: %q", ErrUnknownRule, n)
		}
		out = append(out, build())
	}
	return out, nil
}
