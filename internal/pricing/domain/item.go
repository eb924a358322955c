package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("unit price cannot be negative")
	ErrEmptyName       = errors.New("item name is required")
	ErrUnknownCategory = errors.New("unknown item category")
)

// Category classifies a line item for pricing rules that care about it.
type Category int

const (
	CategoryStandard Category = iota
	CategoryElectronic
)

func (c Category) String() string {
	switch c {
	case CategoryElectronic:
		return "ELECTRONIC"
	default:
		return "STANDARD"
	}
}

// ParseCategory accepts the text form produced by String. "OTHER" is kept
// as an alias of STANDARD for carts written by older clients.
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STANDARD", "OTHER":
		return CategoryStandard, nil
	case "ELECTRONIC":
		return CategoryElectronic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// LineItem is a single cart entry. It is immutable once built.
type LineItem struct {
	category  Category
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewLineItem validates and builds a LineItem.
func NewLineItem(category Category, name string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if name == "" {
		return LineItem{}, ErrEmptyName
	}
	if quantity <= 0 {
		return LineItem{}, fmt.Errorf("%w: got %d for %q", ErrInvalidQuantity, quantity, name)
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: got %s for %q", ErrInvalidPrice, unitPrice, name)
	}
	return LineItem{
		category:  category,
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i LineItem) Category() Category         { return i.category }
func (i LineItem) Name() string               { return i.name }
func (i LineItem) Quantity() int              { return i.quantity }
func (i LineItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// Subtotal is quantity × unit price.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
