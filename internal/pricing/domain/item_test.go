package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	it, err := NewLineItem(CategoryElectronic, "Laptop", 2, decimal.RequireFromString("1200.50"))
	require.NoError(t, err)

	assert.Equal(t, CategoryElectronic, it.Category())
	assert.Equal(t, "Laptop", it.Name())
	assert.Equal(t, 2, it.Quantity())
	assert.True(t, decimal.RequireFromString("2401").Equal(it.Subtotal()))
}

func TestNewLineItem_RejectsInvalidValues(t *testing.T) {
	_, err := NewLineItem(CategoryStandard, "Pen", 0, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem(CategoryStandard, "Pen", -3, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem(CategoryStandard, "Pen", 1, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewLineItem(CategoryStandard, "", 1, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewLineItem_AllowsFreeItems(t *testing.T) {
	_, err := NewLineItem(CategoryStandard, "Sticker", 1, decimal.Zero)
	assert.NoError(t, err)
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"STANDARD":   CategoryStandard,
		"other":      CategoryStandard,
		"Electronic": CategoryElectronic,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("FOOD")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Equal(t, "ELECTRONIC", CategoryElectronic.String())
	assert.Equal(t, "STANDARD", CategoryStandard.String())
}
