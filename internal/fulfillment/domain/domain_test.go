package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_EqualityByISBN(t *testing.T) {
	book := Book{ISBN: "123-456", Price: decimal.NewFromInt(25), Quantity: 5}

	assert.True(t, book.Equal(book))
	assert.True(t, book.Equal(Book{ISBN: "123-456", Price: decimal.NewFromInt(99), Quantity: 99}))
	assert.False(t, book.Equal(Book{ISBN: "999-999", Price: decimal.NewFromInt(25), Quantity: 5}))
	assert.False(t, book.Equal(Book{}))
}

func TestNewBook_Validation(t *testing.T) {
	_, err := NewBook("", decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, ErrEmptyISBN)

	_, err = NewBook("111", decimal.NewFromInt(-1), 1)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewBook("111", decimal.NewFromInt(1), -1)
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	b, err := NewBook("111", decimal.Zero, 0)
	require.NoError(t, err)
	assert.Equal(t, "111", b.Key())
}

func TestOrder_KeepsFirstPositionOnOverwrite(t *testing.T) {
	o := NewOrder()
	require.NoError(t, o.Set("b", 1))
	require.NoError(t, o.Set("a", 2))
	require.NoError(t, o.Set("b", 7))

	assert.Equal(t, 2, o.Len())
	assert.Equal(t, []OrderLine{{ISBN: "b", Quantity: 7}, {ISBN: "a", Quantity: 2}}, o.Lines())
}

func TestOrder_RejectsInvalidLines(t *testing.T) {
	o := NewOrder()
	assert.ErrorIs(t, o.Set("", 1), ErrEmptyISBN)
	assert.ErrorIs(t, o.Set("a", -1), ErrNegativeQuantity)
	assert.NoError(t, o.Set("a", 0))
	assert.Equal(t, 1, o.Len())
}

func TestPurchaseSummary_MissingMatchesByISBN(t *testing.T) {
	book := Book{ISBN: "123-456", Price: decimal.NewFromInt(25), Quantity: 5}
	s := NewPurchaseSummary(decimal.NewFromInt(125), []Shortfall{{Book: book, Missing: 5}})

	missing, ok := s.Missing(Book{ISBN: "123-456"})
	require.True(t, ok)
	assert.Equal(t, 5, missing)

	_, ok = s.Missing(Book{ISBN: "000"})
	assert.False(t, ok)
	assert.True(t, s.HasShortfalls())
	assert.Len(t, s.Unavailable(), 1)
}

func TestPurchaseSummary_Empty(t *testing.T) {
	s := NewPurchaseSummary(decimal.Zero, nil)
	assert.True(t, s.TotalPrice().IsZero())
	assert.False(t, s.HasShortfalls())
	assert.Empty(t, s.Unavailable())
}
