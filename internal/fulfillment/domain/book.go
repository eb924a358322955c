package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrEmptyISBN        = errors.New("isbn is required")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// Book is a stock record. Two books are the same book when their ISBNs match,
// whatever their price or stock level.
type Book struct {
	ISBN     string
	Price    decimal.Decimal
	Quantity int
}

// NewBook validates and builds a Book.
func NewBook(isbn string, price decimal.Decimal, quantity int) (Book, error) {
	if isbn == "" {
		return Book{}, ErrEmptyISBN
	}
	if price.IsNegative() {
		return Book{}, fmt.Errorf("%w: book %s priced %s", ErrNegativePrice, isbn, price)
	}
	if quantity < 0 {
		return Book{}, fmt.Errorf("%w: book %s has %d in stock", ErrNegativeQuantity, isbn, quantity)
	}
	return Book{ISBN: isbn, Price: price, Quantity: quantity}, nil
}

// Key is the identity used wherever books are looked up or grouped.
func (b Book) Key() string { return b.ISBN }

func (b Book) Equal(other Book) bool { return b.ISBN == other.ISBN }
