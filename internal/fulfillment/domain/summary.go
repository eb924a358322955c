package domain

import "github.com/shopspring/decimal"

// Shortfall is the part of a request that stock could not cover.
type Shortfall struct {
	Book    Book
	Missing int
}

// PurchaseSummary is the result of pricing an order against stock.
type PurchaseSummary struct {
	totalPrice decimal.Decimal
	shortfalls []Shortfall
	byISBN     map[string]int
}

// NewPurchaseSummary builds a summary. Later shortfalls for a book already
// present replace the earlier one.
func NewPurchaseSummary(total decimal.Decimal, shortfalls []Shortfall) *PurchaseSummary {
	s := &PurchaseSummary{
		totalPrice: total,
		byISBN:     make(map[string]int, len(shortfalls)),
	}
	for _, sf := range shortfalls {
		if i, ok := s.byISBN[sf.Book.Key()]; ok {
			s.shortfalls[i] = sf
			continue
		}
		s.byISBN[sf.Book.Key()] = len(s.shortfalls)
		s.shortfalls = append(s.shortfalls, sf)
	}
	return s
}

func (s *PurchaseSummary) TotalPrice() decimal.Decimal { return s.totalPrice }

// Unavailable returns the shortfalls in processing order.
func (s *PurchaseSummary) Unavailable() []Shortfall {
	return append([]Shortfall(nil), s.shortfalls...)
}

// Missing reports the unmet quantity for book, matched by ISBN.
func (s *PurchaseSummary) Missing(book Book) (int, bool) {
	i, ok := s.byISBN[book.Key()]
	if !ok {
		return 0, false
	}
	return s.shortfalls[i].Missing, true
}

func (s *PurchaseSummary) HasShortfalls() bool { return len(s.shortfalls) > 0 }
