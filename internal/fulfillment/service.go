// Package fulfillment prices a book order against available stock and
// hands each fulfilled quantity to a purchase process.
package fulfillment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/ports"
)

var tracer = otel.Tracer("github.com/jcmexdev/storefront-pricing/internal/fulfillment")

// Service holds the two collaborators of an order run.
type Service struct {
	books    ports.BookDatabase
	purchase ports.BuyBookProcess
}

func NewService(books ports.BookDatabase, purchase ports.BuyBookProcess) *Service {
	return &Service{books: books, purchase: purchase}
}

// PriceForCart fulfils order as far as stock allows.
//
// A nil order returns a nil summary without touching either collaborator.
// Every ISBN is resolved before anything is bought: if any lookup fails the
// whole order is rejected and BuyBook is never called.
func (s *Service) PriceForCart(ctx context.Context, order *domain.Order) (*domain.PurchaseSummary, error) {
	if order == nil {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "fulfillment.price_for_cart")
	defer span.End()
	span.SetAttributes(attribute.Int("order.lines", order.Len()))

	lines := order.Lines()
	books := make([]domain.Book, len(lines))
	for i, line := range lines {
		book, err := s.books.FindByISBN(ctx, line.ISBN)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "book lookup failed")
			return nil, fmt.Errorf("fulfillment: resolve %s: %w", line.ISBN, err)
		}
		books[i] = book
	}

	total := decimal.Zero
	var shortfalls []domain.Shortfall
	for i, line := range lines {
		book := books[i]
		fulfilled := min(line.Quantity, book.Quantity)

		total = total.Add(book.Price.Mul(decimal.NewFromInt(int64(fulfilled))))
		if line.Quantity > book.Quantity {
			shortfalls = append(shortfalls, domain.Shortfall{
				Book:    book,
				Missing: line.Quantity - book.Quantity,
			})
		}

		s.purchase.BuyBook(ctx, book, fulfilled)
	}

	summary := domain.NewPurchaseSummary(total, shortfalls)
	slog.InfoContext(ctx, "order priced",
		"lines", len(lines),
		"total", total.String(),
		"shortfalls", len(shortfalls),
	)
	return summary, nil
}
