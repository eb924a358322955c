package purchaselog

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/ports"
)

var _ ports.BuyBookProcess = (*Processor)(nil)

// Processor implements BuyBookProcess by appending to a Repository.
// Save failures are logged and dropped.
type Processor struct {
	repo Repository
}

func NewProcessor(repo Repository) *Processor {
	return &Processor{repo: repo}
}

func (p *Processor) BuyBook(ctx context.Context, book domain.Book, quantity int) {
	rec := NewRecord(ctx, book, quantity)
	if err := p.repo.Save(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to record purchase",
			"isbn", book.ISBN,
			"quantity", quantity,
			"error", err,
		)
		return
	}
	slog.DebugContext(ctx, "purchase recorded", "purchase_id", rec.ID, "isbn", book.ISBN, "quantity", quantity)
}
