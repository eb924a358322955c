package ports

import (
	"context"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
)

// BookDatabase resolves stock records. Unknown ISBNs must yield an error
// wrapping domain.ErrBookNotFound.
type BookDatabase interface {
	FindByISBN(ctx context.Context, isbn string) (domain.Book, error)
}

// BuyBookProcess is notified once per order entry with the number of copies
// actually sold. It reports nothing back to the caller.
type BuyBookProcess interface {
	BuyBook(ctx context.Context, book domain.Book, quantity int)
}
