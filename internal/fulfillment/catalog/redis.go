package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/ports"
	"github.com/jcmexdev/storefront-pricing/internal/pkg/cache"
)

var _ ports.BookDatabase = (*Redis)(nil)

const bookOperation = "book"

type bookRecord struct {
	ISBN     string          `json:"isbn"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Redis reads books stored as JSON under "<service>:book:<isbn>".
type Redis struct {
	cache cache.Cache
}

func NewRedis(c cache.Cache) *Redis {
	return &Redis{cache: c}
}

// Put stores book with no expiry.
func (r *Redis) Put(ctx context.Context, book domain.Book) error {
	raw, err := json.Marshal(bookRecord{ISBN: book.ISBN, Price: book.Price, Quantity: book.Quantity})
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", book.ISBN, err)
	}
	if err := r.cache.Set(ctx, r.cache.GenerateKey(bookOperation, book.Key()), string(raw), 0); err != nil {
		return fmt.Errorf("catalog: put %s: %w", book.ISBN, err)
	}
	return nil
}

func (r *Redis) FindByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	raw, err := r.cache.Get(ctx, r.cache.GenerateKey(bookOperation, isbn))
	if err != nil {
		return domain.Book{}, fmt.Errorf("catalog: get %s: %w", isbn, err)
	}
	if raw == "" {
		return domain.Book{}, fmt.Errorf("catalog: %s: %w", isbn, domain.ErrBookNotFound)
	}

	var rec bookRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Book{}, fmt.Errorf("catalog: decode %s: %w", isbn, err)
	}
	return domain.NewBook(rec.ISBN, rec.Price, rec.Quantity)
}
