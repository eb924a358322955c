package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"
)

var _ domain.Cart = (*Cart)(nil)

// Cart is the SQLite implementation of domain.Cart for a single cart id.
type Cart struct {
	db *sql.DB
	id string
}

func (c *Cart) ID() string { return c.id }

func (c *Cart) Add(ctx context.Context, item domain.LineItem) error {
	const q = `
		INSERT INTO cart_items (cart_id, category, name, quantity, unit_price, added_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := c.db.ExecContext(ctx, q,
		c.id,
		item.Category().String(),
		item.Name(),
		item.Quantity(),
		item.UnitPrice().String(),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: add item %q to cart %q: %w", item.Name(), c.id, err)
	}
	return nil
}

func (c *Cart) Items(ctx context.Context) ([]domain.LineItem, error) {
	const q = `
		SELECT category, name, quantity, unit_price
		FROM   cart_items
		WHERE  cart_id = ?
		ORDER  BY id`

	rows, err := c.db.QueryContext(ctx, q, c.id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list cart %q: %w", c.id, err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var category, name, price string
		var quantity int
		if err := rows.Scan(&category, &name, &quantity, &price); err != nil {
			return nil, fmt.Errorf("sqlite: scan cart %q: %w", c.id, err)
		}
		item, err := decodeItem(category, name, quantity, price)
		if err != nil {
			return nil, fmt.Errorf("sqlite: cart %q: %w", c.id, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list cart %q: %w", c.id, err)
	}
	return items, nil
}

// NumberOfItems counts stored line items, not units.
func (c *Cart) NumberOfItems(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cart_items WHERE cart_id = ?`, c.id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count cart %q: %w", c.id, err)
	}
	return n, nil
}

func decodeItem(category, name string, quantity int, price string) (domain.LineItem, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return domain.LineItem{}, err
	}
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	return domain.NewLineItem(cat, name, quantity, unitPrice)
}
