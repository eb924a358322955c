// Package sqlite is the SQLite-backed purchaselog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/purchaselog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS purchases (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    purchase_id  TEXT    NOT NULL UNIQUE,
    isbn         TEXT    NOT NULL,
    quantity     INTEGER NOT NULL CHECK (quantity >= 0),
    unit_price   TEXT    NOT NULL,
    request_id   TEXT    NOT NULL DEFAULT '',
    trace_id     TEXT    NOT NULL DEFAULT '',
    span_id      TEXT    NOT NULL DEFAULT '',
    created_at   TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_purchases_isbn ON purchases(isbn, id);
CREATE INDEX IF NOT EXISTS idx_purchases_trace_id ON purchases(trace_id);
`

var _ purchaselog.Repository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at path. WAL mode lets the HTTP
// handlers read while a purchase is being written.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, rec *purchaselog.Record) error {
	const q = `
		INSERT INTO purchases
			(purchase_id, isbn, quantity, unit_price, request_id, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		rec.ID,
		rec.ISBN,
		rec.Quantity,
		rec.UnitPrice.String(),
		rec.RequestID,
		rec.TraceID,
		rec.SpanID,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save purchase %q: %w", rec.ID, err)
	}
	return nil
}

// ListByISBN returns every purchase of isbn, oldest first.
func (r *Repository) ListByISBN(ctx context.Context, isbn string) ([]*purchaselog.Record, error) {
	const q = `
		SELECT purchase_id, isbn, quantity, unit_price, request_id, trace_id, span_id, created_at
		FROM   purchases
		WHERE  isbn = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q, isbn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list purchases for %q: %w", isbn, err)
	}
	defer rows.Close()

	var out []*purchaselog.Record
	for rows.Next() {
		var rec purchaselog.Record
		var price, createdAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.ISBN,
			&rec.Quantity,
			&price,
			&rec.RequestID,
			&rec.TraceID,
			&rec.SpanID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan purchase: %w", err)
		}
		if rec.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("sqlite: parse price %q: %w", price, err)
		}
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list purchases for %q: %w", isbn, err)
	}
	return out, nil
}
