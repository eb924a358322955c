// Package sqlite persists carts in SQLite.
//
// A single Store holds every cart; each Cart handle is scoped to one cart id.
// Like the purchase ledger, the database runs in WAL mode with a single
// writer connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/storefront-pricing/internal/pricing/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS carts (
    id          TEXT PRIMARY KEY,
    created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    cart_id     TEXT    NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
    category    TEXT    NOT NULL,
    name        TEXT    NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity > 0),
    unit_price  TEXT    NOT NULL,
    added_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cart_items_cart_id ON cart_items(cart_id, id);
`

// Store owns the database handle shared by all carts.
type Store struct {
	db     *sql.DB
	closed bool
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a throwaway database.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database. Calling it again is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Reset removes every cart and its items.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"cart_items", "carts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: reset %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit reset: %w", err)
	}
	return nil
}

// CreateCart registers a new, empty cart and returns its id.
func (s *Store) CreateCart(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO carts (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("sqlite: create cart: %w", err)
	}
	return id, nil
}

// FindCart returns the cart with the given id, or domain.ErrCartNotFound.
func (s *Store) FindCart(ctx context.Context, id string) (domain.Cart, error) {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %q: %w", id, domain.ErrCartNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find cart %q: %w", id, err)
	}
	return s.Cart(found), nil
}

// Cart returns a handle to the cart with the given id without checking
// that it exists.
func (s *Store) Cart(id string) *Cart {
	return &Cart{db: s.db, id: id}
}
