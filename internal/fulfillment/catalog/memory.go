// Package catalog holds BookDatabase implementations.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/ports"
)

var _ ports.BookDatabase = (*Memory)(nil)

// Memory is a process-local catalog, safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

func NewMemory(books ...domain.Book) *Memory {
	m := &Memory{books: make(map[string]domain.Book, len(books))}
	for _, b := range books {
		m.books[b.Key()] = b
	}
	return m
}

func (m *Memory) Put(_ context.Context, book domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[book.Key()] = book
	return nil
}

func (m *Memory) FindByISBN(_ context.Context, isbn string) (domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	book, ok := m.books[isbn]
	if !ok {
		return domain.Book{}, fmt.Errorf("catalog: %s: %w", isbn, domain.ErrBookNotFound)
	}
	return book, nil
}
