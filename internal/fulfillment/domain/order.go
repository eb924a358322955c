package domain

import "fmt"

// OrderLine is one requested book and how many copies are wanted.
type OrderLine struct {
	ISBN     string
	Quantity int
}

// Order maps ISBNs to requested quantities and remembers the order in which
// ISBNs were first set. A nil *Order means "no order" and is distinct from
// an Order with no lines.
type Order struct {
	isbns      []string
	quantities map[string]int
}

func NewOrder() *Order {
	return &Order{quantities: make(map[string]int)}
}

// Set records the requested quantity for isbn, replacing any earlier value
// while keeping the ISBN's original position.
func (o *Order) Set(isbn string, quantity int) error {
	if isbn == "" {
		return ErrEmptyISBN
	}
	if quantity < 0 {
		return fmt.Errorf("%w: %d copies of %s", ErrNegativeQuantity, quantity, isbn)
	}
	if _, ok := o.quantities[isbn]; !ok {
		o.isbns = append(o.isbns, isbn)
	}
	o.quantities[isbn] = quantity
	return nil
}

func (o *Order) Len() int { return len(o.isbns) }

// Lines returns the order's entries in insertion order.
func (o *Order) Lines() []OrderLine {
	lines := make([]OrderLine, len(o.isbns))
	for i, isbn := range o.isbns {
		lines[i] = OrderLine{ISBN: isbn, Quantity: o.quantities[isbn]}
	}
	return lines
}
