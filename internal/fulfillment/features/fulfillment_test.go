package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/catalog"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
)

type purchaseCall struct {
	isbn     string
	quantity int
}

type recordingProcess struct {
	calls []purchaseCall
}

func (p *recordingProcess) BuyBook(_ context.Context, book domain.Book, quantity int) {
	p.calls = append(p.calls, purchaseCall{isbn: book.ISBN, quantity: quantity})
}

type fulfillmentTestContext struct {
	catalog   *catalog.Memory
	purchases *recordingProcess
	summary   *domain.PurchaseSummary
	err       error
}

func (c *fulfillmentTestContext) reset() {
	c.catalog = catalog.NewMemory()
	c.purchases = &recordingProcess{}
	c.summary = nil
	c.err = nil
}

func (c *fulfillmentTestContext) service() *fulfillment.Service {
	return fulfillment.NewService(c.catalog, c.purchases)
}

func (c *fulfillmentTestContext) theCatalog(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		price, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return err
		}
		book, err := domain.NewBook(row.Cells[0].Value, price, quantity)
		if err != nil {
			return err
		}
		if err := c.catalog.Put(context.Background(), book); err != nil {
			return err
		}
	}
	return nil
}

func (c *fulfillmentTestContext) noOrderIsPlaced() error {
	c.summary, c.err = c.service().PriceForCart(context.Background(), nil)
	return nil
}

func (c *fulfillmentTestContext) iOrder(table *godog.Table) error {
	order := domain.NewOrder()
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		quantity, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		if err := order.Set(row.Cells[0].Value, quantity); err != nil {
			return err
		}
	}
	c.summary, c.err = c.service().PriceForCart(context.Background(), order)
	return nil
}

func (c *fulfillmentTestContext) requireSummary() error {
	if c.err != nil {
		return fmt.Errorf("expected summary but got error: %v", c.err)
	}
	if c.summary == nil {
		return errors.New("expected a summary, got none")
	}
	return nil
}

func (c *fulfillmentTestContext) thereIsNoSummary() error {
	if c.err != nil {
		return fmt.Errorf("unexpected error: %v", c.err)
	}
	if c.summary != nil {
		return fmt.Errorf("expected no summary, got total %s", c.summary.TotalPrice())
	}
	return nil
}

func (c *fulfillmentTestContext) theTotalPriceIs(want string) error {
	if err := c.requireSummary(); err != nil {
		return err
	}
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !expected.Equal(c.summary.TotalPrice()) {
		return fmt.Errorf("expected total %s, got %s", expected, c.summary.TotalPrice())
	}
	return nil
}

func (c *fulfillmentTestContext) nothingIsUnavailable() error {
	if err := c.requireSummary(); err != nil {
		return err
	}
	if c.summary.HasShortfalls() {
		return fmt.Errorf("expected no shortfalls, got %v", c.summary.Unavailable())
	}
	return nil
}

func (c *fulfillmentTestContext) copiesAreUnavailable(missing int, isbn string) error {
	if err := c.requireSummary(); err != nil {
		return err
	}
	got, ok := c.summary.Missing(domain.Book{ISBN: isbn})
	if !ok {
		return fmt.Errorf("expected %s to be unavailable", isbn)
	}
	if got != missing {
		return fmt.Errorf("expected %d missing copies of %s, got %d", missing, isbn, got)
	}
	return nil
}

func (c *fulfillmentTestContext) copiesArePurchased(quantity int, isbn string) error {
	for _, call := range c.purchases.calls {
		if call.isbn != isbn {
			continue
		}
		if call.quantity != quantity {
			return fmt.Errorf("expected %d copies of %s purchased, got %d", quantity, isbn, call.quantity)
		}
		return nil
	}
	return fmt.Errorf("no purchase recorded for %s", isbn)
}

func (c *fulfillmentTestContext) noPurchasesAreMade() error {
	if len(c.purchases.calls) != 0 {
		return fmt.Errorf("expected no purchases, got %v", c.purchases.calls)
	}
	return nil
}

func (c *fulfillmentTestContext) theOrderFailsBecauseABookWasNotFound() error {
	if !errors.Is(c.err, domain.ErrBookNotFound) {
		return fmt.Errorf("expected ErrBookNotFound, got %v", c.err)
	}
	if c.summary != nil {
		return errors.New("expected no summary for a failed order")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &fulfillmentTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog:$`, tc.theCatalog)

	// When steps
	ctx.Step(`^no order is placed$`, tc.noOrderIsPlaced)
	ctx.Step(`^I order:$`, tc.iOrder)

	// Then steps
	ctx.Step(`^there is no summary$`, tc.thereIsNoSummary)
	ctx.Step(`^the total price is (\d+(?:\.\d+)?)$`, tc.theTotalPriceIs)
	ctx.Step(`^nothing is unavailable$`, tc.nothingIsUnavailable)
	ctx.Step(`^(\d+) copies of "([^"]*)" are unavailable$`, tc.copiesAreUnavailable)
	ctx.Step(`^(\d+) copies of "([^"]*)" are purchased$`, tc.copiesArePurchased)
	ctx.Step(`^no purchases are made$`, tc.noPurchasesAreMade)
	ctx.Step(`^the order fails because a book was not found$`, tc.theOrderFailsBecauseABookWasNotFound)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/fulfillment.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
