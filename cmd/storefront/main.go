package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-pricing/internal/config"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/catalog"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/domain"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/ports"
	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/purchaselog"
	purchasekafka "github.com/jcmexdev/storefront-pricing/internal/fulfillment/purchaselog/kafka"
	purchasesqlite "github.com/jcmexdev/storefront-pricing/internal/fulfillment/purchaselog/sqlite"
	"github.com/jcmexdev/storefront-pricing/internal/pkg/cache"
	"github.com/jcmexdev/storefront-pricing/internal/pkg/telemetry"
	cartsqlite "github.com/jcmexdev/storefront-pricing/internal/pricing/cart/sqlite"
	"github.com/jcmexdev/storefront-pricing/internal/pricing/rules"
	"github.com/jcmexdev/storefront-pricing/internal/storefront/infra/httpx"
)

// seedBooks are written to the catalog at startup, replacing any stored copy.
var seedBooks = []domain.Book{
	{ISBN: "978-0134190440", Price: decimal.RequireFromString("45.00"), Quantity: 10},
	{ISBN: "978-0321765723", Price: decimal.RequireFromString("39.99"), Quantity: 3},
	{ISBN: "978-1617295973", Price: decimal.RequireFromString("50.00"), Quantity: 0},
}

type bookCatalog interface {
	ports.BookDatabase
	Put(ctx context.Context, book domain.Book) error
}

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	telemetry.InitLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.OTLPProtocol)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	for _, path := range []string{cfg.CartDBPath, cfg.PurchaseDBPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	}

	carts, err := cartsqlite.Open(cfg.CartDBPath)
	if err != nil {
		return err
	}
	defer carts.Close()

	purchases, err := purchasesqlite.Open(cfg.PurchaseDBPath)
	if err != nil {
		return err
	}
	defer purchases.Close()

	books, closeBooks, err := openCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBooks()

	for _, b := range seedBooks {
		if err := books.Put(ctx, b); err != nil {
			return err
		}
	}

	priceRules, err := rules.ByName(cfg.PricingRules...)
	if err != nil {
		return err
	}

	ledger := purchaselog.Repository(purchases)
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := purchasekafka.Dial(cfg.KafkaBrokers, cfg.KafkaPurchaseTopic, cfg.ServiceName)
		if err != nil {
			return err
		}
		defer publisher.Close()
		ledger = purchaselog.Tee(purchases, publisher)
		slog.Info("publishing purchases", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaPurchaseTopic)
	}

	service := fulfillment.NewService(books, purchaselog.NewProcessor(ledger))
	handler := httpx.NewHandler(carts, priceRules, service)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("storefront running", "addr", cfg.HTTPAddr, "rules", cfg.PricingRules)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCatalog uses Redis when an address is configured and a process-local
// catalog otherwise.
func openCatalog(ctx context.Context, cfg *config.Config) (bookCatalog, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("using in-memory catalog")
		return catalog.NewMemory(), func() {}, nil
	}

	redisCache := cache.NewRedisCache(cfg.RedisAddr, "storefront")
	if err := redisCache.Ping(ctx); err != nil {
		_ = redisCache.Close()
		return nil, nil, err
	}
	slog.Info("using redis catalog", "addr", cfg.RedisAddr)
	return catalog.NewRedis(redisCache), func() { _ = redisCache.Close() }, nil
}
