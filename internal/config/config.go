// Package config loads the storefront's settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jcmexdev/storefront-pricing/internal/pkg/telemetry"
)

type Config struct {
	HTTPAddr       string
	CartDBPath     string
	PurchaseDBPath string

	// RedisAddr selects the Redis catalog. Empty means the in-memory catalog.
	RedisAddr string

	PricingRules []string
	LogLevel     slog.Level

	// KafkaBrokers enables purchase events when non-empty.
	KafkaBrokers       []string
	KafkaPurchaseTopic string

	ServiceName    string
	TracingEnabled bool
	OTLPEndpoint   string
	OTLPProtocol   string
}

// Load reads every setting, applying defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CartDBPath:         getEnv("CART_DB_PATH", "./data/cart.db"),
		PurchaseDBPath:     getEnv("PURCHASE_DB_PATH", "./data/purchases.db"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		PricingRules:       splitList(getEnv("PRICING_RULES", "regular,delivery,electronics")),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaPurchaseTopic: getEnv("KAFKA_PURCHASE_TOPIC", "storefront.purchases"),
		ServiceName:        getEnv("OTEL_SERVICE_NAME", "storefront"),
		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPProtocol:       getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", telemetry.ProtocolGRPC),
	}

	level, err := telemetry.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.TracingEnabled, err = strconv.ParseBool(getEnv("TRACING_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("config: TRACING_ENABLED: %w", err)
	}

	switch cfg.OTLPProtocol {
	case telemetry.ProtocolGRPC, telemetry.ProtocolHTTP:
	default:
		return nil, fmt.Errorf("config: OTEL_EXPORTER_OTLP_PROTOCOL: %w: %q", telemetry.ErrUnknownProtocol, cfg.OTLPProtocol)
	}

	if len(cfg.PricingRules) == 0 {
		return nil, fmt.Errorf("config: PRICING_RULES must name at least one rule")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
