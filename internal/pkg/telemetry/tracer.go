// Package telemetry sets up logging and OpenTelemetry tracing for the
// storefront binaries.
//
//	shutdown, err := telemetry.SetupTracer(ctx, "storefront", "localhost:4317", telemetry.ProtocolGRPC)
//	if err != nil { ... }
//	defer shutdown(context.Background())
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// OTLP transports accepted by SetupTracer, named as in OTEL_EXPORTER_OTLP_PROTOCOL.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

var ErrUnknownProtocol = errors.New("unknown OTLP protocol")

// ShutdownFunc flushes buffered spans and closes the exporter connection.
type ShutdownFunc func(ctx context.Context) error

// SetupTracer installs a global TracerProvider exporting over OTLP to
// endpoint, plus the W3C TraceContext and Baggage propagators. protocol is
// ProtocolGRPC or ProtocolHTTP; empty means gRPC.
func SetupTracer(ctx context.Context, serviceName, endpoint, protocol string) (ShutdownFunc, error) {
	exporter, closeConn, err := newExporter(ctx, protocol, stripScheme(endpoint))
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes("", semconv.ServiceName(serviceName)),
	)
	if err != nil {
		_ = closeConn()
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return fmt.Errorf("telemetry: shut down tracer provider: %w", err)
		}
		return closeConn()
	}, nil
}

// newExporter returns the span exporter and a func closing whatever
// connection it owns.
func newExporter(ctx context.Context, protocol, endpoint string) (sdktrace.SpanExporter, func() error, error) {
	switch protocol {
	case "", ProtocolGRPC:
		conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: dial collector at %s: %w", endpoint, err)
		}
		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("telemetry: create OTLP/gRPC trace exporter: %w", err)
		}
		return exporter, conn.Close, nil

	case ProtocolHTTP:
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: create OTLP/HTTP trace exporter: %w", err)
		}
		return exporter, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("telemetry: %w: %q", ErrUnknownProtocol, protocol)
	}
}

// stripScheme turns "http://host:port" into the host:port both exporters expect.
func stripScheme(endpoint string) string {
	for _, prefix := range []string{"http://", "https://"} {
		if rest, ok := strings.CutPrefix(endpoint, prefix); ok && rest != "" {
			return rest
		}
	}
	return endpoint
}
