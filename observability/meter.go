package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/feedkit/feedkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// FetchMetrics holds instruments for fetch pipeline observability.
type FetchMetrics struct {
	fetchTotal     metric.Int64Counter
	fetchDuration  metric.Float64Histogram
	postsDelivered metric.Int64Counter
	errorTotal     metric.Int64Counter
}

// NewFetchMetrics creates fetch instruments on the given meter.
func NewFetchMetrics(meter metric.Meter) (*FetchMetrics, error) {
	fetchTotal, err := meter.Int64Counter("fetch.total",
		metric.WithDescription("Total number of fetch activations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.total counter: %w", err)
	}

	fetchDuration, err := meter.Float64Histogram("fetch.duration",
		metric.WithDescription("Duration of fetch activations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.duration histogram: %w", err)
	}

	postsDelivered, err := meter.Int64Counter("posts.delivered",
		metric.WithDescription("Total posts delivered to subscribers after filtering"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating posts.delivered counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by classification"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &FetchMetrics{
		fetchTotal:     fetchTotal,
		fetchDuration:  fetchDuration,
		postsDelivered: postsDelivered,
		errorTotal:     errorTotal,
	}, nil
}

// RecordFetch records a completed fetch activation.
func (m *FetchMetrics) RecordFetch(ctx context.Context, status string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.fetchTotal.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, duration.Seconds())
}

// RecordDelivered records the number of posts delivered to a subscriber.
func (m *FetchMetrics) RecordDelivered(ctx context.Context, count int) {
	m.postsDelivered.Add(ctx, int64(count))
}

// RecordError records an error by classification.
func (m *FetchMetrics) RecordError(ctx context.Context, kind string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("type", kind)))
}
