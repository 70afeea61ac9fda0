package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	ctx, span := StartSpan(context.Background(), SpanFetchPosts)
	SetSpanError(ctx, errors.New("fetch blew up"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != SpanFetchPosts {
		t.Errorf("expected span name %s, got %s", SpanFetchPosts, spans[0].Name())
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected a recorded error event on the span")
	}
}

func TestSetSpanError_NoSpanInContext(t *testing.T) {
	// Must not panic without an active span.
	SetSpanError(context.Background(), errors.New("orphan error"))
}

func TestNewFetchMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewFetchMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordFetch(ctx, "ok", 100*time.Millisecond)
	metrics.RecordDelivered(ctx, 9)
	metrics.RecordError(ctx, "status")
}
