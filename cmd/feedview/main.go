// Command feedview fetches the post collection once at startup, filters it
// through the stream pipeline, and renders the surviving titles.
//
// It is the host-integration example for the feedkit packages: the
// subscription happens exactly once during initialization, OnValue updates
// the view, OnError logs and exits non-zero.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/feedkit/feedkit/config"
	"github.com/feedkit/feedkit/httpclient"
	"github.com/feedkit/feedkit/logger"
	"github.com/feedkit/feedkit/observability"
	"github.com/feedkit/feedkit/posts"
	"github.com/feedkit/feedkit/stream"
	"github.com/feedkit/feedkit/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	var cfg config.AppConfig
	if err := config.Load("feedview", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "feedview: %v\n", err)
		return 1
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "feedview: %v\n", err)
		return 1
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)
	log.Info("starting", logger.Fields("version", version.Get().String()))

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := initTelemetry(ctx, cfg)
		if err != nil {
			log.Error("telemetry init failed", logger.ErrorFields("telemetry", err))
			return 1
		}
		defer shutdown()
	}

	client, err := httpclient.New(cfg.Client)
	if err != nil {
		log.Error("client init failed", logger.ErrorFields("client", err))
		return 1
	}
	svc := posts.NewService(client, log)

	metrics, err := observability.NewFetchMetrics(observability.Meter(cfg.Name))
	if err != nil {
		log.Error("metrics init failed", logger.ErrorFields("metrics", err))
		return 1
	}

	log.Info("fetching posts", logger.Fields(
		"base_url", cfg.Client.BaseURL,
		"max_id", cfg.Filter.MaxID,
	))

	ctx, span := observability.StartSpan(ctx, observability.SpanFetchPosts)
	defer span.End()

	start := time.Now()
	pipeline := stream.Tap(svc.FetchPostsBelow(cfg.Filter.MaxID), func(ps posts.Posts) {
		metrics.RecordDelivered(ctx, len(ps))
	})

	exitCode := make(chan int, 1)
	pipeline.Subscribe(ctx, stream.Subscriber[posts.Posts]{
		OnValue: func(ps posts.Posts) {
			render(ps)
		},
		OnComplete: func() {
			metrics.RecordFetch(ctx, "ok", time.Since(start))
			log.Info("done", logger.Fields(logger.FieldDuration, time.Since(start).Milliseconds()))
			exitCode <- 0
		},
		OnError: func(err error) {
			metrics.RecordFetch(ctx, "error", time.Since(start))
			metrics.RecordError(ctx, errKind(err))
			observability.SetSpanError(ctx, err)
			log.Error("fetch failed", logger.Fields(
				logger.FieldError, err.Error(),
				logger.FieldStatus, httpclient.StatusCode(err),
			))
			exitCode <- 1
		},
	})

	return <-exitCode
}

// render writes the filtered collection to stdout.
func render(ps posts.Posts) {
	fmt.Printf("%d posts:\n", len(ps))
	for _, p := range ps {
		fmt.Printf("  [%2d] %s\n", p.ID, p.Title)
	}
}

// errKind maps a fetch error to a metric classification.
func errKind(err error) string {
	switch {
	case httpclient.IsTimeout(err):
		return "timeout"
	case httpclient.IsConnection(err):
		return "connection"
	case httpclient.IsStatus(err):
		return "status"
	case httpclient.IsDecode(err):
		return "decode"
	default:
		return "other"
	}
}

// initTelemetry starts the OTLP tracer and meter providers.
func initTelemetry(ctx context.Context, cfg config.AppConfig) (func(), error) {
	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: cfg.Name,
		Environment: cfg.Environment,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, err
	}
	mp, err := observability.InitMeter(ctx, observability.MeterConfig{
		ServiceName: cfg.Name,
		Environment: cfg.Environment,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return nil, err
	}
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
		_ = mp.Shutdown(shutdownCtx)
	}, nil
}
