// Command stubsrv runs the local stub of the posts resource. Point feedview
// at it with CLIENT_BASE_URL=http://127.0.0.1:8941/ to demo the pipeline
// without leaving the machine.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/feedkit/feedkit/logger"
	"github.com/feedkit/feedkit/stubapi"
	"github.com/feedkit/feedkit/version"
)

func main() {
	log := logger.NewFromEnv("stubsrv")
	logger.SetGlobalLogger(log)
	log.Info("starting", logger.Fields("version", version.Get().String()))

	var cfg stubapi.Config
	if v := os.Getenv("STUB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("STUB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			log.Fatal("invalid STUB_PORT", logger.Fields("value", v))
		}
		cfg.Port = port
	}

	srv := stubapi.New(cfg, nil, log)

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		log.Fatal("start failed", logger.Fields(logger.FieldError, err.Error()))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := srv.Stop(ctx); err != nil {
		log.Error("shutdown error", logger.Fields(logger.FieldError, err.Error()))
	}
}
