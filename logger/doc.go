// Package logger provides structured logging for feedkit applications
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewFromEnv("feedview").WithComponent("posts")
//	log.Info("fetch complete", logger.Fields("count", 9))
package logger
