// Package observability wires OpenTelemetry tracing and metrics for
// feedkit applications.
//
// Both providers export over OTLP/HTTP and are optional: applications that
// do not call InitTracer/InitMeter get the otel no-op globals, so library
// code can record spans and instruments unconditionally.
package observability
