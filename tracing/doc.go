// Package tracing wraps OpenTelemetry so that the runner can record a span
// per executed task without importing the SDK directly.
package tracing
