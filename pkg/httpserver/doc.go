// Package httpserver runs an http.Server with graceful shutdown on context
// cancellation or SIGINT/SIGTERM, configurable timeouts, start/stop hooks and
// a combined liveness/readiness health handler.
package httpserver
