// Package logger provides a small factory around log/slog with environment
// presets (development/production), format selection, and attribute helpers
// used throughout the codebase for consistent structured logging keys.
package logger
