// Package logging provides structured logging using Go's standard library log/slog.
// It outputs JSON by default, or logfmt-style text, and is shared by the fx
// application and the configuration store.
package logging
