// Package logging provides a minimal logging interface and adapters for
// CamState.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the monitor and policy aggregator use for diagnostics.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - CamLogger with contextual helpers (component, camera, task)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	cs := camstate.New(func(o *camstate.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
