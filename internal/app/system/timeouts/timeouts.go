// Package timeouts provides centralized timeout values for probes and
// request handling.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultProbe   = 5 * time.Second
	DefaultRequest = 30 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

// Configurable timeout values.
var (
	probe   = DefaultProbe
	request = DefaultRequest
)

// Probe returns the timeout for directory reachability checks.
func Probe() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return probe
}

// Request returns the upper bound on handling one HTTP request.
func Request() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return request
}

// Config holds timeout configuration values.
type Config struct {
	Probe   time.Duration
	Request time.Duration
}

// Configure sets custom timeout values. Zero or negative values keep the
// current setting.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Probe > 0 {
		probe = cfg.Probe
	}
	if cfg.Request > 0 {
		request = cfg.Request
	}
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Probe:   probe,
		Request: request,
	}
}

// WithTimeout creates a context with timeout and logging.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
