// Package timeouts provides the request deadlines used against the REST backend.
//
// Every call made by the access client is bounded by one of these values.
// Page loads get a separate, longer bound because they cover a whole
// fan-out of list calls.
//
//   - Ping: the backend status endpoint
//   - Read: a single list or get request
//   - Write: create, update, replace and delete
//   - Load: a whole page fan-out (all reads of one mount)
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing  = 2 * time.Second
	DefaultRead  = 5 * time.Second
	DefaultWrite = 10 * time.Second
	DefaultLoad  = 15 * time.Second
)

var mu sync.RWMutex

var (
	ping  = DefaultPing
	read  = DefaultRead
	write = DefaultWrite
	load  = DefaultLoad
)

// Ping returns the timeout for the backend status check.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Read returns the timeout for one list or get request.
func Read() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return read
}

// Write returns the timeout for one mutation request.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Load returns the timeout for a page's whole fetch cycle.
func Load() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return load
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping  time.Duration
	Read  time.Duration
	Write time.Duration
	Load  time.Duration
}

// Configure sets custom timeout values. Zero values keep the current value.
// Call it during startup before the client is built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Read > 0 {
		read = cfg.Read
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
	if cfg.Load > 0 {
		load = cfg.Load
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	read = DefaultRead
	write = DefaultWrite
	load = DefaultLoad
}

// ConfigureFromEnv reads RAIZES_TIMEOUT_PING, RAIZES_TIMEOUT_READ,
// RAIZES_TIMEOUT_WRITE and RAIZES_TIMEOUT_LOAD. Invalid or non-positive
// values are skipped. It returns how many values were applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	configured := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"RAIZES_TIMEOUT_PING", &ping},
		{"RAIZES_TIMEOUT_READ", &read},
		{"RAIZES_TIMEOUT_WRITE", &write},
		{"RAIZES_TIMEOUT_LOAD", &load},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Read: read, Write: write, Load: load}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the deadline was hit.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), log, "dashboard load")
//	defer cancel()
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
