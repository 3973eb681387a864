package backend

import (
	"context"
	"time"

	"cashflow/internal/amqp"
	"cashflow/internal/cache"
	"cashflow/internal/ports"
)

// Result bundles the infrastructure a process needs: the item store, the
// report cache and, when configured, the event client.
type Result struct {
	Store     ports.Store
	Reports   cache.ReportCache
	Publisher *amqp.Client

	// Ready checks the store (and Redis when used) for readiness probes.
	Ready func(ctx context.Context) error

	cleanups []func() error
}

// Close releases everything in reverse order of creation.
func (r *Result) Close() error {
	var first error
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		if err := r.cleanups[i](); err != nil && first == nil {
			first = err
		}
	}
	r.cleanups = nil
	return first
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	SQLiteDBPath string

	RedisURL  string
	CacheSize int
	CacheTTL  time.Duration

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
