package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cashflow/internal/amqp"
	"cashflow/internal/cache"
	"cashflow/internal/memory"
	"cashflow/internal/storage"
)

const redisKeyPrefix = "cashflow"

// Options toggles the optional parts of Build.
type Options struct {
	// WithPublisher connects the AMQP client when a URL is configured.
	WithPublisher bool
}

// Build creates the store, report cache and optional event client described
// by cfg. A failing AMQP connection is logged and skipped; store and cache
// errors are fatal.
func Build(ctx context.Context, cfg Config, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	var pings []func(context.Context) error

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		res.Store = repo
		res.cleanups = append(res.cleanups, repo.Close)
		pings = append(pings, repo.Ping)
		logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	case MemoryBackend:
		res.Store = memory.New()
		logger.InfoContext(ctx, "Initialized memory backend")
	}

	reports, ping, cleanup, err := buildReportCache(ctx, cfg, logger)
	if err != nil {
		_ = res.Close()
		return nil, err
	}
	res.Reports = reports
	if ping != nil {
		pings = append(pings, ping)
	}
	if cleanup != nil {
		res.cleanups = append(res.cleanups, cleanup)
	}

	if opts.WithPublisher && cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			res.Publisher = client
			res.cleanups = append(res.cleanups, client.Close)
			logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	res.Ready = func(ctx context.Context) error {
		for _, p := range pings {
			if err := p(ctx); err != nil {
				return err
			}
		}
		return nil
	}
	return res, nil
}

func buildReportCache(ctx context.Context, cfg Config, logger *slog.Logger) (cache.ReportCache, func(context.Context) error, func() error, error) {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisReportCache(ctx, cfg.RedisURL, redisKeyPrefix, ttl)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize Redis report cache: %w", err)
		}
		logger.InfoContext(ctx, "Using Redis report cache", "ttl", ttl)
		return rc, rc.Ping, rc.Close, nil
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	local := cache.NewLocalReportCache(size, ttl)
	manager := cache.NewManager()
	manager.Register(local)
	manager.StartCleanup(ttl)
	logger.InfoContext(ctx, "Using in-process report cache", "size", size, "ttl", ttl)
	return local, nil, func() error { manager.Stop(); return nil }, nil
}
