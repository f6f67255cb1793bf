// Package clients builds the external collaborators (cache, translator,
// speech synthesizer) selected by configuration.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/cache"
)

// NewCache returns the configured translation cache and a func that
// releases it. A nil cache means caching is disabled.
func NewCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case "none", "":
		slog.Info("[Clients] Translation cache disabled")
		return nil, noop, nil

	case "memory":
		slog.Info("[Clients] Using in-memory translation cache", slog.Duration("ttl", cfg.TTL))
		return cache.NewInMemoryCache(cfg.TTL), noop, nil

	case "redis":
		var rc *cache.RedisCache
		err := withBackoff(ctx, "redis", func() error {
			var err error
			rc, err = cache.NewRedisCache(ctx, cfg.RedisURL, cfg.TTL)
			return err
		})
		if err != nil {
			return nil, noop, err
		}
		return rc, func() { _ = rc.Close() }, nil

	case "valkey":
		var vc *cache.ValkeyCache
		err := withBackoff(ctx, "valkey", func() error {
			var err error
			vc, err = cache.NewValkeyCache(ctx, cache.ValkeyOptions{
				Address:  cfg.ValkeyAddress,
				Password: cfg.ValkeyPassword,
				TLS:      cfg.ValkeyTLS,
				TTL:      cfg.TTL,
			})
			return err
		})
		if err != nil {
			return nil, noop, err
		}
		return vc, vc.Close, nil

	default:
		return nil, noop, fmt.Errorf("[Clients] unknown cache backend %q", cfg.Backend)
	}
}

// withBackoff retries connect with exponential backoff capped at
// MAX_BACKOFF.
func withBackoff(ctx context.Context, name string, connect func() error) error {
	backoff := INITIAL_BACKOFF
	var err error

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		if err = connect(); err == nil {
			return nil
		}
		slog.Warn("[Clients] Connection failed, retrying...",
			slog.String("backend", name),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()))

		if attempt == MAX_RETRIES-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}
	return fmt.Errorf("[Clients] %s unavailable after %d attempts: %w", name, MAX_RETRIES, err)
}
