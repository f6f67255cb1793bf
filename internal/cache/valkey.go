package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	valkeyRetries    = 3
	valkeyRetryDelay = 250 * time.Millisecond
	// Replaced clients stay open this long so in-flight commands can finish.
	valkeyCloseGrace = 5 * time.Second
)

// ValkeyOptions configures a ValkeyCache.
type ValkeyOptions struct {
	Address   string
	Password  string
	TLS       bool
	TTL       time.Duration
	KeyPrefix string
}

// ValkeyCache is a Valkey-backed cache that retries transient failures and
// rebuilds its client after connection errors.
type ValkeyCache struct {
	opts   ValkeyOptions
	client valkey.Client
	mu     sync.RWMutex

	dial       func(ctx context.Context) (valkey.Client, error)
	retryDelay time.Duration
	closeGrace time.Duration
}

func NewValkeyCache(ctx context.Context, opts ValkeyOptions) (*ValkeyCache, error) {
	client, err := connectValkey(ctx, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("[ValkeyCache] Successfully connected to valkey",
		slog.String("address", opts.Address))
	return NewValkeyCacheFromClient(client, opts), nil
}

// NewValkeyCacheFromClient wraps an existing client. Reconnects dial the
// address in opts.
func NewValkeyCacheFromClient(client valkey.Client, opts ValkeyOptions) *ValkeyCache {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	return &ValkeyCache{
		opts:   opts,
		client: client,
		dial: func(ctx context.Context) (valkey.Client, error) {
			return connectValkey(ctx, opts)
		},
		retryDelay: valkeyRetryDelay,
		closeGrace: valkeyCloseGrace,
	}
}

func connectValkey(ctx context.Context, opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress:      []string{opts.Address},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.TLS {
		clientOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyCache] failed to create Valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyCache] failed to ping Valkey: %w", err)
	}

	return client, nil
}

func (vc *ValkeyCache) current() valkey.Client {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.client
}

func (vc *ValkeyCache) recreateClient(ctx context.Context) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyCache] Attempting to recreate Valkey client...")
	client, err := vc.dial(ctx)
	if err != nil {
		slog.Error("[ValkeyCache] Recreate failed, keeping previous client",
			slog.String("error", err.Error()))
		return
	}

	old := vc.client
	vc.client = client
	if vc.closeGrace <= 0 {
		old.Close()
	} else {
		time.AfterFunc(vc.closeGrace, old.Close)
	}
	slog.Info("[ValkeyCache] Valkey client recreated")
}

func (vc *ValkeyCache) Get(ctx context.Context, key string) (string, bool) {
	fullKey := vc.opts.KeyPrefix + key
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(fullKey).Build()
	}, valkeyRetries)

	val, err := res.ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyCache] Get failed, treating as miss",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return "", false
	}
	return val, true
}

func (vc *ValkeyCache) Set(ctx context.Context, key string, value string) error {
	fullKey := vc.opts.KeyPrefix + key
	ttlSeconds := int64(vc.opts.TTL / time.Second)

	build := func(c valkey.Client) []valkey.Completed {
		completed := []valkey.Completed{
			c.B().Set().Key(fullKey).Value(value).Build(),
		}
		if ttlSeconds > 0 {
			completed = append(completed, c.B().Expire().Key(fullKey).Seconds(ttlSeconds).Build())
		}
		return completed
	}

	for _, res := range vc.DoMultiWithRetry(ctx, build, valkeyRetries) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyCache] set %s: %w", key, err)
		}
	}
	return nil
}

// DoMultiWithRetry runs the commands produced by build, rebuilding them for
// every attempt since executed commands are recycled by the client.
func (vc *ValkeyCache) DoMultiWithRetry(ctx context.Context, build func(valkey.Client) []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		client := vc.current()
		results = client.DoMulti(ctx, build(client)...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyCache] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				if isConnectionError(r.Error()) {
					vc.recreateClient(ctx)
				}
				break
			}
		}
		if !hasErr {
			break
		}
		if !sleepCtx(ctx, vc.retryDelay) {
			break
		}
	}

	return results
}

// DoWithRetry retries failed commands. A nil reply is a valid answer and is
// returned immediately.
func (vc *ValkeyCache) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		client := vc.current()
		result = client.Do(ctx, build(client))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyCache] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			vc.recreateClient(ctx)
		}
		if !sleepCtx(ctx, vc.retryDelay) {
			break
		}
	}

	return result
}

func (vc *ValkeyCache) Close() {
	vc.current().Close()
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

var _ Cache = (*ValkeyCache)(nil)
