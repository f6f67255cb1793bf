package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const DefaultHealthcheckInterval = 15 * time.Second

// HealthChecker is anything that can probe a downstream dependency.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// MonitorTranslator probes checker immediately and then on every tick,
// storing the outcome in healthy. It returns when ctx is cancelled.
func MonitorTranslator(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultHealthcheckInterval
	}

	probe(ctx, checker, healthy, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe(ctx, checker, healthy, interval)
		}
	}
}

func probe(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, timeout time.Duration) {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := checker.CheckHealth(probeCtx)
	isHealthy := err == nil
	was := healthy.Swap(isHealthy)

	switch {
	case !isHealthy && was:
		slog.Warn("[HealthCheck] Translator is unhealthy", slog.String("error", err.Error()))
	case isHealthy && !was:
		slog.Info("[HealthCheck] Translator recovered")
	}
}
