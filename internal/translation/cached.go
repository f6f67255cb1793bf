package translation

import (
	"context"
	"log/slog"

	"github.com/spacesedan/sentilens/internal/cache"
)

// CachedTranslator memoizes a Translator. Cache failures never fail a
// translation.
type CachedTranslator struct {
	next  Translator
	cache cache.Cache
}

func NewCachedTranslator(next Translator, c cache.Cache) *CachedTranslator {
	return &CachedTranslator{next: next, cache: c}
}

func (t *CachedTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	key := CacheKey(text, source, target)
	if val, ok := t.cache.Get(ctx, key); ok {
		slog.Debug("[CachedTranslator] Cache hit", slog.String("key", key))
		return val, nil
	}

	out, err := t.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	if err := t.cache.Set(ctx, key, out); err != nil {
		slog.Warn("[CachedTranslator] Failed to store translation",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return out, nil
}

func (t *CachedTranslator) CheckHealth(ctx context.Context) error {
	return t.next.CheckHealth(ctx)
}

var _ Translator = (*CachedTranslator)(nil)
