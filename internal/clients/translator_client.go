package clients

import (
	"log/slog"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/cache"
	"github.com/spacesedan/sentilens/internal/translation"
)

// NewTranslator builds the configured backend, wrapped in a cache when c is
// non-nil.
func NewTranslator(cfg *config.Config, c cache.Cache) translation.Translator {
	var tr translation.Translator

	switch cfg.Translator.Backend {
	case "openai":
		tr = translation.NewOpenAITranslator(translation.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout,
		})
	default:
		tr = translation.NewGoogleTranslator(translation.GoogleOptions{
			ChunkSize: cfg.Translator.ChunkSize,
			Timeout:   cfg.Translator.Timeout,
			UserAgent: USER_AGENT,
		})
	}
	slog.Info("[Clients] Translator initialized",
		slog.String("backend", cfg.Translator.Backend),
		slog.String("target", cfg.Translator.TargetLang),
		slog.Bool("cached", c != nil))

	if c == nil {
		return tr
	}
	return translation.NewCachedTranslator(tr, c)
}
