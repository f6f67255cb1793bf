package clients

import (
	"log/slog"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/speech"
)

func NewSynthesizer(cfg *config.Config) speech.Synthesizer {
	slog.Info("[Clients] Speech synthesizer initialized",
		slog.String("backend", cfg.Speech.Backend),
		slog.String("lang", cfg.Speech.Lang))

	if cfg.Speech.Backend == "openai" {
		return speech.NewOpenAISynthesizer(speech.OpenAIOptions{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Voice:   cfg.Speech.Voice,
			Timeout: cfg.OpenAI.Timeout,
		})
	}
	return speech.NewGoogleSynthesizer("", nil)
}
