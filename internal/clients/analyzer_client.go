package clients

import (
	"context"

	"github.com/spacesedan/sentilens/config"
	"github.com/spacesedan/sentilens/internal/analysis"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/translation"
)

// Pipeline is a fully wired analyzer plus the translator behind it, which
// the health monitor probes.
type Pipeline struct {
	Analyzer   *analysis.Analyzer
	Translator translation.Translator
	close      func()
}

func (p *Pipeline) Close() {
	if p.close != nil {
		p.close()
	}
}

func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	c, closeCache, err := NewCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	tr := NewTranslator(cfg, c)
	an := analysis.New(tr, sentiment.NewScorer(), NewSynthesizer(cfg), analysis.Options{
		TargetLang: cfg.Translator.TargetLang,
		SpeechLang: cfg.Speech.Lang,
	})

	return &Pipeline{Analyzer: an, Translator: tr, close: closeCache}, nil
}
