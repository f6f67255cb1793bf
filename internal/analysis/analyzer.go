// Package analysis runs the translate, score and count pipeline over a
// single piece of text.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/speech"
	"github.com/spacesedan/sentilens/internal/translation"
	"github.com/spacesedan/sentilens/internal/wordfreq"
)

var (
	ErrEmptyInput        = errors.New("please enter some text to analyze")
	ErrSpeechUnavailable = errors.New("speech synthesis is not configured")
)

type Options struct {
	TargetLang string // default "en"
	SpeechLang string // default "es"
}

type Analyzer struct {
	translator  translation.Translator
	scorer      *sentiment.Scorer
	synthesizer speech.Synthesizer
	targetLang  string
	speechLang  string
	now         func() time.Time
}

// New builds an Analyzer. synth may be nil, in which case Speak fails with
// ErrSpeechUnavailable.
func New(tr translation.Translator, scorer *sentiment.Scorer, synth speech.Synthesizer, opts Options) *Analyzer {
	if opts.TargetLang == "" {
		opts.TargetLang = "en"
	}
	if opts.SpeechLang == "" {
		opts.SpeechLang = "es"
	}
	if scorer == nil {
		scorer = sentiment.NewScorer()
	}
	return &Analyzer{
		translator:  tr,
		scorer:      scorer,
		synthesizer: synth,
		targetLang:  opts.TargetLang,
		speechLang:  opts.SpeechLang,
		now:         time.Now,
	}
}

// Analyze translates text, scores the translation and counts words in the
// original. A failed translation is recorded as a warning and the original
// text is scored instead.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	result := &models.AnalysisResult{OriginalText: text}

	translated, err := a.translator.Translate(ctx, text, translation.AutoDetect, a.targetLang)
	if err != nil {
		slog.Warn("[Analyzer] Translation failed, scoring original text",
			slog.String("error", err.Error()))
		result.Warnings = append(result.Warnings, fmt.Sprintf("translation failed: %v", err))
		translated = text
	}
	result.TranslatedText = translated

	scores := a.scorer.Score(translated)
	result.Polarity = scores.Polarity
	result.Subjectivity = scores.Subjectivity
	result.Label = sentiment.Classify(scores.Polarity)
	result.Frequencies = wordfreq.Count(text)
	result.AnalyzedAt = a.now().UTC()

	slog.Debug("[Analyzer] Analysis complete",
		slog.String("label", string(result.Label)),
		slog.Float64("polarity", result.Polarity),
		slog.Int("distinct_words", len(result.Frequencies)))

	return result, nil
}

// Speak renders the spoken verdict for result.
func (a *Analyzer) Speak(ctx context.Context, result *models.AnalysisResult) ([]byte, error) {
	if a.synthesizer == nil {
		return nil, ErrSpeechUnavailable
	}
	return a.synthesizer.Synthesize(ctx, result.Label.Message(a.speechLang), a.speechLang)
}

// SpeechLang is the language verdicts are spoken in.
func (a *Analyzer) SpeechLang() string {
	return a.speechLang
}
