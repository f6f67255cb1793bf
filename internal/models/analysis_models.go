package models

import (
	"time"

	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/wordfreq"
)

// AnalysisResult is everything produced for one piece of text.
//   - Frequencies are counted on the original text, not the translation
//   - Warnings carry non-fatal problems such as a failed translation
type AnalysisResult struct {
	OriginalText   string          `json:"original_text"`
	TranslatedText string          `json:"translated_text"`
	Polarity       float64         `json:"polarity"`
	Subjectivity   float64         `json:"subjectivity"`
	Label          sentiment.Label `json:"label"`
	Frequencies    wordfreq.Table  `json:"frequencies"`
	Warnings       []string        `json:"warnings,omitempty"`
	AnalyzedAt     time.Time       `json:"analyzed_at"`
}
