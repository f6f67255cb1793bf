package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// Scores is the sentiment of a text.
type Scores struct {
	// Polarity ranges from -1 (most negative) to 1 (most positive).
	Polarity float64 `json:"polarity"`
	// Subjectivity ranges from 0 (factual) to 1 (opinionated).
	Subjectivity float64 `json:"subjectivity"`
}

// Scorer rates English text with the VADER lexicon.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders Markdown and strips the resulting markup,
// links and URLs, collapsing whitespace.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := html.UnescapeString(tagPattern.ReplaceAllString(string(output), " "))
	plainText = strings.Join(strings.Fields(plainText), " ")

	return strings.Join(strings.Fields(RemoveLinks(plainText)), " ")
}

// Score returns the VADER compound score as polarity and the share of
// sentiment-bearing text as subjectivity.
func (s *Scorer) Score(text string) Scores {
	plainText := ConvertMarkdownToText(text)
	if plainText == "" {
		return Scores{}
	}

	sentiment := s.analyzer.PolarityScores(plainText)

	return Scores{
		Polarity:     clamp(sentiment.Compound, -1, 1),
		Subjectivity: clamp(sentiment.Positive+sentiment.Negative, 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
