package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/sentiment"
)

const maxBarWidth = 30

var verdicts = map[sentiment.Label]string{
	sentiment.Positive: "positive sentiment",
	sentiment.Negative: "negative sentiment",
	sentiment.Neutral:  "neutral sentiment",
}

// render prints the result the way the analysis page lays it out: the
// translation, both scores, the verdict and a bar chart of frequent words.
func render(w io.Writer, res *models.AnalysisResult, topN int) error {
	var sb strings.Builder

	for _, warn := range res.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", warn)
	}
	fmt.Fprintf(&sb, "English translation: %s\n", res.TranslatedText)
	fmt.Fprintf(&sb, "Sentiment: %.2f\n", res.Polarity)
	fmt.Fprintf(&sb, "Subjectivity: %.2f\n", res.Subjectivity)
	fmt.Fprintf(&sb, "Verdict: %s\n", verdicts[res.Label])

	top := res.Frequencies.Top(topN)
	if len(top) == 0 {
		sb.WriteString("\nNo frequent words.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	sb.WriteString("\nFrequent words:\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	maxCount := top[0].Count
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range top {
		width := max(1, e.Count*maxBarWidth/maxCount)
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", e.Word, e.Count, strings.Repeat("#", width))
	}
	return tw.Flush()
}
