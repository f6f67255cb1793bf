package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultGoogleTTSURL = "https://translate.google.com/translate_tts"
	maxChunkRunes       = 100
)

// GoogleSynthesizer uses the public Google Translate TTS endpoint.
type GoogleSynthesizer struct {
	baseURL string
	client  *http.Client
}

func NewGoogleSynthesizer(baseURL string, client *http.Client) *GoogleSynthesizer {
	if baseURL == "" {
		baseURL = DefaultGoogleTTSURL
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &GoogleSynthesizer{baseURL: baseURL, client: client}
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := splitWords(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, &SynthesisError{Message: "no text to speak"}
	}

	var audio []byte
	for i, chunk := range chunks {
		segment, err := g.fetch(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			return nil, &SynthesisError{
				Message: fmt.Sprintf("segment %d/%d failed", i+1, len(chunks)),
				Cause:   err,
			}
		}
		audio = append(audio, segment...)
	}
	return audio, nil
}

func (g *GoogleSynthesizer) fetch(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Add("ie", "UTF-8")
	params.Add("client", "tw-ob")
	params.Add("tl", lang)
	params.Add("q", chunk)
	params.Add("total", strconv.Itoa(total))
	params.Add("idx", strconv.Itoa(idx))
	params.Add("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitWords packs whitespace-separated words into chunks of at most
// limit runes. Words longer than limit are split mid-word.
func splitWords(text string, limit int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= limit:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
	}
	flush()
	return chunks
}

var _ Synthesizer = (*GoogleSynthesizer)(nil)
