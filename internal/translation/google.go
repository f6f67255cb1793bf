package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"
	DefaultChunkSize = 1500
)

// GoogleOptions configures a GoogleTranslator.
type GoogleOptions struct {
	BaseURL    string
	ChunkSize  int
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// GoogleTranslator calls the public Google Translate gtx endpoint.
type GoogleTranslator struct {
	baseURL   string
	chunkSize int
	userAgent string
	client    *http.Client
}

func NewGoogleTranslator(opts GoogleOptions) *GoogleTranslator {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &GoogleTranslator{baseURL: baseURL, chunkSize: chunkSize, userAgent: opts.UserAgent, client: client}
}

// Translate splits text into rune chunks and concatenates the translated
// fragments. Any failed chunk fails the whole call.
func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if source == "" {
		source = AutoDetect
	}

	chunks := splitRunes(text, g.chunkSize)
	var sb strings.Builder
	for i, chunk := range chunks {
		out, err := g.translateChunk(ctx, chunk, source, target)
		if err != nil {
			return "", &TranslationError{
				Message: fmt.Sprintf("google translate chunk %d/%d failed", i+1, len(chunks)),
				Cause:   err,
			}
		}
		sb.WriteString(out)
	}

	if len(chunks) > 1 {
		slog.Debug("[GoogleTranslator] Translated chunked text",
			slog.Int("chunks", len(chunks)),
			slog.Int("runes", len([]rune(text))))
	}
	return sb.String(), nil
}

// CheckHealth translates a single word.
func (g *GoogleTranslator) CheckHealth(ctx context.Context) error {
	_, err := g.translateChunk(ctx, "hola", AutoDetect, "en")
	return err
}

func (g *GoogleTranslator) translateChunk(ctx context.Context, chunk, source, target string) (string, error) {
	params := url.Values{}
	params.Add("client", "gtx")
	params.Add("sl", source)
	params.Add("tl", target)
	params.Add("dt", "t")
	params.Add("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the sentence fragments from a
// [[["translated","original",...],...],...] payload.
func parseGoogleResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(root) == 0 {
		return "", fmt.Errorf("failed to parse response: empty payload")
	}

	var sentences []json.RawMessage
	if err := json.Unmarshal(root[0], &sentences); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var sb strings.Builder
	for _, raw := range sentences {
		var parts []json.RawMessage
		if err := json.Unmarshal(raw, &parts); err != nil || len(parts) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(parts[0], &fragment); err != nil {
			continue
		}
		sb.WriteString(fragment)
	}
	return sb.String(), nil
}

func splitRunes(text string, size int) []string {
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

var _ Translator = (*GoogleTranslator)(nil)
