package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentilens/internal/analysis"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/sentiment"
	"github.com/spacesedan/sentilens/internal/wordfreq"
)

type analyzerMock struct {
	analyzeErr error
	speakErr   error
	audio      []byte
}

func (m *analyzerMock) Analyze(_ context.Context, text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, analysis.ErrEmptyInput
	}
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return &models.AnalysisResult{
		OriginalText:   text,
		TranslatedText: "translated: " + text,
		Polarity:       0.8,
		Subjectivity:   0.6,
		Label:          sentiment.Positive,
		Frequencies:    wordfreq.Count(text),
		AnalyzedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (m *analyzerMock) Speak(context.Context, *models.AnalysisResult) ([]byte, error) {
	if m.speakErr != nil {
		return nil, m.speakErr
	}
	return m.audio, nil
}

func newTestRouter(svc analyzer, healthy bool) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var ready atomic.Bool
	ready.Store(healthy)
	return NewRouter(NewAnalysisHandler(svc, logger), NewHealthHandler(&ready, "test"), logger)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_OK(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&analyzerMock{}, true)
	text := strings.Repeat("uno dos tres cuatro cinco seis siete ocho nueve diez once doce ", 2) + "uno"
	body, _ := json.Marshal(analyzeRequest{Text: text})

	rec := post(t, h, "/api/v1/analyze", string(body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp struct {
		OriginalText   string         `json:"original_text"`
		TranslatedText string         `json:"translated_text"`
		Polarity       float64        `json:"polarity"`
		Label          string         `json:"label"`
		Frequencies    wordfreq.Table `json:"frequencies"`
		TopWords       wordfreq.Table `json:"top_words"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, text, resp.OriginalText)
	assert.Equal(t, "positive", resp.Label)
	assert.InDelta(t, 0.8, resp.Polarity, 1e-9)
	assert.Len(t, resp.Frequencies, 12)
	require.Len(t, resp.TopWords, DefaultTopWords)
	assert.Equal(t, wordfreq.Entry{Word: "uno", Count: 3}, resp.TopWords[0])
	assert.Equal(t, wordfreq.Entry{Word: "dos", Count: 2}, resp.TopWords[1])
}

func TestAnalyze_TopWordsTruncated(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&analyzerMock{}, true)
	words := []string{"alfa", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"}
	body, _ := json.Marshal(analyzeRequest{Text: strings.Join(words, " ")})

	rec := post(t, h, "/api/v1/analyze", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Frequencies wordfreq.Table `json:"frequencies"`
		TopWords    wordfreq.Table `json:"top_words"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Frequencies, 12)
	require.Len(t, resp.TopWords, 10)
	assert.Equal(t, "alfa", resp.TopWords[0].Word)
	assert.Equal(t, "juliet", resp.TopWords[9].Word)
}

func TestAnalyze_BadRequests(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&analyzerMock{}, true)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"empty text", `{"text": "   "}`, http.StatusBadRequest, "please enter some text to analyze"},
		{"missing text", `{}`, http.StatusBadRequest, "please enter some text to analyze"},
		{"malformed json", `{"text":`, http.StatusBadRequest, "invalid request body"},
		{"too large", `{"text":"` + strings.Repeat("a", MaxRequestBody) + `"}`, http.StatusRequestEntityTooLarge, "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/api/v1/analyze", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.message, resp["error"])
		})
	}
}

func TestAnalyze_InternalError(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&analyzerMock{analyzeErr: errors.New("boom")}, true)
	rec := post(t, h, "/api/v1/analyze", `{"text":"hola"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&analyzerMock{}, true)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSpeech(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		svc    *analyzerMock
		body   string
		status int
	}{
		{"ok", &analyzerMock{audio: []byte("ID3audio")}, `{"text":"Me encanta"}`, http.StatusOK},
		{"empty text", &analyzerMock{}, `{"text":""}`, http.StatusBadRequest},
		{"synthesis failed", &analyzerMock{speakErr: errors.New("tts down")}, `{"text":"hola"}`, http.StatusBadGateway},
		{"not configured", &analyzerMock{speakErr: analysis.ErrSpeechUnavailable}, `{"text":"hola"}`, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestRouter(tt.svc, true), "/api/v1/speech", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
				assert.Equal(t, "positive", rec.Header().Get("X-Sentiment-Label"))
				assert.Equal(t, "ID3audio", rec.Body.String())
			}
		})
	}
}
