package speech

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleSynthesizer_Synthesize(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "UTF-8", q.Get("ie"))
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.Equal(t, "es", q.Get("tl"))
		mu.Lock()
		seen = append(seen, q.Get("q"))
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("[" + q.Get("idx") + "]"))
	}))
	defer srv.Close()

	g := NewGoogleSynthesizer(srv.URL, nil)
	audio, err := g.Synthesize(context.Background(), "El sentimiento del texto es positivo.", "es")

	require.NoError(t, err)
	assert.Equal(t, "[0]", string(audio))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"El sentimiento del texto es positivo."}, seen)
}

func TestGoogleSynthesizer_ConcatenatesSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer srv.Close()

	text := strings.Repeat("palabra ", 30)
	g := NewGoogleSynthesizer(srv.URL, nil)
	audio, err := g.Synthesize(context.Background(), text, "es")

	require.NoError(t, err)
	assert.Equal(t, "[0][1][2]", string(audio))
}

func TestGoogleSynthesizer_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGoogleSynthesizer(srv.URL, nil)

	_, err := g.Synthesize(context.Background(), "hola", "es")
	var serr *SynthesisError
	require.True(t, errors.As(err, &serr))
	assert.Contains(t, err.Error(), "503")

	_, err = g.Synthesize(context.Background(), "   ", "es")
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "no text to speak", serr.Message)
}

func TestSplitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits", "uno dos tres", 20, []string{"uno dos tres"}},
		{"word boundary", "uno dos tres", 7, []string{"uno dos", "tres"}},
		{"collapses whitespace", "  uno \n dos  ", 20, []string{"uno dos"}},
		{"long word", "abcdefgh ij", 3, []string{"abc", "def", "gh", "ij"}},
		{"empty", "", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitWords(tt.text, tt.limit))
		})
	}
}

func TestSplitWords_RespectsLimit(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("canción muy larguísima ", 40)
	for _, chunk := range splitWords(text, maxChunkRunes) {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), maxChunkRunes)
	}
}
