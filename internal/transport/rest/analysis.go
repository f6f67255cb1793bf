package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/spacesedan/sentilens/internal/analysis"
	"github.com/spacesedan/sentilens/internal/models"
	"github.com/spacesedan/sentilens/internal/transport/middleware"
	"github.com/spacesedan/sentilens/internal/wordfreq"
)

// DefaultTopWords is how many words the chart view shows.
const DefaultTopWords = 10

// analyzer is the subset of *analysis.Analyzer the handlers need.
type analyzer interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisResult, error)
	Speak(ctx context.Context, result *models.AnalysisResult) ([]byte, error)
}

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	svc analyzer
	log *slog.Logger
}

func NewAnalysisHandler(svc analyzer, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, log: logger.With("handler", "analysis")}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	*models.AnalysisResult
	TopWords wordfreq.Table `json:"top_words"`
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	result, ok := h.analyze(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		AnalysisResult: result,
		TopWords:       result.Frequencies.Top(DefaultTopWords),
	})
}

// Speech handles POST /api/v1/speech and returns the spoken verdict as MP3.
func (h *AnalysisHandler) Speech(w http.ResponseWriter, r *http.Request) {
	result, ok := h.analyze(w, r)
	if !ok {
		return
	}

	audio, err := h.svc.Speak(r.Context(), result)
	if err != nil {
		if errors.Is(err, analysis.ErrSpeechUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.log.ErrorContext(r.Context(), "[AnalysisHandler] Speech synthesis failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromCtx(r.Context())))
		writeError(w, http.StatusBadGateway, "speech synthesis failed")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.Header().Set("X-Sentiment-Label", string(result.Label))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (h *AnalysisHandler) analyze(w http.ResponseWriter, r *http.Request) (*models.AnalysisResult, bool) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	result, err := h.svc.Analyze(r.Context(), req.Text)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return result, true
}

func (h *AnalysisHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, analysis.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "[AnalysisHandler] Internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestIDFromCtx(r.Context())))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
