package rest

import (
	"log/slog"
	"net/http"

	"github.com/spacesedan/sentilens/internal/transport/middleware"
)

// MaxRequestBody limits JSON request bodies.
const MaxRequestBody = 1 << 20

// NewRouter wires the handlers behind the standard middleware chain.
func NewRouter(analysisH *AnalysisHandler, healthH *HealthHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthH.Live)
	mux.HandleFunc("GET /ready", healthH.Ready)
	mux.HandleFunc("POST /api/v1/analyze", analysisH.Analyze)
	mux.HandleFunc("POST /api/v1/speech", analysisH.Speech)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.MaxBodySize(MaxRequestBody),
	)(mux)
}
