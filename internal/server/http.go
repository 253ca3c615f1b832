package server

import (
	_ "embed"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-api/internal/config"
	"github.com/gokatarajesh/quiz-api/internal/logging"
	"github.com/gokatarajesh/quiz-api/internal/quiz"
	httperrors "github.com/gokatarajesh/quiz-api/pkg/http/errors"
)

//go:embed openapi.json
var openAPIDocument []byte

// NewHTTPServer wires base routes (health, metrics), the quiz API and the answer feed.
// feedHandler can be nil if the live feed is disabled.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, quizHandlers *quiz.HTTPHandlers, feedHandler http.HandlerFunc) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, quizHandlers, feedHandler),
	}
}

// NewHandler builds the routed handler with CORS and request logging applied.
func NewHandler(cfg *config.App, logger zerolog.Logger, quizHandlers *quiz.HTTPHandlers, feedHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api", serveOpenAPI)
	mux.HandleFunc("GET /api-json", serveOpenAPI)

	quizHandlers.Register(mux)

	if feedHandler != nil {
		mux.HandleFunc("GET /ws/quizzes/{quizId}", feedHandler)
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Cannot "+r.Method+" "+r.URL.Path)
	})

	return logging.Middleware(logger)(corsMiddleware(cfg.CORS)(mux))
}

func serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openAPIDocument)
}

func corsMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)
	wildcard := slices.Contains(cfg.AllowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || slices.Contains(cfg.AllowedOrigins, origin)) {
				// Credentials cannot be combined with a literal "*", so the origin is echoed.
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
