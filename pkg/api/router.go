package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/prefgraph/pkg/pipeline"
)

// Config configures the router.
type Config struct {
	Runner *pipeline.Runner
	Logger *log.Logger

	// RateLimit is the sustained requests per second allowed per client,
	// with bursts up to Burst. Zero disables limiting.
	RateLimit float64
	Burst     int

	// RequireNormalized and Tolerance are applied to every decide and
	// render request. A request may tighten but not relax them.
	RequireNormalized bool
	Tolerance         float64

	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(Instrument)

	h := &handler{cfg: cfg}

	r.Get("/health", h.health)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg.RateLimit, cfg.Burst))

		r.Post("/decide", h.decide)
		r.Post("/generate", h.generate)
		r.Post("/render", h.render)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found", Code: "NOT_FOUND"})
	})

	return r
}
