package api

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/prefgraph/pkg/buildinfo"
	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/pipeline"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

// maxBodyBytes caps request bodies. A scenario at the alternative and
// criteria limits fits comfortably.
const maxBodyBytes = 8 << 20

type handler struct {
	cfg Config
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

// health handles GET /health
func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Current()})
}

type decideResponse struct {
	Decision     *dominance.Decision `json:"decision"`
	Winner       int                 `json:"winner"`
	Pareto       bool                `json:"pareto"`
	ScenarioHash string              `json:"scenario_hash"`
	CacheHit     bool                `json:"cache_hit"`
	DurationMS   int64               `json:"duration_ms"`
}

// decide handles POST /api/v1/decide
func (h *handler) decide(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Options
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.applyDefaults(&req)

	res, err := h.cfg.Runner.Decide(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decideResponse{
		Decision:     res.Decision,
		Winner:       res.Decision.Answer.Alternative(),
		Pareto:       res.Decision.Pareto(),
		ScenarioHash: res.ScenarioHash,
		CacheHit:     res.CacheHit,
		DurationMS:   res.Duration.Milliseconds(),
	})
}

type generateRequest struct {
	Name         string  `json:"name,omitempty"`
	Alternatives int     `json:"alternatives"`
	Criteria     int     `json:"criteria"`
	Seed         *uint64 `json:"seed,omitempty"`
}

type generateResponse struct {
	Seed     uint64             `json:"seed"`
	Scenario *scenario.Scenario `json:"scenario"`
}

// generate handles POST /api/v1/generate
func (h *handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}
	s, err := scenario.Generate(scenario.NewSource(seed), req.Alternatives, req.Criteria)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	s.Name = req.Name
	writeJSON(w, http.StatusOK, generateResponse{Seed: seed, Scenario: s})
}

// render handles POST /api/v1/render
func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	var req pipeline.RenderOptions
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.applyDefaults(&req.Options)

	art, err := h.cfg.Runner.Render(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cacheStatus := "miss"
	if art.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", art.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) >= http.StatusInternalServerError {
		h.cfg.Logger.Error("request failed", "error", err, "request_id", chiMiddleware.GetReqID(r.Context()))
	}
	writeError(w, err)
}

func (h *handler) applyDefaults(opts *pipeline.Options) {
	opts.RequireNormalized = opts.RequireNormalized || h.cfg.RequireNormalized
	if opts.Tolerance == 0 {
		opts.Tolerance = h.cfg.Tolerance
	}
	opts.Logger = h.cfg.Logger
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case perrors.Is(err, perrors.ErrCodeRateLimited):
		return http.StatusTooManyRequests
	case perrors.Is(err, perrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case perrors.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	resp := errorResponse{Error: err.Error(), Code: string(perrors.GetCode(err))}
	if code == http.StatusInternalServerError {
		// Internal causes stay in the server log.
		resp = errorResponse{Error: "internal error", Code: string(perrors.ErrCodeInternal)}
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
