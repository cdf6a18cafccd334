package pipeline

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/matzehuels/prefgraph/pkg/cache"
	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/observability"
	"github.com/matzehuels/prefgraph/pkg/prefgraph"
	"github.com/matzehuels/prefgraph/pkg/render/nodelink"
)

var tracer = otel.Tracer("github.com/matzehuels/prefgraph/pkg/pipeline")

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Decide runs the decision pipeline for opts.Scenario, reading and writing
// the cache.
func (r *Runner) Decide(ctx context.Context, opts Options) (res *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	s := opts.Scenario
	start := time.Now()

	ctx, span := tracer.Start(ctx, "pipeline.Decide")
	defer span.End()
	span.SetAttributes(
		attribute.Int("alternatives", s.Alternatives),
		attribute.Int("criteria", len(s.Criteria)),
	)

	hooks := observability.Decision()
	hooks.OnDecideStart(ctx, s.Alternatives, len(s.Criteria))
	defer func() {
		hooks.OnDecideComplete(ctx, s.Alternatives, len(s.Criteria), time.Since(start), err)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	p := opts.Problem()
	hash, err := cache.HashJSON(p)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "hash scenario")
	}
	key := r.Keyer.DecisionKey(hash, opts.DecisionKeyOpts())

	if !opts.Refresh {
		if d, ok := r.cachedDecision(ctx, key); ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			logger.Debug("decision cache hit", "hash", hash[:12])
			return &Result{Decision: d, ScenarioHash: hash, CacheHit: true, Duration: time.Since(start)}, nil
		}
	}

	d, err := dominance.Decide(p)
	if err != nil {
		return nil, err
	}
	logger.Debug("decided",
		"alternatives", d.Alternatives,
		"criteria", len(d.Criteria),
		"answer", d.Answer.Alternative(),
		"value", d.Answer.Value)

	if data, err := json.Marshal(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLDecision)); err != nil {
			logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "decision", len(data))
		}
	}

	span.SetAttributes(
		attribute.Bool("cache_hit", false),
		attribute.Int("answer", d.Answer.Alternative()),
	)
	return &Result{Decision: d, ScenarioHash: hash, Duration: time.Since(start)}, nil
}

func (r *Runner) cachedDecision(ctx context.Context, key string) (*dominance.Decision, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "decision")
		return nil, false
	}
	var d dominance.Decision
	if err := json.Unmarshal(data, &d); err != nil {
		observability.Cache().OnCacheMiss(ctx, "decision")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "decision")
	return &d, true
}

// Render draws the graph selected by opts, reading and writing the cache.
// Rendering the decision runs [Runner.Decide] first, which may itself be
// served from the cache.
func (r *Runner) Render(ctx context.Context, opts RenderOptions) (art *Artifact, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts.Options)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "pipeline.Render")
	defer span.End()
	span.SetAttributes(
		attribute.String("format", opts.Format),
		attribute.Int("criterion", opts.Criterion),
		attribute.Bool("decision", opts.Decision),
	)

	hooks := observability.Decision()
	hooks.OnRenderStart(ctx, opts.Format)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	hash, err := cache.HashJSON(opts.Problem())
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "hash scenario")
	}
	keyOpts := opts.RenderKeyOpts()
	if opts.Detailed {
		keyOpts.Format += "+detailed"
	}
	key := r.Keyer.RenderKey(hash, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return &Artifact{Format: opts.Format, Data: data, CacheHit: true, Duration: time.Since(start)}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	dot, err := r.dot(ctx, opts)
	if err != nil {
		return nil, err
	}

	data := []byte(dot)
	if opts.Format == FormatSVG {
		if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "render svg")
		}
	}
	logger.Debug("rendered", "format", opts.Format, "bytes", len(data))

	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLRender)); err != nil {
		logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}
	return &Artifact{Format: opts.Format, Data: data, Duration: time.Since(start)}, nil
}

func (r *Runner) dot(ctx context.Context, opts RenderOptions) (string, error) {
	s := opts.Scenario
	if opts.Decision {
		res, err := r.Decide(ctx, opts.Options)
		if err != nil {
			return "", err
		}
		title := s.Name
		if title == "" {
			title = "decision"
		}
		return nodelink.DecisionDOT(res.Decision, nodelink.Options{Detailed: opts.Detailed, Title: title}), nil
	}

	c, _ := s.Criterion(opts.Criterion)
	g, err := prefgraph.FromRelations(c.Relations)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidRelation, err, "criterion %d", c.ID)
	}
	return nodelink.ToDOT(g, s.Alternatives, nodelink.Options{
		Detailed: opts.Detailed,
		Title:    "criterion " + strconv.Itoa(c.ID),
	}), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
