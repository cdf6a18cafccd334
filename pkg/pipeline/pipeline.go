// Package pipeline runs decisions and renders with caching, shared by the
// CLI and the API server.
//
// # Architecture
//
// The pipeline has two entry points on [Runner]:
//
//  1. Decide: validate the scenario, run [dominance.Decide] and cache the
//     resulting [dominance.Decision] keyed by the scenario content.
//  2. Render: draw one criterion's preference graph or the decision as DOT
//     or SVG, caching the artifact.
//
// Each run emits observability hooks and an OpenTelemetry span.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Decide(ctx, pipeline.Options{Scenario: s})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Decision.Answer.Alternative())
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prefgraph/pkg/cache"
	"github.com/matzehuels/prefgraph/pkg/dominance"
	perrors "github.com/matzehuels/prefgraph/pkg/errors"
	"github.com/matzehuels/prefgraph/pkg/scenario"
)

// =============================================================================
// Formats
// =============================================================================

const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats lists the render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a decision run.
type Options struct {
	Scenario *scenario.Scenario `json:"scenario"`

	// RequireNormalized rejects weights not summing to 1 within Tolerance.
	RequireNormalized bool    `json:"require_normalized,omitempty"`
	Tolerance         float64 `json:"tolerance,omitempty"`

	// Refresh bypasses cache reads; the fresh result is still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Validate checks that a scenario is present and well formed.
func (o *Options) Validate() error {
	if o.Scenario == nil {
		return perrors.New(perrors.ErrCodeMissingInput, "scenario is required")
	}
	return o.Scenario.Validate()
}

// Problem returns the decision input for the scenario and options.
func (o *Options) Problem() dominance.Problem {
	p := o.Scenario.Problem()
	p.RequireNormalized = o.RequireNormalized
	p.Tolerance = o.Tolerance
	return p
}

// DecisionKeyOpts returns the cache key options.
func (o *Options) DecisionKeyOpts() cache.DecisionKeyOpts {
	return cache.DecisionKeyOpts{
		RequireNormalized: o.RequireNormalized,
		Tolerance:         o.Tolerance,
	}
}

// RenderOptions configures a render run. Exactly one of Criterion and
// Decision selects what to draw.
type RenderOptions struct {
	Options

	Criterion int    `json:"criterion,omitempty"`
	Decision  bool   `json:"decision,omitempty"`
	Format    string `json:"format,omitempty"`
	Detailed  bool   `json:"detailed,omitempty"`
}

// ValidateAndSetDefaults checks the target and format, defaulting the
// format to SVG.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	switch {
	case o.Decision && o.Criterion != 0:
		return perrors.New(perrors.ErrCodeInvalidInput, "choose either a criterion or the decision, not both")
	case !o.Decision && o.Criterion == 0:
		return perrors.New(perrors.ErrCodeMissingInput, "choose a criterion or the decision to render")
	case !o.Decision:
		if _, ok := o.Scenario.Criterion(o.Criterion); !ok {
			return perrors.New(perrors.ErrCodeInvalidInput, "scenario has no criterion %d", o.Criterion)
		}
	}
	return nil
}

// RenderKeyOpts returns the cache key options.
func (o *RenderOptions) RenderKeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Criterion: o.Criterion,
		Decision:  o.Decision,
		Format:    o.Format,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outcome of a decision run.
type Result struct {
	Decision     *dominance.Decision
	ScenarioHash string
	CacheHit     bool
	Duration     time.Duration
}

// Artifact is a rendered graph.
type Artifact struct {
	Format   string
	Data     []byte
	CacheHit bool
	Duration time.Duration
}

// ContentType returns the MIME type of the artifact.
func (a *Artifact) ContentType() string {
	if a.Format == FormatSVG {
		return "image/svg+xml"
	}
	return "text/vnd.graphviz; charset=utf-8"
}
