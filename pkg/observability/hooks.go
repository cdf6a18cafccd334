// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through package-level hook registries; main
// decides which backend receives them. The defaults are no-ops, so the
// decision core and the CLI carry no metrics cost unless a backend is
// registered. [PrometheusHooks] is the backend used by the API server.
//
// # Usage
//
// Register hooks at application startup:
//
//	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	observability.SetDecisionHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Libraries call hooks to emit events:
//
//	observability.Decision().OnDecideStart(ctx, alternatives, criteria)
//	// ... run the pipeline ...
//	observability.Decision().OnDecideComplete(ctx, alternatives, criteria, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Decision Hooks
// =============================================================================

// DecisionHooks receives events from the decision pipeline.
type DecisionHooks interface {
	// Decide events
	OnDecideStart(ctx context.Context, alternatives, criteria int)
	OnDecideComplete(ctx context.Context, alternatives, criteria int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations. keyType is "decision"
// or "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server. OnRequest fires before
// routing and sees the request path. OnResponse receives the chi route
// pattern, which keeps label cardinality bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDecisionHooks is a no-op implementation of DecisionHooks.
type NoopDecisionHooks struct{}

func (NoopDecisionHooks) OnDecideStart(context.Context, int, int) {}
func (NoopDecisionHooks) OnDecideComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopDecisionHooks) OnRenderStart(context.Context, string)                          {}
func (NoopDecisionHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	decisionHooks DecisionHooks = NoopDecisionHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetDecisionHooks registers custom decision hooks.
// This should be called once at application startup.
func SetDecisionHooks(h DecisionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		decisionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Decision returns the registered decision hooks.
func Decision() DecisionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return decisionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	decisionHooks = NoopDecisionHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
