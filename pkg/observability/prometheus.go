package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface on Prometheus collectors.
type PrometheusHooks struct {
	decisions       *prometheus.CounterVec
	decisionLatency prometheus.Histogram
	alternatives    prometheus.Histogram
	renders         *prometheus.CounterVec
	renderLatency   *prometheus.HistogramVec
	cacheOps        *prometheus.CounterVec
	cacheBytes      *prometheus.CounterVec
	httpInFlight    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// Use prometheus.DefaultRegisterer in servers and a fresh registry in tests;
// registering twice with the same registerer panics.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		decisions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefgraph_decisions_total",
				Help: "Decisions computed, by outcome.",
			},
			[]string{"status"},
		),
		decisionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prefgraph_decision_duration_seconds",
			Help:    "Time spent running the decision pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
		alternatives: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prefgraph_decision_alternatives",
			Help:    "Number of alternatives per decision.",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
		renders: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefgraph_renders_total",
				Help: "Graphs rendered, by format and outcome.",
			},
			[]string{"format", "status"},
		),
		renderLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prefgraph_render_duration_seconds",
				Help:    "Time spent rendering graphs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		cacheOps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefgraph_cache_operations_total",
				Help: "Cache lookups and writes, by key type and result.",
			},
			[]string{"key_type", "result"},
		),
		cacheBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefgraph_cache_written_bytes_total",
				Help: "Bytes written to the cache.",
			},
			[]string{"key_type"},
		),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "prefgraph_http_requests_in_flight",
			Help: "API requests currently being served.",
		}),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prefgraph_http_requests_total",
				Help: "API requests served, by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		httpLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prefgraph_http_request_duration_seconds",
				Help:    "API request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *PrometheusHooks) OnDecideStart(_ context.Context, alternatives, _ int) {
	p.alternatives.Observe(float64(alternatives))
}

func (p *PrometheusHooks) OnDecideComplete(_ context.Context, _, _ int, d time.Duration, err error) {
	p.decisions.WithLabelValues(status(err)).Inc()
	p.decisionLatency.Observe(d.Seconds())
}

func (p *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	p.renders.WithLabelValues(format, status(err)).Inc()
	p.renderLatency.WithLabelValues(format).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string) {
	p.httpInFlight.Inc()
}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpInFlight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ DecisionHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
