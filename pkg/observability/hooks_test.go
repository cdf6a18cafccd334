package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDecisionHooks{}
	d.OnDecideStart(ctx, 3, 2)
	d.OnDecideComplete(ctx, 3, 2, time.Second, nil)
	d.OnRenderStart(ctx, "svg")
	d.OnRenderComplete(ctx, "svg", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "decision")
	c.OnCacheMiss(ctx, "render")
	c.OnCacheSet(ctx, "decision", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/v1/decide")
	h.OnResponse(ctx, "POST", "/api/v1/decide", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Decision().(NoopDecisionHooks); !ok {
		t.Error("Decision() should return NoopDecisionHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customDecision := &testDecisionHooks{}
	SetDecisionHooks(customDecision)
	if Decision() != customDecision {
		t.Error("SetDecisionHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Decision().(NoopDecisionHooks); !ok {
		t.Error("Reset() should restore NoopDecisionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testDecisionHooks{}
	SetDecisionHooks(custom)
	SetDecisionHooks(nil)

	if Decision() != custom {
		t.Error("SetDecisionHooks(nil) should be ignored")
	}
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheusHooks(reg)

	p.OnDecideStart(ctx, 3, 2)
	p.OnDecideComplete(ctx, 3, 2, time.Millisecond, nil)
	p.OnDecideComplete(ctx, 3, 2, time.Millisecond, errors.New("boom"))
	p.OnRenderComplete(ctx, "svg", time.Millisecond, nil)
	p.OnCacheHit(ctx, "decision")
	p.OnCacheMiss(ctx, "decision")
	p.OnCacheSet(ctx, "decision", 100)
	p.OnRequest(ctx, "POST", "/api/v1/decide")
	p.OnResponse(ctx, "POST", "/api/v1/decide", 200, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	got := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				got[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				got[mf.GetName()] += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				got[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	want := map[string]float64{
		"prefgraph_decisions_total":               2,
		"prefgraph_decision_duration_seconds":     2,
		"prefgraph_decision_alternatives":         1,
		"prefgraph_renders_total":                 1,
		"prefgraph_cache_operations_total":        3,
		"prefgraph_cache_written_bytes_total":     100,
		"prefgraph_http_requests_in_flight":       0,
		"prefgraph_http_requests_total":           1,
		"prefgraph_http_request_duration_seconds": 1,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}
}

type testDecisionHooks struct{ NoopDecisionHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
