package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue sums every series of the named counter family.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetricsRecordEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	ctx := context.Background()

	m.OnBuildComplete(ctx, 100, 198, time.Millisecond, nil)
	m.OnBuildComplete(ctx, 100, 0, time.Millisecond, errors.New("boom"))
	m.OnObserveComplete(ctx, "ball", "ball_expansion", false, time.Millisecond, nil)
	m.OnObserveComplete(ctx, "stats", "graph_stats", true, time.Millisecond, nil)
	m.OnCacheHit(ctx, "run")
	m.OnCacheMiss(ctx, "run")
	m.OnCacheSet(ctx, "run", 512)
	m.OnResponse(ctx, "POST", "/v1/runs", 200, time.Millisecond)
	m.OnError(ctx, "POST", "/v1/runs", errors.New("bad"))

	tests := []struct {
		name string
		want float64
	}{
		{"hotnet_builds_total", 2},
		{"hotnet_observations_total", 2},
		{"hotnet_cache_events_total", 3},
		{"hotnet_cache_written_bytes_total", 512},
		{"hotnet_http_requests_total", 1},
		{"hotnet_http_errors_total", 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reg, tt.name); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	New(reg)
}
