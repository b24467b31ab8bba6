// Package prom implements the observability hooks with Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/hotnet/pkg/observability"
)

// Metrics implements [observability.PipelineHooks], [observability.CacheHooks]
// and [observability.HTTPHooks].
type Metrics struct {
	builds         *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	buildEdges     prometheus.Histogram
	observations   *prometheus.CounterVec
	observeSeconds *prometheus.HistogramVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     prometheus.Counter
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
	requestErrors  *prometheus.CounterVec
}

// New registers the metrics with reg and returns the hooks.
// Registering twice on the same registry panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotnet_builds_total",
			Help: "Topology builds by result",
		}, []string{"result"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hotnet_build_duration_seconds",
			Help:    "Topology build duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		buildEdges: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hotnet_build_edges",
			Help:    "Distinct edges per built topology",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),
		observations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotnet_observations_total",
			Help: "Observer runs by type and result",
		}, []string{"type", "result"}),
		observeSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotnet_observe_duration_seconds",
			Help:    "Observer run duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"type"}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotnet_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "hotnet_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotnet_http_requests_total",
			Help: "API responses by method, route and status",
		}, []string{"method", "route", "status"}),
		requestSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotnet_http_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		requestErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotnet_http_errors_total",
			Help: "API requests that failed with an error",
		}, []string{"method", "route"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) OnBuildStart(context.Context, int, int) {}

func (m *Metrics) OnBuildComplete(_ context.Context, _ int, edges int, d time.Duration, err error) {
	m.builds.WithLabelValues(result(err)).Inc()
	m.buildDuration.Observe(d.Seconds())
	if err == nil {
		m.buildEdges.Observe(float64(edges))
	}
}

func (m *Metrics) OnObserveStart(context.Context, string, string) {}

func (m *Metrics) OnObserveComplete(_ context.Context, _ string, kind string, skipped bool, d time.Duration, err error) {
	r := result(err)
	if err == nil && skipped {
		r = "skipped"
	}
	m.observations.WithLabelValues(kind, r).Inc()
	m.observeSeconds.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.requestErrors.WithLabelValues(method, route).Inc()
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
