package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hotnet/pkg/cache"
	"github.com/matzehuels/hotnet/pkg/config"
	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/hot"
	"github.com/matzehuels/hotnet/pkg/observability"
	"github.com/matzehuels/hotnet/pkg/observer"
	"github.com/matzehuels/hotnet/pkg/overlay"
	"github.com/matzehuels/hotnet/pkg/rng"
)

// cacheKeyType labels run results in cache hooks.
const cacheKeyType = "run"

// Runner encapsulates run execution with caching.
//
// The Runner is stateless except for the cache, registry and logger - it
// doesn't store results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *observer.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The registry is [observer.DefaultRegistry]; replace the field to add types.
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
		Cache:    c,
		Keyer:    keyer,
		Registry: observer.DefaultRegistry(),
		Logger:   logger,
	}
}

// Execute runs build → observe with caching.
//
// The configuration is defaulted and validated, and every observer is
// resolved, before anything is built. Cache failures are logged and never
// fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	observers, err := r.Registry.Resolve(cfg.Observers)
	if err != nil {
		return nil, err
	}

	hash, err := cache.HashJSON(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	key := r.Keyer.RunKey(hash)

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			cached.RunID = uuid.NewString()
			cached.CacheInfo.Hit = true
			r.Logger.Info("served run from cache", "run", cached.RunID, "config", hash[:12])
			return cached, nil
		}
	}

	result := &Result{
		RunID:      uuid.NewString(),
		ConfigHash: hash,
		Config:     cfg,
	}

	opts.enter(StageBuild)
	buildStart := time.Now()
	net, stats, err := r.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Network = net
	result.Build = stats
	result.Edges = net.Graph.EdgeCount()
	result.Stats.BuildTime = time.Since(buildStart)

	opts.enter(StageObserve)
	observeStart := time.Now()
	reports, err := r.Observe(ctx, net, observers)
	if err != nil {
		return nil, fmt.Errorf("observe: %w", err)
	}
	result.Reports = reports
	result.Stats.ObserveTime = time.Since(observeStart)

	r.store(ctx, key, result)
	return result, nil
}

// Build grows the overlay described by cfg. cfg must already be defaulted
// and validated.
func (r *Runner) Build(ctx context.Context, cfg config.Config) (*overlay.Network, hot.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, hot.Stats{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, cfg.Size, cfg.Topology.OutDegree)

	start := time.Now()
	net := overlay.NewNetwork(cfg.Size)
	stats, err := hot.Build(net, cfg.Topology.Hot(), rng.New(cfg.Seed), hot.WithLogger(r.Logger))
	elapsed := time.Since(start)
	hooks.OnBuildComplete(ctx, cfg.Size, net.Graph.EdgeCount(), elapsed, err)
	if err != nil {
		return nil, hot.Stats{}, err
	}

	r.Logger.Info("built overlay",
		"nodes", stats.Nodes,
		"edges", net.Graph.EdgeCount(),
		"max_hop", stats.MaxHop,
		"duration", elapsed)
	return net, stats, nil
}

// Observe runs observers in order on net. A skipped observer is logged as a
// warning; an observer error aborts the run.
func (r *Runner) Observe(ctx context.Context, net *overlay.Network, observers []observer.Observer) ([]observer.Report, error) {
	hooks := observability.Pipeline()
	snap := observer.NewSnapshot(net)
	reports := make([]observer.Report, 0, len(observers))

	for _, o := range observers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnObserveStart(ctx, o.Name(), o.Type())
		start := time.Now()
		rep, err := o.Observe(ctx, snap)
		elapsed := time.Since(start)
		hooks.OnObserveComplete(ctx, o.Name(), o.Type(), rep.Skipped, elapsed, err)
		if err != nil {
			return nil, fmt.Errorf("observer %q: %w", o.Name(), err)
		}

		if rep.Skipped {
			r.Logger.Warn("observer skipped", "observer", o.Name(), "reason", rep.Reason)
		} else {
			r.Logger.Info("observed", "observer", o.Name(), "type", o.Type(), "duration", elapsed)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var cached Result
	if err := json.Unmarshal(data, &cached); err != nil {
		// Unreadable entry - treat as miss and overwrite later
		r.Logger.Debug("discarding cached run", "error", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &cached, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(result)
	if err != nil {
		r.Logger.Warn("cannot encode run for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.RunTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
