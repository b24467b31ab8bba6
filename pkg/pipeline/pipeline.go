// Package pipeline runs a configured experiment end to end: grow the overlay,
// run the observers, and cache the result.
//
// The CLI and the API server both go through a [Runner], so caching,
// logging and instrumentation behave the same for every entry point.
//
// # Stages
//
//  1. Build: initialize and grow the overlay from the topology section
//  2. Observe: run every configured observer on the finished snapshot
//
// Construction is deterministic for a given configuration, so the complete
// [Result] is cached under a hash of the defaulted configuration. A cached
// result carries the reports but not the network itself.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	for _, rep := range result.Reports {
//	    // ...
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/hotnet/pkg/config"
	"github.com/matzehuels/hotnet/pkg/hot"
	"github.com/matzehuels/hotnet/pkg/observer"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

// Options contains the inputs of one run.
type Options struct {
	Config config.Config `json:"config"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// OnStage, if set, is called as the run enters each stage.
	OnStage func(stage Stage) `json:"-"`
}

// Stage names a step of [Runner.Execute].
type Stage string

const (
	StageBuild   Stage = "build"
	StageObserve Stage = "observe"
)

func (o Options) enter(stage Stage) {
	if o.OnStage != nil {
		o.OnStage(stage)
	}
}

// Result contains the outputs of a run.
type Result struct {
	RunID      string            `json:"run_id"`
	ConfigHash string            `json:"config_hash"`
	Config     config.Config     `json:"config"`
	Build      hot.Stats         `json:"build"`
	Edges      int               `json:"edges"` // distinct directed edges
	Reports    []observer.Report `json:"reports"`
	Stats      Stats             `json:"stats"`
	CacheInfo  CacheInfo         `json:"cache"`

	// Network is the built overlay. It is nil when the result came from
	// the cache.
	Network *overlay.Network `json:"-"`
}

// Stats contains run timings.
type Stats struct {
	BuildTime   time.Duration `json:"build_time"`
	ObserveTime time.Duration `json:"observe_time"`
}

// CacheInfo tells whether the result was served from the cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// Skipped returns the reports whose observers skipped the network.
func (r *Result) Skipped() []observer.Report {
	var out []observer.Report
	for _, rep := range r.Reports {
		if rep.Skipped {
			out = append(out, rep)
		}
	}
	return out
}
