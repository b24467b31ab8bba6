// Package observer runs analyses over a finished overlay and reports their
// results.
//
// Observers are configured by [config.Observer] entries and created through
// a [Registry] that maps each type key to a typed factory:
//
//	reg := observer.DefaultRegistry()
//	obs, err := reg.Resolve(cfg.Observers) // INVALID_CONFIG on unknown types
//	for _, o := range obs {
//	    rep, err := o.Observe(ctx, snap)
//	    ...
//	}
//
// The built-in types are ball_expansion, graph_stats and degree_stats.
// An observer that cannot analyze a network meaningfully (for example
// graph_stats on fewer than min_size nodes) returns a report with Skipped
// set and a Reason instead of an error.
package observer

import (
	"context"
	"sync"

	"github.com/matzehuels/hotnet/pkg/analysis"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

// Observer analyzes a snapshot.
type Observer interface {
	Name() string
	Type() string
	Observe(ctx context.Context, snap *Snapshot) (Report, error)
}

// Snapshot is the read-only state observers work on. The undirected view
// is built on first use and shared by all observers.
type Snapshot struct {
	Graph *overlay.Graph
	Nodes *overlay.Store

	once  sync.Once
	undir *overlay.Undirected
}

// NewSnapshot wraps a built network. net must not be mutated afterwards.
func NewSnapshot(net *overlay.Network) *Snapshot {
	return &Snapshot{Graph: net.Graph, Nodes: net.Nodes}
}

// Size returns the number of nodes.
func (s *Snapshot) Size() int { return s.Graph.Size() }

// View returns the directed graph or its undirected view.
func (s *Snapshot) View(undirected bool) overlay.View {
	if !undirected {
		return s.Graph
	}
	s.once.Do(func() { s.undir = overlay.NewUndirected(s.Graph) })
	return s.undir
}

// Report is the outcome of one observer run. Exactly one of the payload
// fields is set unless Skipped is true.
type Report struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`

	Ball   *BallReport           `json:"ball,omitempty"`
	Graph  *GraphStatsReport     `json:"graph,omitempty"`
	Degree *analysis.DegreeStats `json:"degree,omitempty"`
}

func skipped(o Observer, reason string) Report {
	return Report{Name: o.Name(), Type: o.Type(), Skipped: true, Reason: reason}
}
