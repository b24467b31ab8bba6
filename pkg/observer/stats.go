package observer

import (
	"context"
	"fmt"

	"github.com/matzehuels/hotnet/pkg/analysis"
	"github.com/matzehuels/hotnet/pkg/config"
)

const (
	// TypeGraphStats is the registry key of [GraphStats].
	TypeGraphStats = "graph_stats"
	// TypeDegreeStats is the registry key of [DegreeStats].
	TypeDegreeStats = "degree_stats"
)

// clusteringProbes is the number of leading nodes whose clustering
// coefficient graph_stats reports.
const clusteringProbes = 10

// GraphStatsReport summarizes the undirected overlay.
type GraphStatsReport struct {
	Clustering []float64            `json:"clustering"` // nodes 0..len-1
	Paths      analysis.PathSummary `json:"paths"`
}

// GraphStats reports clustering of the first nodes and the path lengths
// from one source, on the undirected view.
type GraphStats struct {
	name    string
	source  int
	minSize int
}

// NewGraphStats creates the observer from its configuration.
func NewGraphStats(cfg config.Observer) (Observer, error) {
	return &GraphStats{name: cfg.Name, source: cfg.Source, minSize: cfg.MinSize}, nil
}

func (g *GraphStats) Name() string { return g.name }
func (g *GraphStats) Type() string { return TypeGraphStats }

func (g *GraphStats) Observe(ctx context.Context, snap *Snapshot) (Report, error) {
	if snap.Size() < g.minSize {
		return skipped(g, fmt.Sprintf("network has %d nodes, need at least %d", snap.Size(), g.minSize)), nil
	}
	view := snap.View(true)

	rep := &GraphStatsReport{Clustering: make([]float64, min(clusteringProbes, snap.Size()))}
	for i := range rep.Clustering {
		c, err := analysis.ClusteringCoefficient(view, i)
		if err != nil {
			return Report{}, err
		}
		rep.Clustering[i] = c
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	paths, err := analysis.PathLengths(view, g.source)
	if err != nil {
		return Report{}, err
	}
	rep.Paths = paths
	return Report{Name: g.name, Type: TypeGraphStats, Graph: rep}, nil
}

// DegreeStats reports the construction-time in-degree and hop
// distributions.
type DegreeStats struct {
	name string
}

// NewDegreeStats creates the observer from its configuration.
func NewDegreeStats(cfg config.Observer) (Observer, error) {
	return &DegreeStats{name: cfg.Name}, nil
}

func (d *DegreeStats) Name() string { return d.name }
func (d *DegreeStats) Type() string { return TypeDegreeStats }

func (d *DegreeStats) Observe(_ context.Context, snap *Snapshot) (Report, error) {
	ds := analysis.DegreeSummary(snap.Nodes)
	return Report{Name: d.name, Type: TypeDegreeStats, Degree: &ds}, nil
}
