package observer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hotnet/pkg/analysis"
	"github.com/matzehuels/hotnet/pkg/config"
)

// TypeBallExpansion is the registry key of [BallExpansion].
const TypeBallExpansion = "ball_expansion"

// BallReport holds either the raw per-source histograms or their
// aggregate, depending on the observer's stats setting.
type BallReport struct {
	Sources    int                     `json:"sources"`
	Undirected bool                    `json:"undirected"`
	Histograms [][]int                 `json:"histograms,omitempty"`
	Paths      *analysis.Summary       `json:"paths,omitempty"`
	Levels     []analysis.LevelSummary `json:"levels,omitempty"`
}

// BallExpansion probes the ball-expansion histogram of nodes
// 0..min(samples, N)-1.
type BallExpansion struct {
	name       string
	maxDepth   int
	samples    int
	undirected bool
	stats      bool
	minSize    int
}

// NewBallExpansion creates the observer from its configuration.
func NewBallExpansion(cfg config.Observer) (Observer, error) {
	return &BallExpansion{
		name:       cfg.Name,
		maxDepth:   cfg.MaxDepth,
		samples:    cfg.Samples,
		undirected: cfg.Undirected,
		stats:      cfg.Stats,
		minSize:    cfg.MinSize,
	}, nil
}

func (b *BallExpansion) Name() string { return b.name }
func (b *BallExpansion) Type() string { return TypeBallExpansion }

// Observe computes the histograms concurrently; the report lists them in
// source order.
func (b *BallExpansion) Observe(ctx context.Context, snap *Snapshot) (Report, error) {
	if snap.Size() < b.minSize {
		return skipped(b, fmt.Sprintf("network has %d nodes, need at least %d", snap.Size(), b.minSize)), nil
	}
	view := snap.View(b.undirected)
	n := min(b.samples, snap.Size())
	hists := make([][]int, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for src := 0; src < n; src++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := analysis.BallExpansion(view, src, b.maxDepth)
			hists[src] = h
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := &BallReport{Sources: n, Undirected: b.undirected}
	if !b.stats {
		rep.Histograms = hists
	} else {
		var paths analysis.PathAccumulator
		var levels analysis.LevelAccumulator
		for _, h := range hists {
			paths.AddHistogram(h)
			levels.Add(h)
		}
		s := paths.Summary()
		rep.Paths = &s
		rep.Levels = levels.Levels()
	}
	return Report{Name: b.name, Type: TypeBallExpansion, Ball: rep}, nil
}
