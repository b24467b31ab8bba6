package hot

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

// wirer creates edges and keeps the in-degree bookkeeping that goes with them.
type wirer struct {
	net    *overlay.Network
	logger *log.Logger
	stats  Stats
}

// link requests the edge from→to. The target's in-degree counts the request
// even when the edge already exists.
func (w *wirer) link(from, to int) error {
	w.net.Nodes.At(to).InDegree++
	w.stats.EdgesCreated++
	added, err := w.net.Graph.SetEdge(from, to)
	if err != nil {
		return err
	}
	if !added {
		w.stats.DuplicateEdges++
	}
	return nil
}

func (w *wirer) pair(i, j int) error {
	if err := w.link(i, j); err != nil {
		return err
	}
	return w.link(j, i)
}

// Grow wires net: the root ring when outDegree > 1, then every node from
// outDegree up to N-1 in increasing index order.
//
// Roots must have been initialized with the same outDegree (NOT_INITIALIZED
// otherwise). Each new node links to the outDegree earlier nodes with the
// lowest hop + alfa·distance, ties going to the lowest index, and takes
// hop = 1 + the smallest parent hop.
func Grow(net *overlay.Network, outDegree int, alfa float64, opts ...Option) (Stats, error) {
	if net == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "network must not be nil")
	}
	if err := validateOutDegree(outDegree); err != nil {
		return Stats{}, err
	}
	if err := validateAlfa(alfa); err != nil {
		return Stats{}, err
	}
	if err := validateSize(net.Size(), outDegree); err != nil {
		return Stats{}, err
	}
	for i := 0; i < outDegree; i++ {
		if !net.Nodes.At(i).Root {
			return Stats{}, errors.New(errors.ErrCodeNotInitialized, "node %d is not a root; run Initialize first", i)
		}
	}

	o := buildOptions(opts)
	if _, err := ParseRingMode(string(o.ring)); err != nil {
		return Stats{}, err
	}
	w := &wirer{net: net, logger: o.logger}
	w.stats.Nodes = net.Size()
	w.stats.Roots = outDegree

	if outDegree > 1 {
		if err := w.ring(outDegree, o.ring); err != nil {
			return w.stats, err
		}
	}

	for i := outDegree; i < net.Size(); i++ {
		if err := w.attach(i, outDegree, alfa); err != nil {
			return w.stats, err
		}
	}

	w.logger.Debug("growth complete", "nodes", w.stats.Nodes, "edges", net.Graph.EdgeCount(), "max_hop", w.stats.MaxHop)
	return w.stats, nil
}

// WireRootRing links the roots of net as selected by mode and returns the
// edge accounting of the ring alone. It does nothing when outDegree <= 1.
// [Grow] calls it; it is exported for callers that wire in stages.
func WireRootRing(net *overlay.Network, outDegree int, mode RingMode, opts ...Option) (Stats, error) {
	if net == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "network must not be nil")
	}
	if err := validateOutDegree(outDegree); err != nil {
		return Stats{}, err
	}
	if err := validateSize(net.Size(), outDegree); err != nil {
		return Stats{}, err
	}
	if _, err := ParseRingMode(string(mode)); err != nil {
		return Stats{}, err
	}
	o := buildOptions(opts)
	w := &wirer{net: net, logger: o.logger}
	w.stats.Nodes = net.Size()
	w.stats.Roots = outDegree
	if outDegree <= 1 {
		return w.stats, nil
	}
	err := w.ring(outDegree, mode)
	return w.stats, err
}

func (w *wirer) ring(d int, mode RingMode) error {
	before := w.stats.EdgesCreated
	defer func() { w.stats.RingEdges += w.stats.EdgesCreated - before }()

	w.logger.Debug("putting roots in a ring", "roots", d, "mode", mode)
	if mode == RingRootsOnly {
		if d == 2 {
			return w.pair(0, 1)
		}
		for i := 0; i < d; i++ {
			if err := w.pair(i, (i+1)%d); err != nil {
				return err
			}
		}
		return nil
	}

	// The last loop pair reaches node d, the first non-root.
	for i := 0; i < d; i++ {
		if err := w.pair(i, i+1); err != nil {
			return err
		}
	}
	return w.pair(0, d)
}

// attach runs growth step i.
func (w *wirer) attach(i, outDegree int, alfa float64) error {
	nodes := w.net.Nodes
	n := nodes.At(i)
	n.Root = false

	costs := make([]float64, i)
	for c := 0; c < i; c++ {
		costs[c] = float64(nodes.At(c).Hop) + alfa*nodes.Distance(i, c)
	}

	if outDegree == 1 {
		p := argmin(costs)
		n.Hop = nodes.At(p).Hop + 1
		if err := w.link(i, p); err != nil {
			return err
		}
	} else {
		parents := selectParents(costs, outDegree)
		minHop := math.MaxInt
		for _, p := range parents {
			if err := w.link(i, p); err != nil {
				return err
			}
			minHop = min(minHop, nodes.At(p).Hop)
		}
		n.Hop = minHop + 1
	}
	w.stats.MaxHop = max(w.stats.MaxHop, n.Hop)
	return nil
}

// argmin returns the first index holding the strict minimum of costs.
func argmin(costs []float64) int {
	best, lowest := 0, math.Inf(1)
	for j, v := range costs {
		if v < lowest {
			best, lowest = j, v
		}
	}
	return best
}

// selectParents picks k distinct indices of costs by repeated minimum scans
// over a shrinking pool kept in ascending index order.
func selectParents(costs []float64, k int) []int {
	pool := make([]int, len(costs))
	for j := range pool {
		pool[j] = j
	}

	parents := make([]int, 0, k)
	for range k {
		best, lowest := 0, math.Inf(1)
		for pos, c := range pool {
			if costs[c] < lowest {
				best, lowest = pos, costs[c]
			}
		}
		parents = append(parents, pool[best])
		pool = slices.Delete(pool, best, best+1)
	}
	return parents
}

// Build initializes and wires net from cfg.
func Build(net *overlay.Network, cfg Config, rng RandomSource, opts ...Option) (Stats, error) {
	if cfg.MaxCoord == 0 {
		cfg.MaxCoord = DefaultMaxCoord
	}
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}
	if err := Initialize(net, cfg.OutDegree, cfg.MaxCoord, rng, opts...); err != nil {
		return Stats{}, err
	}
	growOpts := append(slices.Clone(opts), WithRing(cfg.Ring))
	return Grow(net, cfg.OutDegree, cfg.Alfa, growOpts...)
}
