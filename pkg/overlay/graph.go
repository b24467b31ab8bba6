package overlay

import (
	"slices"

	"github.com/matzehuels/hotnet/pkg/errors"
)

// View is a read-only graph over the node indices [0, Size()).
// Neighbors returns the adjacency of a node in the view's direction; callers
// must not modify the returned slice.
type View interface {
	Size() int
	Neighbors(i int) []int
	IsEdge(from, to int) bool
	Directed() bool
}

// Graph is the directed overlay built by the growth process.
// The zero value is not usable - use [NewGraph].
// Graph is not safe for concurrent mutation; concurrent readers are fine once
// construction has finished.
type Graph struct {
	out   [][]int
	edges int
}

// NewGraph creates a graph with n nodes and no edges.
func NewGraph(n int) *Graph {
	return &Graph{out: make([][]int, n)}
}

// Size returns the number of nodes, fixed at creation.
func (g *Graph) Size() int { return len(g.out) }

// Directed reports true; Graph is the as-built directed view.
func (g *Graph) Directed() bool { return true }

// EdgeCount returns the number of distinct directed edges.
func (g *Graph) EdgeCount() int { return g.edges }

// SetEdge adds the directed edge from→to.
// It returns added == false without error when the edge already exists.
// Returns INVALID_NODE_INDEX for an endpoint outside [0, Size()) and
// SELF_LOOP when from == to.
func (g *Graph) SetEdge(from, to int) (added bool, err error) {
	if err := g.check(from); err != nil {
		return false, err
	}
	if err := g.check(to); err != nil {
		return false, err
	}
	if from == to {
		return false, errors.New(errors.ErrCodeSelfLoop, "self loop on node %d", from)
	}
	if slices.Contains(g.out[from], to) {
		return false, nil
	}
	g.out[from] = append(g.out[from], to)
	g.edges++
	return true, nil
}

// IsEdge reports whether the directed edge from→to exists.
// Out-of-range indices report false.
func (g *Graph) IsEdge(from, to int) bool {
	if from < 0 || from >= len(g.out) {
		return false
	}
	return slices.Contains(g.out[from], to)
}

// Neighbors returns the out-neighbors of i in insertion order.
// Returns nil for an out-of-range index.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.out) {
		return nil
	}
	return g.out[i]
}

// OutDegree returns the number of outgoing edges of i.
func (g *Graph) OutDegree(i int) int { return len(g.Neighbors(i)) }

func (g *Graph) check(i int) error {
	return CheckIndex(i, len(g.out))
}

// CheckIndex returns INVALID_NODE_INDEX unless 0 <= i < n.
func CheckIndex(i, n int) error {
	if i < 0 || i >= n {
		return errors.New(errors.ErrCodeInvalidNodeIndex, "node index %d out of range [0,%d)", i, n)
	}
	return nil
}

var _ View = (*Graph)(nil)
