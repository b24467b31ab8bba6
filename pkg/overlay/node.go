package overlay

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// NodeState is the per-node construction record.
type NodeState struct {
	// Pos is the node's position in the placement square.
	Pos r2.Vec
	// Hop is the construction-time hop distance to the nearest root; 0 for roots.
	Hop int
	// InDegree counts edge creation requests that targeted this node.
	// It is maintained by the builder and never derived from the graph.
	InDegree int
	// Root is true only for the seed nodes.
	Root bool
}

// Store is a strongly typed node-state table indexed by node index.
type Store struct {
	nodes []NodeState
}

// NewStore creates zeroed state for n nodes.
func NewStore(n int) *Store {
	return &Store{nodes: make([]NodeState, n)}
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// Node returns a pointer to the state of node i, or INVALID_NODE_INDEX.
// The pointer refers to the stored record, so modifications are visible.
func (s *Store) Node(i int) (*NodeState, error) {
	if err := CheckIndex(i, len(s.nodes)); err != nil {
		return nil, err
	}
	return &s.nodes[i], nil
}

// At returns the state of node i without bounds reporting; it panics on a
// bad index like a slice access. Intended for loops over [0, Len()).
func (s *Store) At(i int) *NodeState { return &s.nodes[i] }

// Distance returns the Euclidean distance between the positions of i and j.
func (s *Store) Distance(i, j int) float64 {
	return r2.Norm(r2.Sub(s.nodes[i].Pos, s.nodes[j].Pos))
}

// States returns a copy of all node records in index order.
func (s *Store) States() []NodeState {
	out := make([]NodeState, len(s.nodes))
	copy(out, s.nodes)
	return out
}
