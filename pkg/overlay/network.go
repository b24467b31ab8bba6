package overlay

// Network couples an overlay graph with its node state. Both are sized once
// and share the same index space.
type Network struct {
	Graph *Graph
	Nodes *Store
}

// NewNetwork creates an empty network of n nodes.
func NewNetwork(n int) *Network {
	return &Network{
		Graph: NewGraph(n),
		Nodes: NewStore(n),
	}
}

// Size returns the number of nodes.
func (n *Network) Size() int { return n.Graph.Size() }

// TotalInDegree sums the in-degree counters of all nodes.
func (n *Network) TotalInDegree() int {
	total := 0
	for i := range n.Nodes.nodes {
		total += n.Nodes.nodes[i].InDegree
	}
	return total
}
