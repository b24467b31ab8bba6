package analysis

import "github.com/matzehuels/hotnet/pkg/overlay"

// ClusteringCoefficient returns the fraction of possible edges present among
// the neighbors of i. Ordered neighbor pairs (a, b) with an edge a→b are
// counted against k(k-1), which on an undirected view equals the unordered
// ratio pairs / (k(k-1)/2). Nodes with fewer than two neighbors yield 0.
func ClusteringCoefficient(v overlay.View, i int) (float64, error) {
	if err := overlay.CheckIndex(i, v.Size()); err != nil {
		return 0, err
	}
	nbrs := v.Neighbors(i)
	k := len(nbrs)
	if k < 2 {
		return 0, nil
	}

	edges := 0
	for _, a := range nbrs {
		for _, b := range nbrs {
			if a != b && v.IsEdge(a, b) {
				edges++
			}
		}
	}
	return float64(edges) / float64(k*(k-1)), nil
}
