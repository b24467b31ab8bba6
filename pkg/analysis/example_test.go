package analysis_test

import (
	"fmt"

	"github.com/matzehuels/hotnet/pkg/analysis"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

func ExampleBallExpansion() {
	// A star: nodes 1..4 attached to node 0, node 5 attached to node 4.
	g := overlay.NewGraph(6)
	for i := 1; i <= 4; i++ {
		_, _ = g.SetEdge(i, 0)
	}
	_, _ = g.SetEdge(5, 4)

	undir := overlay.NewUndirected(g)
	hist, _ := analysis.BallExpansion(undir, 0, 0)
	fmt.Println("from hub:", hist)

	hist, _ = analysis.BallExpansion(undir, 5, 0)
	fmt.Println("from leaf:", hist)

	hist, _ = analysis.BallExpansion(g, 0, 0)
	fmt.Println("directed hub:", hist)
	// Output:
	// from hub: [0 4 1]
	// from leaf: [0 1 1 3]
	// directed hub: [0]
}

func ExampleClusteringCoefficient() {
	g := overlay.NewGraph(3)
	_, _ = g.SetEdge(1, 0)
	_, _ = g.SetEdge(2, 0)
	_, _ = g.SetEdge(2, 1)

	c, _ := analysis.ClusteringCoefficient(overlay.NewUndirected(g), 0)
	fmt.Println(c)
	// Output: 1
}
