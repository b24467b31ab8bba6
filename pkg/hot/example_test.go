package hot_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/hotnet/pkg/hot"
	"github.com/matzehuels/hotnet/pkg/overlay"
	"github.com/matzehuels/hotnet/pkg/rng"
)

func ExampleGrow() {
	net := overlay.NewNetwork(4)
	if err := hot.InitializeRoots(net, 1, 1.0, rng.New(1)); err != nil {
		panic(err)
	}

	// Place the growing nodes by hand: two close to the root, one far away.
	net.Nodes.At(1).Pos = r2.Vec{X: 0.6, Y: 0.5}
	net.Nodes.At(2).Pos = r2.Vec{X: 0.5, Y: 0.6}
	net.Nodes.At(3).Pos = r2.Vec{X: 0.9, Y: 0.9}

	stats, err := hot.Grow(net, 1, 1)
	if err != nil {
		panic(err)
	}
	for i := 1; i < net.Size(); i++ {
		fmt.Printf("node %d -> %v (hop %d)\n", i, net.Graph.Neighbors(i), net.Nodes.At(i).Hop)
	}
	fmt.Println("root in-degree:", net.Nodes.At(0).InDegree)
	fmt.Println("edges:", stats.EdgesCreated)
	// Output:
	// node 1 -> [0] (hop 1)
	// node 2 -> [0] (hop 1)
	// node 3 -> [0] (hop 1)
	// root in-degree: 3
	// edges: 3
}

func ExampleBuild() {
	net := overlay.NewNetwork(50)
	stats, err := hot.Build(net, hot.Config{OutDegree: 2, Alfa: 4}, rng.New(42))
	if err != nil {
		panic(err)
	}
	fmt.Println(stats.Nodes, stats.Roots, stats.RingEdges, stats.DuplicateEdges)
	fmt.Println(stats.EdgesCreated == net.TotalInDegree())
	// Output:
	// 50 2 6 2
	// true
}
