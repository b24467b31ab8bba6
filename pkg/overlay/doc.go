// Package overlay provides the data model of a peer-to-peer overlay: a
// directed adjacency structure over a fixed node-index space and the
// per-node construction state that the growth algorithm maintains.
//
// # Overview
//
// A [Network] bundles a [Graph] and a [Store] created together for a fixed
// size N. Nodes are addressed by their index in [0, N); there is no node
// removal and no edge removal. The graph is populated once, left to right,
// by the builder in package hot and is then read by package analysis.
//
// # Edge Policy
//
// [Graph] has simple-graph semantics. [Graph.SetEdge] on an edge that already
// exists is a no-op that reports added == false, and self loops are rejected.
// Callers that keep their own counters (the builder's in-degree bookkeeping)
// decide for themselves what a duplicate request means.
//
// # Views
//
// Analysis code works against the read-only [View] interface. The graph
// itself is the as-built directed view; [NewUndirected] builds the symmetric
// view once so repeated traversals do not recompute reverse adjacency:
//
//	net := overlay.NewNetwork(100)
//	// ... populate ...
//	undir := overlay.NewUndirected(net.Graph)
//	_ = undir.Neighbors(0) // out- and in-neighbors of node 0
//
// Views are immutable after construction and safe for concurrent readers.
package overlay
