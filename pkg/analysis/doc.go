// Package analysis characterizes a finished overlay: hop-counted shortest
// paths, local clustering and ball-expansion histograms, plus the aggregate
// statistics built on them.
//
// # Views
//
// Every function takes an [overlay.View]. Pass the graph itself for the
// as-built directed topology, or an [overlay.Undirected] built once from it
// to ignore edge direction. The functions never mutate the view, so any
// number of analyses may run concurrently over the same snapshot.
//
// # Unreachable Nodes
//
// [ShortestPathBFS] fills nodes the view cannot reach with [Unreachable]
// (-1). Aggregates exclude it: [PathLengths] averages only over reached
// nodes, and [Distance] reports UNREACHABLE_NODE instead of returning the
// sentinel.
//
// # Ball Expansion
//
// [BallExpansion] returns hist where hist[k] is the number of nodes at BFS
// depth exactly k. hist[0] is always 0 (the source is not counted) and the
// slice ends at the last non-empty level:
//
//	hist, _ := analysis.BallExpansion(undir, 0, 0)
//	// hist[1] = degree of node 0, hist[2] = nodes two hops away, ...
//
// [PathAccumulator] and [LevelAccumulator] fold many histograms into the
// summary statistics reported by the ball-expansion observer.
package analysis
