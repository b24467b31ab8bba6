// Package hot grows an overlay topology node by node with a distance- and
// hop-biased preferential attachment rule.
//
// # Overview
//
// Construction has two phases, both applied to an [overlay.Network]:
//
//  1. [Initialize] marks the first d nodes as roots clustered around the
//     centre of the placement square and gives every other node a random
//     position ([InitializeRoots], [InitializeCoordinates]).
//  2. [Grow] optionally links the roots ([WireRootRing]) and then attaches
//     every remaining node, in index order, to the d existing nodes with the
//     lowest cost(c) = hop(c) + alfa * distance(i, c).
//
// Here hop is the construction-time distance to the nearest root. Small alfa
// favours short paths to the core; large alfa favours geographic locality.
//
// [Build] runs both phases from a [Config].
//
// # Determinism
//
// Construction is strictly sequential: node i only ever links to nodes with a
// smaller index and its state depends only on nodes [0, i). Ties between equal
// costs go to the lowest index. For a given [RandomSource] sequence the result
// is fully reproducible; the draw order is the root jitter (coin, offset per
// axis, per root) followed by the node coordinates (x then y, per node).
//
// # Root Ring
//
// With d > 1 the roots are linked before growth. [RingCompat] (the default)
// links (i, i+1) for every i in [0, d) and then (0, d), which reaches the first
// non-root node d. [RingRootsOnly] links the roots in a closed ring among
// themselves instead.
//
// # Complexity
//
// Each growth step scans all earlier nodes once per selected parent, so
// construction is O(N² · d). This is a known scaling limit of the rule, not a
// defect; networks of a few tens of thousands of nodes build in seconds.
package hot
