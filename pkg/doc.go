// Package pkg provides the libraries behind hotnet, a builder and analyzer
// for Heuristically Optimized Trade-off (HOT) overlay networks.
//
// # Overview
//
// A HOT overlay grows one node at a time. Every joining node picks the d
// existing nodes that minimize a weighted sum of Euclidean distance and hop
// count to the roots, so the trade-off parameter alfa moves the result
// between a star and a geometric tree. The pkg directory is organized as:
//
//  1. [overlay] - adjacency graph, node state, undirected views
//  2. [hot] - root initialization and incremental growth
//  3. [analysis] - BFS, clustering, ball expansion and summary statistics
//  4. [observer] - pluggable measurements over a finished overlay
//  5. [pipeline] - build, observe and cache a configured run
//  6. [config], [cache], [server] - the surrounding plumbing
//
// # Architecture
//
//	config (TOML/HCL)
//	       ↓
//	  [pipeline] Runner ── cache (file / Redis)
//	       ↓
//	  [hot] Build ──→ [overlay] Network
//	       ↓
//	  [observer] reports (via [analysis])
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/hotnet/pkg/analysis"
//	    "github.com/matzehuels/hotnet/pkg/hot"
//	    "github.com/matzehuels/hotnet/pkg/overlay"
//	    "github.com/matzehuels/hotnet/pkg/rng"
//	)
//
//	net := overlay.NewNetwork(1000)
//	stats, err := hot.Build(net, hot.Config{OutDegree: 2, MaxCoord: 1, Alfa: 10}, rng.New(42))
//	if err != nil {
//	    return err
//	}
//	hist, err := analysis.BallExpansion(overlay.NewUndirected(net.Graph), 0, 0)
//
// Observability hooks in [observability] report builds, observations, cache
// activity and HTTP requests; [observability/prom] backs them with
// Prometheus metrics.
package pkg
