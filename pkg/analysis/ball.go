package analysis

import "github.com/matzehuels/hotnet/pkg/overlay"

// BallExpansion returns the per-depth node counts around source: hist[k] is
// the number of nodes at distance exactly k, for 1 <= k <= maxDepth. hist[0]
// is 0 and the slice stops at the last non-empty level, so it has at most
// maxDepth+1 entries and sums to at most Size()-1. A maxDepth <= 0 means
// unbounded.
func BallExpansion(v overlay.View, source, maxDepth int) ([]int, error) {
	if err := overlay.CheckIndex(source, v.Size()); err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		maxDepth = v.Size()
	}

	hist := []int{0}
	for i, d := range bfs(v, source, maxDepth) {
		if i == source || d == Unreachable {
			continue
		}
		for len(hist) <= d {
			hist = append(hist, 0)
		}
		hist[d]++
	}
	return hist, nil
}
