package analysis

import (
	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

// Unreachable marks a node that a traversal did not reach.
const Unreachable = -1

// ShortestPathBFS returns the hop distance from source to every node of v.
// Nodes the view cannot reach hold [Unreachable]; the source holds 0.
func ShortestPathBFS(v overlay.View, source int) ([]int, error) {
	if err := overlay.CheckIndex(source, v.Size()); err != nil {
		return nil, err
	}
	return bfs(v, source, v.Size()), nil
}

// bfs expands at most limit levels from source.
func bfs(v overlay.View, source, limit int) []int {
	dist := make([]int, v.Size())
	for i := range dist {
		dist[i] = Unreachable
	}
	dist[source] = 0

	queue := []int{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if dist[u] >= limit {
			continue
		}
		for _, w := range v.Neighbors(u) {
			if dist[w] == Unreachable {
				dist[w] = dist[u] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// Distance returns the hop distance from → to in v.
// Returns UNREACHABLE_NODE when no path exists.
func Distance(v overlay.View, from, to int) (int, error) {
	if err := overlay.CheckIndex(to, v.Size()); err != nil {
		return 0, err
	}
	dist, err := ShortestPathBFS(v, from)
	if err != nil {
		return 0, err
	}
	if dist[to] == Unreachable {
		return 0, errors.New(errors.ErrCodeUnreachableNode, "node %d is not reachable from node %d", to, from)
	}
	return dist[to], nil
}

// PathSummary describes the shortest paths leaving one source.
type PathSummary struct {
	Source  int     `json:"source"`
	Reached int     `json:"reached"` // nodes reached, source excluded
	Average float64 `json:"average"` // mean distance over reached nodes
	Max     int     `json:"max"`     // eccentricity within the reached component
}

// PathLengths summarizes the finite distances from source, excluding the
// source itself. Returns UNREACHABLE_NODE when source reaches no other node.
func PathLengths(v overlay.View, source int) (PathSummary, error) {
	dist, err := ShortestPathBFS(v, source)
	if err != nil {
		return PathSummary{}, err
	}

	s := PathSummary{Source: source}
	sum := 0
	for i, d := range dist {
		if i == source || d == Unreachable {
			continue
		}
		s.Reached++
		sum += d
		s.Max = max(s.Max, d)
	}
	if s.Reached == 0 {
		return s, errors.New(errors.ErrCodeUnreachableNode, "node %d reaches no other node", source)
	}
	s.Average = float64(sum) / float64(s.Reached)
	return s, nil
}
