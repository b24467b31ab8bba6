package overlay

import "slices"

// Undirected is the symmetric view of another [View]: i and j are adjacent
// when either i→j or j→i exists in the source. The adjacency is computed
// once at construction.
type Undirected struct {
	adj [][]int
}

// NewUndirected builds the undirected view of v.
// Each neighbor list holds the out-neighbors of the source first, followed by
// in-neighbors that are not also out-neighbors, in ascending source order.
func NewUndirected(v View) *Undirected {
	n := v.Size()
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		adj[i] = slices.Clone(v.Neighbors(i))
	}
	for i := 0; i < n; i++ {
		for _, j := range v.Neighbors(i) {
			if !slices.Contains(adj[j], i) {
				adj[j] = append(adj[j], i)
			}
		}
	}
	return &Undirected{adj: adj}
}

// Size returns the number of nodes.
func (u *Undirected) Size() int { return len(u.adj) }

// Directed reports false.
func (u *Undirected) Directed() bool { return false }

// Neighbors returns the symmetric adjacency of i, or nil when out of range.
func (u *Undirected) Neighbors(i int) []int {
	if i < 0 || i >= len(u.adj) {
		return nil
	}
	return u.adj[i]
}

// IsEdge reports whether i and j are adjacent in either direction.
func (u *Undirected) IsEdge(i, j int) bool {
	return slices.Contains(u.Neighbors(i), j)
}

// Degree returns the number of distinct neighbors of i.
func (u *Undirected) Degree(i int) int { return len(u.Neighbors(i)) }

var _ View = (*Undirected)(nil)
