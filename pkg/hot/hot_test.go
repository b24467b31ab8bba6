package hot

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/overlay"
	"github.com/matzehuels/hotnet/pkg/rng"
)

// scripted replays fixed draws and records the call sequence.
type scripted struct {
	bools  []bool
	floats []float64
	ints   []int
	calls  []string
}

func (s *scripted) Bool() bool {
	s.calls = append(s.calls, "bool")
	b := s.bools[0]
	s.bools = s.bools[1:]
	return b
}

func (s *scripted) Float64() float64 {
	s.calls = append(s.calls, "float")
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scripted) IntN(n int) int {
	s.calls = append(s.calls, "int")
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scripted) Int64N(n int64) int64 { return int64(s.IntN(int(n))) }

func build(t *testing.T, n int, cfg Config, seed uint64) (*overlay.Network, Stats) {
	t.Helper()
	net := overlay.NewNetwork(n)
	stats, err := Build(net, cfg, rng.New(seed))
	require.NoError(t, err)
	return net, stats
}

func TestDeterministicScenario(t *testing.T) {
	net := overlay.NewNetwork(4)
	require.NoError(t, InitializeRoots(net, 1, 1.0, rng.New(1)))

	// Fix coordinates explicitly instead of drawing them.
	net.Nodes.At(0).Pos = r2.Vec{X: 0, Y: 0}
	net.Nodes.At(1).Pos = r2.Vec{X: 1, Y: 0}
	net.Nodes.At(2).Pos = r2.Vec{X: 0, Y: 1}
	net.Nodes.At(3).Pos = r2.Vec{X: 5, Y: 5}

	stats, err := Grow(net, 1, 1)
	require.NoError(t, err)

	for i := 1; i < 4; i++ {
		require.Equal(t, []int{0}, net.Graph.Neighbors(i), "node %d parent", i)
		require.Equal(t, 1, net.Nodes.At(i).Hop, "node %d hop", i)
		require.False(t, net.Nodes.At(i).Root)
	}
	require.Equal(t, 3, net.Nodes.At(0).InDegree)
	require.Equal(t, 3, net.Graph.EdgeCount())
	require.Equal(t, 3, stats.EdgesCreated)
	require.Zero(t, stats.RingEdges)
	require.True(t, net.Nodes.At(0).Root)
}

func TestSingleParentInvariant(t *testing.T) {
	for _, alfa := range []float64{0.5, 4, 40} {
		net, _ := build(t, 300, Config{OutDegree: 1, Alfa: alfa}, 11)

		for i := 1; i < net.Size(); i++ {
			out := net.Graph.Neighbors(i)
			require.Len(t, out, 1, "node %d", i)
			parent := out[0]
			require.Less(t, parent, i)
			require.Equal(t, net.Nodes.At(parent).Hop+1, net.Nodes.At(i).Hop)
		}
	}
}

func TestMultiParentInvariant(t *testing.T) {
	for _, mode := range []RingMode{RingCompat, RingRootsOnly} {
		for _, k := range []int{2, 3, 5} {
			net, _ := build(t, 250, Config{OutDegree: k, Alfa: 6, Ring: mode}, uint64(k))

			for i := k; i < net.Size(); i++ {
				out := net.Graph.Neighbors(i)
				require.Len(t, out, k, "mode %s k=%d node %d", mode, k, i)

				distinct := slices.Clone(out)
				slices.Sort(distinct)
				require.Len(t, slices.Compact(distinct), k)

				minHop := math.MaxInt
				for _, p := range out {
					require.Less(t, p, i)
					minHop = min(minHop, net.Nodes.At(p).Hop)
				}
				require.Equal(t, minHop+1, net.Nodes.At(i).Hop)
			}
		}
	}
}

func TestInDegreeAccounting(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		duplicates int
	}{
		{"single root", Config{OutDegree: 1, Alfa: 2}, 0},
		{"compat ring", Config{OutDegree: 3, Alfa: 2}, 2},
		{"roots ring", Config{OutDegree: 3, Alfa: 2, Ring: RingRootsOnly}, 0},
		{"two roots compat", Config{OutDegree: 2, Alfa: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 120
			net, stats := build(t, n, tt.cfg, 5)
			d := tt.cfg.OutDegree

			require.Equal(t, stats.EdgesCreated, net.TotalInDegree())
			require.Equal(t, tt.duplicates, stats.DuplicateEdges)
			require.Equal(t, stats.EdgesCreated-stats.DuplicateEdges, net.Graph.EdgeCount())
			require.Equal(t, (n-d)*d+stats.RingEdges, stats.EdgesCreated)
		})
	}
}

func TestRootPlacement(t *testing.T) {
	t.Run("single root at centre", func(t *testing.T) {
		for _, m := range []float64{1, 100} {
			net, _ := build(t, 10, Config{OutDegree: 1, MaxCoord: m, Alfa: 1}, 3)
			require.Equal(t, r2.Vec{X: m / 2, Y: m / 2}, net.Nodes.At(0).Pos)
		}
	})

	t.Run("several roots near centre", func(t *testing.T) {
		for _, m := range []float64{1, 50} {
			net, _ := build(t, 40, Config{OutDegree: 4, MaxCoord: m, Alfa: 1}, 9)
			for i := 0; i < 4; i++ {
				n := net.Nodes.At(i)
				require.True(t, n.Root)
				require.Zero(t, n.Hop)
				require.Less(t, math.Abs(n.Pos.X-m/2), 0.1)
				require.Less(t, math.Abs(n.Pos.Y-m/2), 0.1)
			}
		}
	})
}

func TestRootJitterDrawOrder(t *testing.T) {
	src := &scripted{
		bools:  []bool{true, false, false, true},
		floats: []float64{0.5, 0.25, 0.1, 0.9},
	}
	net := overlay.NewNetwork(3)
	require.NoError(t, InitializeRoots(net, 2, 1.0, src))

	require.Equal(t, []string{"bool", "float", "bool", "float", "bool", "float", "bool", "float"}, src.calls)
	require.InDelta(t, 0.55, net.Nodes.At(0).Pos.X, 1e-12)
	require.InDelta(t, 0.475, net.Nodes.At(0).Pos.Y, 1e-12)
	require.InDelta(t, 0.49, net.Nodes.At(1).Pos.X, 1e-12)
	require.InDelta(t, 0.59, net.Nodes.At(1).Pos.Y, 1e-12)
}

func TestCoordinateModes(t *testing.T) {
	t.Run("continuous", func(t *testing.T) {
		src := &scripted{floats: []float64{0.25, 0.75, 0.125, 0.5}}
		net := overlay.NewNetwork(3)
		require.NoError(t, InitializeCoordinates(net, 1, 1.0, src))
		require.Equal(t, []string{"float", "float", "float", "float"}, src.calls)
		require.Equal(t, r2.Vec{X: 0.25, Y: 0.75}, net.Nodes.At(1).Pos)
		require.Equal(t, r2.Vec{X: 0.125, Y: 0.5}, net.Nodes.At(2).Pos)
	})

	t.Run("grid", func(t *testing.T) {
		src := &scripted{ints: []int{3, 7}}
		net := overlay.NewNetwork(2)
		require.NoError(t, InitializeCoordinates(net, 1, 10, src))
		require.Equal(t, []string{"int", "int"}, src.calls)
		require.Equal(t, r2.Vec{X: 3, Y: 7}, net.Nodes.At(1).Pos)
	})

	t.Run("grid values are integers in range", func(t *testing.T) {
		net, _ := build(t, 200, Config{OutDegree: 2, MaxCoord: 20, Alfa: 1}, 21)
		for i := 2; i < net.Size(); i++ {
			p := net.Nodes.At(i).Pos
			require.Equal(t, math.Trunc(p.X), p.X)
			require.Equal(t, math.Trunc(p.Y), p.Y)
			require.GreaterOrEqual(t, p.X, 0.0)
			require.Less(t, p.X, 20.0)
			require.GreaterOrEqual(t, p.Y, 0.0)
			require.Less(t, p.Y, 20.0)
		}
	})
}

func TestWireRootRing(t *testing.T) {
	t.Run("compat reaches first non-root", func(t *testing.T) {
		net := overlay.NewNetwork(5)
		stats, err := WireRootRing(net, 3, RingCompat)
		require.NoError(t, err)

		for _, e := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 3}, {3, 2}, {0, 3}, {3, 0}} {
			require.True(t, net.Graph.IsEdge(e[0], e[1]), "edge %v", e)
		}
		require.False(t, net.Graph.IsEdge(2, 0))
		require.Equal(t, 8, net.Graph.EdgeCount())
		require.Equal(t, 8, stats.RingEdges)
		for i := 0; i < 4; i++ {
			require.Equal(t, 2, net.Nodes.At(i).InDegree, "node %d", i)
		}
		require.Zero(t, net.Nodes.At(4).InDegree)
	})

	t.Run("roots only", func(t *testing.T) {
		net := overlay.NewNetwork(5)
		stats, err := WireRootRing(net, 3, RingRootsOnly)
		require.NoError(t, err)
		for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
			require.True(t, net.Graph.IsEdge(e[0], e[1]))
			require.True(t, net.Graph.IsEdge(e[1], e[0]))
		}
		require.Empty(t, net.Graph.Neighbors(3))
		require.Equal(t, 6, stats.RingEdges)
	})

	t.Run("roots only with two roots links once", func(t *testing.T) {
		net := overlay.NewNetwork(3)
		stats, err := WireRootRing(net, 2, RingRootsOnly)
		require.NoError(t, err)
		require.Equal(t, 2, stats.RingEdges)
		require.Zero(t, stats.DuplicateEdges)
	})

	t.Run("single root has no ring", func(t *testing.T) {
		net := overlay.NewNetwork(3)
		stats, err := WireRootRing(net, 1, RingCompat)
		require.NoError(t, err)
		require.Zero(t, stats.RingEdges)
		require.Zero(t, net.Graph.EdgeCount())
	})
}

func TestTiesGoToLowestIndex(t *testing.T) {
	costs := []float64{3, 1, 1, 0.5, 1}
	require.Equal(t, 3, argmin(costs))
	require.Equal(t, []int{3, 1, 2}, selectParents(costs, 3))
	require.Equal(t, 0, argmin([]float64{2, 2, 2}))
}

func TestReproducible(t *testing.T) {
	cfg := Config{OutDegree: 3, Alfa: 8}
	a, sa := build(t, 150, cfg, 77)
	b, sb := build(t, 150, cfg, 77)

	require.Equal(t, sa, sb)
	require.Equal(t, a.Nodes.States(), b.Nodes.States())
	for i := 0; i < a.Size(); i++ {
		require.Equal(t, a.Graph.Neighbors(i), b.Graph.Neighbors(i))
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		cfg  Config
		code errors.Code
	}{
		{"zero out degree", 10, Config{OutDegree: 0, Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"negative out degree", 10, Config{OutDegree: -2, Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"size equals roots", 3, Config{OutDegree: 3, Alfa: 1}, errors.ErrCodeTooFewNodes},
		{"size below roots", 2, Config{OutDegree: 3, Alfa: 1}, errors.ErrCodeTooFewNodes},
		{"single node", 1, Config{OutDegree: 1, Alfa: 1}, errors.ErrCodeTooFewNodes},
		{"nan alfa", 10, Config{OutDegree: 1, Alfa: math.NaN()}, errors.ErrCodeInvalidConfig},
		{"infinite alfa", 10, Config{OutDegree: 1, Alfa: math.Inf(1)}, errors.ErrCodeInvalidConfig},
		{"max coord below one", 10, Config{OutDegree: 1, MaxCoord: 0.5, Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"max coord beyond int range", 20, Config{OutDegree: 2, MaxCoord: 1e19, Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"huge max coord", 20, Config{OutDegree: 2, MaxCoord: 1e300, Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"infinite max coord", 20, Config{OutDegree: 2, MaxCoord: math.Inf(1), Alfa: 1}, errors.ErrCodeInvalidConfig},
		{"unknown ring", 10, Config{OutDegree: 2, Alfa: 1, Ring: "star"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := overlay.NewNetwork(tt.n)
			_, err := Build(net, tt.cfg, rng.New(1))
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
			require.Zero(t, net.Graph.EdgeCount(), "no partial construction")
		})
	}
}

func TestGrowRequiresInitialization(t *testing.T) {
	net := overlay.NewNetwork(10)
	_, err := Grow(net, 2, 1)
	require.True(t, errors.Is(err, errors.ErrCodeNotInitialized), "got %v", err)
}

func TestInitializeRejectsNilInputs(t *testing.T) {
	require.True(t, errors.Is(Initialize(nil, 1, 1, rng.New(1)), errors.ErrCodeInvalidInput))
	require.True(t, errors.Is(Initialize(overlay.NewNetwork(3), 1, 1, nil), errors.ErrCodeInvalidInput))
}

func TestParseRingMode(t *testing.T) {
	m, err := ParseRingMode("")
	require.NoError(t, err)
	require.Equal(t, RingCompat, m)

	m, err = ParseRingMode("roots")
	require.NoError(t, err)
	require.Equal(t, RingRootsOnly, m)

	_, err = ParseRingMode("mesh")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}
