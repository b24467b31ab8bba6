package analysis

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/hotnet/pkg/overlay"
)

// Summary is a weighted sample summary. Variance uses the unbiased
// estimator with weights as frequencies; it is 0 for fewer than two samples.
type Summary struct {
	Count    float64 `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Summarize computes the summary of values, each weighted by the matching
// entry of weights (nil means unit weights). An empty input yields the zero
// Summary.
func Summarize(values, weights []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{
		Min: floats.Min(values),
		Max: floats.Max(values),
	}
	if weights == nil {
		s.Count = float64(len(values))
	} else {
		s.Count = floats.Sum(weights)
	}
	if s.Count > 1 {
		s.Mean, s.Variance = stat.MeanVariance(values, weights)
	} else {
		s.Mean = stat.Mean(values, weights)
	}
	return s
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return fmt.Sprintf("n=%g mean=%.4f var=%.4f min=%g max=%g", s.Count, s.Mean, s.Variance, s.Min, s.Max)
}

// PathAccumulator folds ball-expansion histograms into one path-length
// distribution: every level k contributes the value k with weight hist[k].
// The zero value is ready to use.
type PathAccumulator struct {
	values  []float64
	weights []float64
}

// Add records count nodes at distance depth. Non-positive counts are ignored.
func (a *PathAccumulator) Add(depth, count int) {
	if count <= 0 {
		return
	}
	a.values = append(a.values, float64(depth))
	a.weights = append(a.weights, float64(count))
}

// AddHistogram records levels 1.. of hist.
func (a *PathAccumulator) AddHistogram(hist []int) {
	for k := 1; k < len(hist); k++ {
		a.Add(k, hist[k])
	}
}

// Summary returns the accumulated distribution.
func (a *PathAccumulator) Summary() Summary {
	return Summarize(a.values, a.weights)
}

// LevelSummary is the spread of one ball-expansion level across sources.
type LevelSummary struct {
	Level    int     `json:"level"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	Max      int     `json:"max"`
}

// LevelAccumulator aggregates histograms level by level. Sources whose
// histogram ends early count as 0 at the deeper levels.
type LevelAccumulator struct {
	hists [][]int
	depth int
}

// Add records one source's histogram.
func (a *LevelAccumulator) Add(hist []int) {
	a.hists = append(a.hists, slices.Clone(hist))
	a.depth = max(a.depth, len(hist)-1)
}

// Sources returns the number of histograms added.
func (a *LevelAccumulator) Sources() int { return len(a.hists) }

// Levels returns one summary per level from 1 to the deepest level seen.
func (a *LevelAccumulator) Levels() []LevelSummary {
	if len(a.hists) == 0 {
		return nil
	}
	out := make([]LevelSummary, 0, a.depth)
	col := make([]float64, len(a.hists))
	for k := 1; k <= a.depth; k++ {
		for i, h := range a.hists {
			col[i] = 0
			if k < len(h) {
				col[i] = float64(h[k])
			}
		}
		s := Summarize(col, nil)
		out = append(out, LevelSummary{Level: k, Mean: s.Mean, Variance: s.Variance, Max: int(s.Max)})
	}
	return out
}

// DegreeStats describes the construction-time in-degree and hop
// distributions of a network.
type DegreeStats struct {
	InDegree     Summary `json:"in_degree"`
	Hop          Summary `json:"hop"`
	InDegreeHist []int   `json:"in_degree_hist"` // InDegreeHist[k] = nodes with in-degree k
	HopHist      []int   `json:"hop_hist"`       // HopHist[k] = nodes at hop k
}

// DegreeSummary summarizes the node states of a built network.
func DegreeSummary(nodes *overlay.Store) DegreeStats {
	states := nodes.States()
	in := make([]float64, len(states))
	hop := make([]float64, len(states))
	var ds DegreeStats
	for i, n := range states {
		in[i] = float64(n.InDegree)
		hop[i] = float64(n.Hop)
		ds.InDegreeHist = bump(ds.InDegreeHist, n.InDegree)
		ds.HopHist = bump(ds.HopHist, n.Hop)
	}
	ds.InDegree = Summarize(in, nil)
	ds.Hop = Summarize(hop, nil)
	return ds
}

func bump(hist []int, k int) []int {
	for len(hist) <= k {
		hist = append(hist, 0)
	}
	hist[k]++
	return hist
}
