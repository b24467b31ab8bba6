package hot

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hotnet/pkg/errors"
)

// RandomSource supplies the uniform draws consumed during initialization.
// [rng.Source] implements it.
type RandomSource interface {
	Bool() bool
	Float64() float64
	IntN(n int) int
	Int64N(n int64) int64
}

// RingMode selects how roots are linked before growth.
type RingMode string

const (
	// RingCompat reproduces the historical wiring: pairs (i, i+1) for
	// i in [0, d) plus (0, d).
	RingCompat RingMode = "compat"
	// RingRootsOnly closes a ring among the roots [0, d) only.
	RingRootsOnly RingMode = "roots"
)

// ParseRingMode converts a configuration value to a RingMode.
// The empty string selects [RingCompat].
func ParseRingMode(s string) (RingMode, error) {
	switch RingMode(s) {
	case "", RingCompat:
		return RingCompat, nil
	case RingRootsOnly:
		return RingRootsOnly, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown ring mode %q (must be %q or %q)", s, RingCompat, RingRootsOnly)
}

// DefaultMaxCoord is the side of the continuous unit placement square.
const DefaultMaxCoord = 1.0

// rootJitter bounds the per-axis offset of roots from the centre.
const rootJitter = 0.1

// Config holds the construction parameters.
type Config struct {
	OutDegree int      // d: number of roots and parents per node
	MaxCoord  float64  // side of the placement square; 1.0 selects continuous placement
	Alfa      float64  // weight of geometric distance in the parent cost
	Ring      RingMode // root ring variant; empty means RingCompat
}

// Validate checks the parameters independent of network size.
func (c Config) Validate() error {
	if err := validateOutDegree(c.OutDegree); err != nil {
		return err
	}
	if err := validateMaxCoord(c.MaxCoord); err != nil {
		return err
	}
	if err := validateAlfa(c.Alfa); err != nil {
		return err
	}
	_, err := ParseRingMode(string(c.Ring))
	return err
}

func validateOutDegree(d int) error {
	if d < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "out degree must be >= 1, got %d", d)
	}
	return nil
}

// MaxGridCoord bounds max_coord so grid placement can draw int coordinates.
const MaxGridCoord = math.MaxInt32

func validateMaxCoord(m float64) error {
	if math.IsNaN(m) || m < 1 || m > MaxGridCoord {
		return errors.New(errors.ErrCodeInvalidConfig, "max coord must be in [1, %d], got %v", MaxGridCoord, m)
	}
	return nil
}

func validateAlfa(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "alfa must be finite, got %v", a)
	}
	return nil
}

func validateSize(n, d int) error {
	if n <= d {
		return errors.New(errors.ErrCodeTooFewNodes, "network of %d nodes cannot hold %d roots plus growth (need more than %d)", n, d, d)
	}
	return nil
}

// Option customizes construction.
type Option func(*options)

type options struct {
	logger *log.Logger
	ring   RingMode
}

// WithLogger routes construction diagnostics to l at debug level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRing selects the root ring variant used by [Grow].
func WithRing(m RingMode) Option {
	return func(o *options) { o.ring = m }
}

func buildOptions(opts []Option) options {
	o := options{ring: RingCompat}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.ring == "" {
		o.ring = RingCompat
	}
	return o
}

// Stats summarizes one wiring pass.
type Stats struct {
	Nodes          int `json:"nodes"`
	Roots          int `json:"roots"`
	EdgesCreated   int `json:"edges_created"`   // edge creation requests, ring included
	RingEdges      int `json:"ring_edges"`      // requests issued by the root ring
	DuplicateEdges int `json:"duplicate_edges"` // requests for an edge that already existed
	MaxHop         int `json:"max_hop"`
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d roots, %d edges created (%d ring, %d duplicate), max hop %d",
		s.Nodes, s.Roots, s.EdgesCreated, s.RingEdges, s.DuplicateEdges, s.MaxHop)
}
