// Package config defines the run configuration and loads it from TOML or HCL.
//
// A configuration names the network size and seed, the topology parameters
// handed to the builder, and the observers to run on the finished overlay:
//
//	seed = 42
//	size = 1000
//
//	[topology]
//	out_degree = 2
//	alfa = 10.0
//
//	[[observer]]
//	name = "ball"
//	type = "ball_expansion"
//	undirected = true
//	stats = true
//
// alfa has no default; a configuration without it is rejected with
// INVALID_CONFIG. [Load] picks the decoder by file extension (.toml or
// .hcl); [Default] returns a runnable configuration and [Write] encodes one
// as TOML.
package config

import (
	"fmt"

	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/hot"
)

// Defaults applied to omitted values.
const (
	DefaultSeed    = 42
	DefaultSamples = 1000
	DefaultMinSize = 10
)

// Config is a complete run description.
type Config struct {
	Seed      uint64     `toml:"seed" json:"seed"`
	Size      int        `toml:"size" json:"size"`
	Topology  Topology   `toml:"topology" json:"topology"`
	Observers []Observer `toml:"observer" json:"observers,omitempty"`
}

// Topology holds the builder parameters.
type Topology struct {
	OutDegree int      `toml:"out_degree" json:"out_degree"`
	MaxCoord  float64  `toml:"max_coord,omitempty" json:"max_coord,omitempty"`
	Alfa      *float64 `toml:"alfa" json:"alfa"`
	Ring      string   `toml:"ring,omitempty" json:"ring,omitempty"`
}

// Observer configures one analysis component. Which fields apply depends on
// Type; unused fields are ignored.
type Observer struct {
	Name       string `toml:"name" json:"name"`
	Type       string `toml:"type" json:"type"`
	MaxDepth   int    `toml:"max_depth,omitempty" json:"max_depth,omitempty"`
	Samples    int    `toml:"samples,omitempty" json:"samples,omitempty"`
	Undirected bool   `toml:"undirected,omitempty" json:"undirected,omitempty"`
	Stats      bool   `toml:"stats,omitempty" json:"stats,omitempty"`
	Source     int    `toml:"source,omitempty" json:"source,omitempty"`
	// MinSize skips ball_expansion and graph_stats on smaller networks.
	MinSize int `toml:"min_size,omitempty" json:"min_size,omitempty"`
}

// Default returns a runnable configuration with one observer of each kind.
func Default() Config {
	alfa := 10.0
	return Config{
		Seed: DefaultSeed,
		Size: 1000,
		Topology: Topology{
			OutDegree: 2,
			MaxCoord:  hot.DefaultMaxCoord,
			Alfa:      &alfa,
			Ring:      string(hot.RingCompat),
		},
		Observers: []Observer{
			{Name: "ball", Type: "ball_expansion", MaxDepth: 1000, Samples: 100, Undirected: true, Stats: true, MinSize: DefaultMinSize},
			{Name: "stats", Type: "graph_stats", MaxDepth: 1000, Samples: DefaultSamples, Undirected: true, MinSize: DefaultMinSize},
			{Name: "degrees", Type: "degree_stats", MaxDepth: 1000, Samples: DefaultSamples, MinSize: DefaultMinSize},
		},
	}
}

// ApplyDefaults fills omitted optional values in place.
// Observer max_depth defaults to the network size.
func (c *Config) ApplyDefaults() {
	if c.Topology.MaxCoord == 0 {
		c.Topology.MaxCoord = hot.DefaultMaxCoord
	}
	if c.Topology.Ring == "" {
		c.Topology.Ring = string(hot.RingCompat)
	}
	for i := range c.Observers {
		o := &c.Observers[i]
		if o.Name == "" {
			o.Name = o.Type
		}
		if o.MaxDepth == 0 {
			o.MaxDepth = c.Size
		}
		if o.Samples == 0 {
			o.Samples = DefaultSamples
		}
		if o.MinSize == 0 {
			o.MinSize = DefaultMinSize
		}
	}
}

// Validate checks the configuration. Every failure is INVALID_CONFIG except
// a size that cannot hold the roots, which is TOO_FEW_NODES.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "size must be > 0, got %d", c.Size)
	}
	if c.Topology.Alfa == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "topology.alfa is required")
	}
	if err := c.Topology.Hot().Validate(); err != nil {
		return err
	}
	if c.Size <= c.Topology.OutDegree {
		return errors.New(errors.ErrCodeTooFewNodes, "size %d must exceed out_degree %d", c.Size, c.Topology.OutDegree)
	}

	seen := make(map[string]bool, len(c.Observers))
	for i, o := range c.Observers {
		if o.Type == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "observer %d: type is required", i)
		}
		if seen[o.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "observer %q defined twice", o.Name)
		}
		seen[o.Name] = true
		if err := o.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "observer %q", o.Name)
		}
	}
	return nil
}

func (o Observer) validate() error {
	switch {
	case o.MaxDepth < 0:
		return fmt.Errorf("max_depth must be >= 0, got %d", o.MaxDepth)
	case o.Samples < 0:
		return fmt.Errorf("samples must be >= 0, got %d", o.Samples)
	case o.Source < 0:
		return fmt.Errorf("source must be >= 0, got %d", o.Source)
	case o.MinSize < 0:
		return fmt.Errorf("min_size must be >= 0, got %d", o.MinSize)
	}
	return nil
}

// Hot converts the topology section to builder parameters.
// A missing alfa converts to 0; call [Config.Validate] first.
func (t Topology) Hot() hot.Config {
	c := hot.Config{
		OutDegree: t.OutDegree,
		MaxCoord:  t.MaxCoord,
		Ring:      hot.RingMode(t.Ring),
	}
	if c.MaxCoord == 0 {
		c.MaxCoord = hot.DefaultMaxCoord
	}
	if t.Alfa != nil {
		c.Alfa = *t.Alfa
	}
	return c
}
