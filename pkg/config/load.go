package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/matzehuels/hotnet/pkg/errors"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatOf returns the format implied by path's extension.
// Returns INVALID_FORMAT for anything but .toml and .hcl.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config file %q (use .toml or .hcl)", path)
}

// Override adjusts a decoded configuration before defaults are applied,
// so that derived values such as max_depth follow the overridden fields.
type Override func(*Config)

// Load reads, defaults and validates the configuration at path.
func Load(path string, overrides ...Override) (Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, format, filepath.Base(path), overrides...)
}

// Parse decodes src in the given format, runs overrides, then applies
// defaults and validates. name labels diagnostics.
func Parse(src []byte, format Format, name string, overrides ...Override) (Config, error) {
	var (
		cfg Config
		err error
	)
	switch format {
	case FormatTOML:
		cfg, err = decodeTOML(src, name)
	case FormatHCL:
		cfg, err = decodeHCL(src, name)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return Config{}, err
	}
	for _, o := range overrides {
		o(&cfg)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeTOML(src []byte, name string) (Config, error) {
	cfg := Config{Seed: DefaultSeed}
	md, err := toml.NewDecoder(bytes.NewReader(src)).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// hclFile mirrors Config in HCL form. Optional attributes are pointers so
// that absence is distinguishable from zero.
type hclFile struct {
	Seed      *uint64       `hcl:"seed,optional"`
	Size      int           `hcl:"size"`
	Topology  *hclTopology  `hcl:"topology,block"`
	Observers []hclObserver `hcl:"observer,block"`
}

type hclTopology struct {
	OutDegree int      `hcl:"out_degree"`
	MaxCoord  *float64 `hcl:"max_coord,optional"`
	Alfa      float64  `hcl:"alfa"`
	Ring      *string  `hcl:"ring,optional"`
}

type hclObserver struct {
	Name       string `hcl:"name,label"`
	Type       string `hcl:"type"`
	MaxDepth   *int   `hcl:"max_depth,optional"`
	Samples    *int   `hcl:"samples,optional"`
	Undirected *bool  `hcl:"undirected,optional"`
	Stats      *bool  `hcl:"stats,optional"`
	Source     *int   `hcl:"source,optional"`
	MinSize    *int   `hcl:"min_size,optional"`
}

func decodeHCL(src []byte, name string) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, name)
	if diags.HasErrors() {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, diags, "parse %s", name)
	}
	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, diags, "decode %s", name)
	}

	cfg := Config{Seed: deref(raw.Seed, DefaultSeed), Size: raw.Size}
	if t := raw.Topology; t != nil {
		alfa := t.Alfa
		cfg.Topology = Topology{
			OutDegree: t.OutDegree,
			MaxCoord:  deref(t.MaxCoord, 0),
			Alfa:      &alfa,
			Ring:      deref(t.Ring, ""),
		}
	}
	for _, o := range raw.Observers {
		cfg.Observers = append(cfg.Observers, Observer{
			Name:       o.Name,
			Type:       o.Type,
			MaxDepth:   deref(o.MaxDepth, 0),
			Samples:    deref(o.Samples, 0),
			Undirected: deref(o.Undirected, false),
			Stats:      deref(o.Stats, false),
			Source:     deref(o.Source, 0),
			MinSize:    deref(o.MinSize, 0),
		})
	}
	return cfg, nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}
