package observer

import (
	"slices"
	"strings"

	"github.com/matzehuels/hotnet/pkg/config"
	"github.com/matzehuels/hotnet/pkg/errors"
)

// Factory creates an observer from its configuration entry.
type Factory func(cfg config.Observer) (Observer, error)

// Registry maps observer type keys to factories.
// It is not safe for concurrent registration; populate it at startup.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with the built-in observer types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeBallExpansion, NewBallExpansion)
	r.Register(TypeGraphStats, NewGraphStats)
	r.Register(TypeDegreeStats, NewDegreeStats)
	return r
}

// Register binds kind to f, replacing any previous binding.
func (r *Registry) Register(kind string, f Factory) {
	r.factories[kind] = f
}

// Kinds returns the registered type keys in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// New creates the observer for cfg.
// Returns INVALID_CONFIG for an unregistered type.
func (r *Registry) New(cfg config.Observer) (Observer, error) {
	f, ok := r.factories[cfg.Type]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "observer %q: unknown type %q (known: %s)",
			cfg.Name, cfg.Type, strings.Join(r.Kinds(), ", "))
	}
	o, err := f(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "observer %q", cfg.Name)
	}
	return o, nil
}

// Resolve creates every configured observer, failing on the first error.
func (r *Registry) Resolve(cfgs []config.Observer) ([]Observer, error) {
	out := make([]Observer, 0, len(cfgs))
	for _, c := range cfgs {
		o, err := r.New(c)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
