package ocean

import (
	"fmt"
	"sort"
)

// Registry maps engine names to constructors.
type Registry struct {
	engines map[string]func() Engine
}

// NewRegistry returns a registry with the built-in engines.
func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]func() Engine)}
	r.engines["plume"] = func() Engine { return NewPlumeEngine() }
	return r
}

// Register adds a constructor under the given name, replacing any previous
// registration.
func (r *Registry) Register(name string, fn func() Engine) {
	r.engines[name] = fn
}

// Engine constructs the named engine.
func (r *Registry) Engine(name string) (Engine, error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return fn(), nil
}

// List returns the registered engine names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
