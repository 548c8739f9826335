package registry

import (
	"fmt"
	"log/slog"
	"sort"
)

// Module is the interface that all component modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every component descriptor for a single application instance.
type Registry struct {
	descriptors map[string]*Descriptor
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Load registers every module in order.
func (r *Registry) Load(modules ...Module) {
	for _, mod := range modules {
		mod.Register(r)
	}
}

// RegisterDescriptor adds a component descriptor. Registering the same
// component twice is a programmer error.
func (r *Registry) RegisterDescriptor(d *Descriptor) {
	if d == nil || d.Name == "" {
		panic("component descriptor must have a name")
	}
	if _, exists := r.descriptors[d.Name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", d.Name))
	}
	slog.Debug("Registering component descriptor.", "component", d.Name)
	r.descriptors[d.Name] = d
}

// Lookup returns the descriptor registered for name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// All returns every descriptor sorted by component name.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted component names.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.descriptors)
}
