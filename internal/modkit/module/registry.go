package module

import (
	"fmt"
	"sync"
)

// Registry keeps the modules mounted by one API in mount order
// safe for concurrent reads after bootstrap
type Registry struct {
	mu   sync.RWMutex
	mods []Module
	by   map[string]Module
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{by: map[string]Module{}}
}

// Add registers modules by name; duplicate names are a wiring bug and panic
func (r *Registry) Add(mods ...Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range mods {
		name := m.Name()
		if _, dup := r.by[name]; dup {
			panic(fmt.Sprintf("module: %q registered twice", name))
		}
		r.by[name] = m
		r.mods = append(r.mods, m)
	}
}

// Get returns a module by name
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.by[name]
	return m, ok
}

// All returns the modules in registration order
func (r *Registry) All() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Module(nil), r.mods...)
}

// PortsAs fetches a module by name and extracts T from its ports
func PortsAs[T any](r *Registry, name string) (T, bool) {
	m, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}
