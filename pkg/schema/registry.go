package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named model descriptor tables. Associations between
// registered models may refer to each other by name via Deferred, so
// mutually referencing models can be registered in any order. Lookups are
// safe for concurrent use; the engine treats the registry as read-only.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Register adds a model descriptor table under its name.
// Returns ErrDuplicateModel if the name is already taken and ErrInvalidKind
// if any association declares an unrecognized kind.
func (r *Registry) Register(m *Model) error {
	for key, assoc := range m.Associations {
		if !IsValidKind(assoc.Kind) {
			return fmt.Errorf("%s.%s: %w", m.Name, key, ErrInvalidKind)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[m.Name]; ok {
		return fmt.Errorf("%s: %w", m.Name, ErrDuplicateModel)
	}
	r.models[m.Name] = m
	return nil
}

// Lookup returns the model registered under the given name.
// Returns ErrModelNotFound if no such model exists.
func (r *Registry) Lookup(name string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrModelNotFound)
	}
	return m, nil
}

// Names returns the registered model names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deferred returns a TargetRef that resolves the named model against this
// registry at first use. The model need not be registered yet; resolving
// before registration fails with ErrUnresolvedTarget.
func (r *Registry) Deferred(name string) TargetRef {
	return DeferredTarget(func() *Model {
		m, err := r.Lookup(name)
		if err != nil {
			return nil
		}
		return m
	})
}
