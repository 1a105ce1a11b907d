package suite

import (
	"fmt"
	"sort"
	"sync"

	plancheckerrors "github.com/plancheck/plancheck/pkg/errors"
)

// Registry is the process-wide static table of test modules. It is populated
// once at startup and read-only for the rest of the run.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module. Empty names, nil case lists and duplicate
// registrations are rejected.
func (r *Registry) Register(m Module) error {
	if m.Name == "" {
		return plancheckerrors.NewConfigurationError("module", "module name is empty", nil)
	}
	if len(m.Cases) == 0 {
		return plancheckerrors.NewConfigurationError(m.Name, "module declares no cases", nil)
	}
	for i, c := range m.Cases {
		if c.Name == "" || c.Check == nil {
			return plancheckerrors.NewConfigurationError(m.Name, fmt.Sprintf("case %d is incomplete", i), nil)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.Name]; exists {
		return plancheckerrors.NewConfigurationError(m.Name, "module already registered", nil)
	}

	r.modules[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// Get retrieves a module by name.
func (r *Registry) Get(name string) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[name]
	if !ok {
		return Module{}, plancheckerrors.NewConfigurationError("module", fmt.Sprintf("unknown module %q", name), nil)
	}
	return m, nil
}

// All returns the registered modules in registration order, which sequential
// execution treats as declaration order.
func (r *Registry) All() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]Module, 0, len(r.order))
	for _, name := range r.order {
		modules = append(modules, r.modules[name])
	}
	return modules
}

// Names returns the sorted module names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modules)
}

// Reset clears all registrations (for tests).
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = make(map[string]Module)
	r.order = nil
}
