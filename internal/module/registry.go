package module

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Registry owns every known module descriptor for one wizard run. Builtins
// register first, directory discovery then overrides or disables by name,
// and Freeze establishes the execution order used for the rest of the run.
type Registry struct {
	mu         sync.RWMutex
	modules    map[string]*Descriptor
	order      []string
	disabled   map[string]struct{}
	frozen     []*Descriptor
	discovered bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules:  map[string]*Descriptor{},
		disabled: map[string]struct{}{},
	}
}

// Register installs a descriptor. Returns an error if the name already
// exists; built-in modules must not collide with each other.
func (r *Registry) Register(desc *Descriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen != nil {
		return fmt.Errorf("module: registry is frozen, cannot register %s", desc.Name)
	}
	if _, exists := r.modules[desc.Name]; exists {
		return fmt.Errorf("module: %s already registered", desc.Name)
	}
	r.modules[desc.Name] = desc
	r.order = append(r.order, desc.Name)
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(desc *Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Override installs a discovered descriptor, replacing any same-named
// registration. The replaced definition keeps its position in the staging
// order; a new name is appended.
func (r *Registry) Override(desc *Descriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen != nil {
		return fmt.Errorf("module: registry is frozen, cannot override %s", desc.Name)
	}
	if _, exists := r.modules[desc.Name]; !exists {
		r.order = append(r.order, desc.Name)
	}
	r.modules[desc.Name] = desc
	return nil
}

// Disable excludes a module name from the run entirely, whether it was
// registered before, after, or never.
func (r *Registry) Disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[name] = struct{}{}
}

// Property looks up a value the named module declared, returning def
// unchanged when the module or property is unknown. The priority property is
// additionally served from the descriptor's Priority field.
func (r *Registry) Property(moduleName, property, def string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.modules[moduleName]
	if !ok {
		return def
	}
	if value, ok := desc.Props[property]; ok {
		return value
	}
	if property == "priority" && desc.Priority != 0 {
		return strconv.Itoa(desc.Priority)
	}
	return def
}

// MarkDiscovered records that directory discovery ran. Discovery consults
// this flag so a second call within the same run is a no-op.
func (r *Registry) MarkDiscovered() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discovered = true
}

// DiscoveryDone reports whether directory discovery already ran.
func (r *Registry) DiscoveryDone() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.discovered
}

// Freeze resolves priorities and fixes the execution order: a stable
// ascending sort by priority over the staging order, skipping disabled
// names. The first call freezes the list; later calls return the same one.
func (r *Registry) Freeze() []*Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen == nil {
		list := make([]*Descriptor, 0, len(r.order))
		for _, name := range r.order {
			if _, off := r.disabled[name]; off {
				continue
			}
			list = append(list, r.modules[name])
		}
		sort.SliceStable(list, func(i, j int) bool {
			return r.priorityLocked(list[i]) < r.priorityLocked(list[j])
		})
		r.frozen = list
	}
	return append([]*Descriptor{}, r.frozen...)
}

// Modules returns the frozen execution order, freezing on first use.
func (r *Registry) Modules() []*Descriptor {
	return r.Freeze()
}

// Names returns the module names in frozen execution order.
func (r *Registry) Names() []string {
	modules := r.Freeze()
	names := make([]string, len(modules))
	for i, desc := range modules {
		names[i] = desc.Name
	}
	return names
}

func (r *Registry) priorityLocked(desc *Descriptor) int {
	if value, ok := desc.Props["priority"]; ok {
		if priority, err := strconv.Atoi(value); err == nil && priority >= 1 {
			return priority
		}
	}
	return desc.EffectivePriority()
}
