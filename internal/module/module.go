package module

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultPriority is assumed when a module declares no priority of its own.
// Lower values run earlier; declared priorities start at 1, zero is reserved
// for "not declared".
const DefaultPriority = 50

// Lifecycle hook names dispatched by the wizard. The dispatcher itself runs
// whatever name it is handed; this list only documents the stage sequence the
// entry point drives.
const (
	HookWelcome   = "welcome"
	HookConfigure = "configure"
	HookApply     = "apply"
	HookSummary   = "summary"
)

// SourceBuiltin marks descriptors compiled into the binary rather than
// loaded from a definition directory.
const SourceBuiltin = "builtin"

// ErrAborted is returned by a hook when the administrator confirmed they
// want to quit the wizard. It is the only error that stops a dispatch pass.
var ErrAborted = errors.New("module: aborted by user")

// HookFunc is one module's callback for one lifecycle hook.
type HookFunc func(*Context) error

// Descriptor is the structured definition of a configuration module: its
// identity, ordering key, declared properties, and the explicit
// hook-name-to-callback table. Descriptors are populated once at load time
// and never mutated afterwards.
type Descriptor struct {
	// Name identifies the module. Derived from the definition file basename
	// for discovered modules; unique after override resolution.
	Name string

	// Source records where the definition came from (a filesystem path, or
	// SourceBuiltin).
	Source string

	Description string

	// Priority orders execution, minimum 1; zero means "not declared" and
	// resolves to DefaultPriority.
	Priority int

	// Props holds additional values the module declared, keyed by property
	// name. Served by Registry.Property.
	Props map[string]string

	// Hooks maps a lifecycle hook name to the module's callback. Modules
	// implement only the stages they care about.
	Hooks map[string]HookFunc
}

// Validate ensures the descriptor is well-formed.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("module: descriptor is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("module: name is required")
	}
	if d.Priority < 0 {
		return fmt.Errorf("module: priority must be >= 0 for %s", d.Name)
	}
	return nil
}

// EffectivePriority resolves the declared priority, falling back to
// DefaultPriority when the module declared none.
func (d *Descriptor) EffectivePriority() int {
	if d.Priority == 0 {
		return DefaultPriority
	}
	return d.Priority
}
