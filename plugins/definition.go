package plugins

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

// ModuleDefinition describes a directory-provided wizard module.
//
// The struct mirrors the on-disk YAML schema under the module definition
// directories and is intentionally narrow: identity comes from the file
// basename, ordering from priority, and behavior from hook commands run at
// dispatch time.
type ModuleDefinition struct {
	Description string `yaml:"description,omitempty"`

	// Priority is nil when the definition declares none, which resolves to
	// the engine default. Declared priorities start at 1.
	Priority *int `yaml:"priority,omitempty"`

	Properties map[string]string   `yaml:"properties,omitempty"`
	Hooks      map[string][]string `yaml:"hooks,omitempty"`
}

// Normalized returns a trimmed copy of the definition.
func (def ModuleDefinition) Normalized() ModuleDefinition {
	clone := ModuleDefinition{
		Description: strings.TrimSpace(def.Description),
	}
	if def.Priority != nil {
		priority := *def.Priority
		clone.Priority = &priority
	}
	if len(def.Properties) > 0 {
		clone.Properties = make(map[string]string, len(def.Properties))
		for key, value := range def.Properties {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Properties[trimmed] = strings.TrimSpace(value)
		}
	}
	if len(def.Hooks) > 0 {
		clone.Hooks = make(map[string][]string, len(def.Hooks))
		for hook, argv := range def.Hooks {
			trimmed := strings.TrimSpace(hook)
			if trimmed == "" {
				continue
			}
			clone.Hooks[trimmed] = append([]string{}, argv...)
		}
	}
	return clone
}

// Validate ensures the definition is well-formed.
func (def ModuleDefinition) Validate() error {
	normalized := def.Normalized()
	if normalized.Priority != nil && *normalized.Priority < 1 {
		return fmt.Errorf("plugin: priority must be >= 1")
	}
	for hook, argv := range normalized.Hooks {
		if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
			return fmt.Errorf("plugin: hook %s needs a command", hook)
		}
	}
	return nil
}

// Descriptor converts the definition into an engine descriptor. Hook
// commands become callbacks that shell out when the hook is dispatched.
func (def ModuleDefinition) Descriptor(name, source string) *module.Descriptor {
	normalized := def.Normalized()
	desc := &module.Descriptor{
		Name:        name,
		Source:      source,
		Description: normalized.Description,
		Props:       normalized.Properties,
	}
	if normalized.Priority != nil {
		desc.Priority = *normalized.Priority
	}
	if len(normalized.Hooks) > 0 {
		desc.Hooks = make(map[string]module.HookFunc, len(normalized.Hooks))
		for hook, argv := range normalized.Hooks {
			desc.Hooks[hook] = commandHook(name, hook, argv)
		}
	}
	return desc
}

// commandHook runs a definition's argv for one hook. Success and failure
// are the command's exit status; output goes to the wizard log, never to
// the screen, because a dialog may own the terminal.
func commandHook(moduleName, hook string, argv []string) module.HookFunc {
	return func(ctx *module.Context) error {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Env = append(os.Environ(), hookEnv(ctx, hook)...)
		out, err := cmd.CombinedOutput()
		if ctx != nil && ctx.Logger != nil && len(out) > 0 {
			ctx.Logger.Printf("module %s: hook %s output: %s", moduleName, hook, strings.TrimSpace(string(out)))
		}
		if err != nil {
			return fmt.Errorf("plugin: %s %s: %w", moduleName, hook, err)
		}
		return nil
	}
}

// hookEnv exposes the staged settings to hook commands. The root password
// deliberately stays out of the environment.
func hookEnv(ctx *module.Context, hook string) []string {
	env := []string{"FIRSTBOOT_HOOK=" + hook}
	if ctx == nil {
		return env
	}
	if ctx.Config != nil {
		env = append(env, "FIRSTBOOT_ROOT="+ctx.Config.Root)
	}
	if ctx.Settings != nil {
		env = append(env,
			"FIRSTBOOT_LOCALE="+ctx.Settings.Locale,
			"FIRSTBOOT_KEYMAP="+ctx.Settings.Keymap,
			"FIRSTBOOT_TIMEZONE="+ctx.Settings.Timezone,
		)
	}
	return env
}
