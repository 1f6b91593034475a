package plugins

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const goDefinitionFuncName = "Module"

// loadGoDefinitionFile evaluates a .go definition file with the embedded
// interpreter and collects the descriptor declared via Module(). The script
// declares package main and returns a map with the same keys as the YAML
// schema, except that hook values are functions instead of command lines:
//
//	func Module() map[string]any {
//		return map[string]any{
//			"priority": 45,
//			"hooks": map[string]any{
//				"apply": func() error { ... },
//			},
//		}
//	}
//
// Evaluation must not have side effects beyond populating the returned
// descriptor; the wizard invokes the hook functions later, in priority
// order.
func loadGoDefinitionFile(name, path string) (*module.Descriptor, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("plugin: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("plugin: prepare interpreter: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("plugin: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(goDefinitionFuncName)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s must define %s() map[string]any: %w", path, goDefinitionFuncName, err)
	}
	raw, err := invokeDefinitionFunc(fnValue)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	hooks, err := extractHookFuncs(raw)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	// The remaining keys follow the YAML schema; round-trip them through
	// the same decoder so both formats validate identically.
	payload, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	def, err := ParseDefinitionYAML(payload)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	desc := def.Descriptor(name, path)
	if len(hooks) > 0 {
		if desc.Hooks == nil {
			desc.Hooks = make(map[string]module.HookFunc, len(hooks))
		}
		for hook, fn := range hooks {
			desc.Hooks[hook] = fn
		}
	}
	return desc, nil
}

func invokeDefinitionFunc(value reflect.Value) (map[string]any, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", goDefinitionFuncName)
	}
	fn := value
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goDefinitionFuncName)
	}
	if fn.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s must take no arguments", goDefinitionFuncName)
	}
	results := fn.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return map[string]any[, error]", goDefinitionFuncName)
	}
	if len(results) == 2 && !results[1].IsNil() {
		if e, ok := results[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s returned a non-error second value", goDefinitionFuncName)
	}
	raw, ok := results[0].Interface().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must return map[string]any", goDefinitionFuncName)
	}
	return raw, nil
}

// extractHookFuncs pulls the function-valued hooks entry out of the raw
// descriptor map so the rest can be YAML round-tripped. The supported hook
// signatures are func() error, func() int (exit-status convention, nonzero
// is failure) and func().
func extractHookFuncs(raw map[string]any) (map[string]module.HookFunc, error) {
	entry, ok := raw["hooks"]
	if !ok {
		return nil, nil
	}
	delete(raw, "hooks")
	hookMap, ok := entry.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("hooks must be a map of hook name to function")
	}
	hooks := make(map[string]module.HookFunc, len(hookMap))
	for hook, value := range hookMap {
		fn, err := wrapHookFunc(reflect.ValueOf(value))
		if err != nil {
			return nil, fmt.Errorf("hook %s: %w", hook, err)
		}
		hooks[hook] = fn
	}
	return hooks, nil
}

func wrapHookFunc(fn reflect.Value) (module.HookFunc, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("value is not a function")
	}
	t := fn.Type()
	if t.NumIn() != 0 || t.NumOut() > 1 {
		return nil, fmt.Errorf("signature must be func() error, func() int or func()")
	}
	return func(*module.Context) error {
		results := fn.Call(nil)
		if len(results) == 0 {
			return nil
		}
		switch result := results[0].Interface().(type) {
		case nil:
			return nil
		case error:
			return result
		case int:
			if result != 0 {
				return fmt.Errorf("plugin: hook exited with status %d", result)
			}
			return nil
		default:
			return fmt.Errorf("plugin: unsupported hook return type %T", result)
		}
	}, nil
}
