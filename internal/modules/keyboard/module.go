package keyboard

import (
	"fmt"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const (
	moduleID = "keyboard"

	keymapCredential = "firstboot.keymap"
)

var fallbackKeymaps = []string{
	"us", "uk", "de", "de-latin1", "fr", "es", "it", "cz", "pl2", "ru", "jp106",
}

type mod struct{}

// Register installs the keyboard module.
func Register(reg *module.Registry) {
	if reg == nil {
		return
	}
	m := &mod{}
	reg.MustRegister(&module.Descriptor{
		Name:        moduleID,
		Source:      module.SourceBuiltin,
		Description: "Console keymap selection",
		Priority:    20,
		Hooks: map[string]module.HookFunc{
			module.HookConfigure: m.configure,
			module.HookApply:     m.apply,
			module.HookSummary:   m.summary,
		},
	})
}

func (m *mod) configure(ctx *module.Context) error {
	if value, ok := ctx.Credential(keymapCredential); ok {
		ctx.Settings.Keymap = value
		return nil
	}
	keymaps, err := ctx.System.ListKeymaps()
	if err != nil || len(keymaps) == 0 {
		keymaps = fallbackKeymaps
	}
	choices := make([]module.Choice, len(keymaps))
	for i, keymap := range keymaps {
		choices[i] = module.Choice{Value: keymap, Label: keymap}
	}
	selected, err := ctx.Dialog.Menu("Select the keyboard layout", choices, ctx.Config.Wizard.Defaults.Keymap)
	if err != nil {
		return err
	}
	ctx.Settings.Keymap = selected
	return nil
}

func (m *mod) apply(ctx *module.Context) error {
	if ctx.Settings.Keymap == "" {
		return nil
	}
	if err := ctx.System.SetKeymap(ctx.Settings.Keymap); err != nil {
		ctx.Dialog.Warn(fmt.Sprintf("Setting the keyboard layout to %s failed: %v", ctx.Settings.Keymap, err))
		return err
	}
	return nil
}

func (m *mod) summary(ctx *module.Context) error {
	if ctx.Settings.Keymap == "" {
		return nil
	}
	ctx.Summaryf("Keyboard layout: %s", ctx.Settings.Keymap)
	return nil
}
