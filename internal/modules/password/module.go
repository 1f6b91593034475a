package password

import (
	"fmt"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const (
	moduleID = "password"

	// passwordCredential matches the name systemd-firstboot consumes for a
	// cleartext root password.
	passwordCredential = "passwd.plaintext-password.root"
)

type mod struct{}

// Register installs the root password module.
func Register(reg *module.Registry) {
	if reg == nil {
		return
	}
	m := &mod{}
	reg.MustRegister(&module.Descriptor{
		Name:        moduleID,
		Source:      module.SourceBuiltin,
		Description: "Root password entry",
		Priority:    40,
		Hooks: map[string]module.HookFunc{
			module.HookConfigure: m.configure,
			module.HookApply:     m.apply,
			module.HookSummary:   m.summary,
		},
	})
}

func (m *mod) configure(ctx *module.Context) error {
	if value, ok := ctx.Credential(passwordCredential); ok {
		ctx.Settings.RootPassword = value
		return nil
	}
	for {
		first, err := ctx.Dialog.Password("Enter the root password")
		if err != nil {
			return err
		}
		if first == "" {
			keep, err := ctx.Dialog.Confirm("Leave the root password unchanged?", true)
			if err != nil {
				return err
			}
			if keep {
				return nil
			}
			continue
		}
		second, err := ctx.Dialog.Password("Confirm the root password")
		if err != nil {
			return err
		}
		if first != second {
			ctx.Dialog.Warn("The passwords do not match. Please try again.")
			continue
		}
		ctx.Settings.RootPassword = first
		return nil
	}
}

func (m *mod) apply(ctx *module.Context) error {
	if ctx.Settings.RootPassword == "" {
		return nil
	}
	if err := ctx.System.SetRootPassword(ctx.Settings.RootPassword); err != nil {
		ctx.Dialog.Warn(fmt.Sprintf("Setting the root password failed: %v", err))
		return err
	}
	return nil
}

func (m *mod) summary(ctx *module.Context) error {
	if ctx.Settings.RootPassword == "" {
		ctx.Summaryf("Root password: unchanged")
		return nil
	}
	ctx.Summaryf("Root password: set")
	return nil
}
