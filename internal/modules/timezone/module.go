package timezone

import (
	"fmt"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const (
	moduleID = "timezone"

	timezoneCredential = "firstboot.timezone"
)

var fallbackTimezones = []string{
	"UTC",
	"America/Chicago",
	"America/New_York",
	"America/Sao_Paulo",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Europe/Berlin",
	"Europe/London",
	"Europe/Prague",
}

type mod struct{}

// Register installs the timezone module.
func Register(reg *module.Registry) {
	if reg == nil {
		return
	}
	m := &mod{}
	reg.MustRegister(&module.Descriptor{
		Name:        moduleID,
		Source:      module.SourceBuiltin,
		Description: "Timezone selection",
		Priority:    30,
		Hooks: map[string]module.HookFunc{
			module.HookConfigure: m.configure,
			module.HookApply:     m.apply,
			module.HookSummary:   m.summary,
		},
	})
}

func (m *mod) configure(ctx *module.Context) error {
	if value, ok := ctx.Credential(timezoneCredential); ok {
		ctx.Settings.Timezone = value
		return nil
	}
	zones, err := ctx.System.ListTimezones()
	if err != nil || len(zones) == 0 {
		zones = fallbackTimezones
	}
	choices := make([]module.Choice, len(zones))
	for i, zone := range zones {
		choices[i] = module.Choice{Value: zone, Label: zone}
	}
	selected, err := ctx.Dialog.Menu("Select the timezone", choices, ctx.Config.Wizard.Defaults.Timezone)
	if err != nil {
		return err
	}
	ctx.Settings.Timezone = selected
	return nil
}

func (m *mod) apply(ctx *module.Context) error {
	if ctx.Settings.Timezone == "" {
		return nil
	}
	if err := ctx.System.SetTimezone(ctx.Settings.Timezone); err != nil {
		ctx.Dialog.Warn(fmt.Sprintf("Setting the timezone to %s failed: %v", ctx.Settings.Timezone, err))
		return err
	}
	return nil
}

func (m *mod) summary(ctx *module.Context) error {
	if ctx.Settings.Timezone == "" {
		return nil
	}
	ctx.Summaryf("Timezone: %s", ctx.Settings.Timezone)
	return nil
}
