package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const (
	moduleID = "language"

	// localeCredential pre-seeds the locale and skips the dialog. The name
	// matches what systemd-firstboot consumes so images can share one
	// credential set.
	localeCredential = "firstboot.locale"
)

// fallbackLocales keeps the dialog usable when localectl is unavailable,
// e.g. in a minimal image without systemd tools on PATH.
var fallbackLocales = []string{
	"en_US.UTF-8",
	"cs_CZ.UTF-8",
	"de_DE.UTF-8",
	"es_ES.UTF-8",
	"fr_FR.UTF-8",
	"it_IT.UTF-8",
	"ja_JP.UTF-8",
	"pl_PL.UTF-8",
	"pt_BR.UTF-8",
	"ru_RU.UTF-8",
	"zh_CN.UTF-8",
}

type mod struct{}

// Register installs the language module.
func Register(reg *module.Registry) {
	if reg == nil {
		return
	}
	m := &mod{}
	reg.MustRegister(&module.Descriptor{
		Name:        moduleID,
		Source:      module.SourceBuiltin,
		Description: "System locale selection",
		Priority:    10,
		Hooks: map[string]module.HookFunc{
			module.HookWelcome:   m.welcome,
			module.HookConfigure: m.configure,
			module.HookApply:     m.apply,
			module.HookSummary:   m.summary,
		},
	})
}

// welcome greets the administrator before any configuration dialog. The
// language module runs first, so it owns the greeting.
func (m *mod) welcome(ctx *module.Context) error {
	body := "This wizard walks through the initial configuration of the system:\n" +
		"locale, keyboard layout, timezone and the root password.\n\n" +
		"Press esc at any prompt to quit."
	return ctx.Dialog.Message("Welcome", body)
}

func (m *mod) configure(ctx *module.Context) error {
	if value, ok := ctx.Credential(localeCredential); ok {
		ctx.Settings.Locale = value
		return nil
	}
	locales, err := ctx.System.ListLocales()
	if err != nil || len(locales) == 0 {
		locales = fallbackLocales
	}
	choices := make([]module.Choice, len(locales))
	for i, locale := range locales {
		choices[i] = module.Choice{Value: locale, Label: DisplayName(locale)}
	}
	selected, err := ctx.Dialog.Menu("Select the system locale", choices, ctx.Config.Wizard.Defaults.Locale)
	if err != nil {
		return err
	}
	ctx.Settings.Locale = selected
	return nil
}

func (m *mod) apply(ctx *module.Context) error {
	if ctx.Settings.Locale == "" {
		return nil
	}
	if err := ctx.System.SetLocale(ctx.Settings.Locale); err != nil {
		ctx.Dialog.Warn(fmt.Sprintf("Setting the locale to %s failed: %v", ctx.Settings.Locale, err))
		return err
	}
	return nil
}

func (m *mod) summary(ctx *module.Context) error {
	if ctx.Settings.Locale == "" {
		return nil
	}
	ctx.Summaryf("Locale: %s", DisplayName(ctx.Settings.Locale))
	return nil
}

// DisplayName renders a locale identifier like cs_CZ.UTF-8 as a
// human-readable label. Unparseable identifiers pass through unchanged.
func DisplayName(locale string) string {
	base, _, _ := strings.Cut(locale, ".")
	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return locale
	}
	name := display.English.Tags().Name(tag)
	if name == "" || strings.EqualFold(name, base) {
		return locale
	}
	return fmt.Sprintf("%s (%s)", name, locale)
}
