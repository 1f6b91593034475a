package password

import (
	"testing"

	"github.com/jsrain/jeos-firstboot/internal/config"
	"github.com/jsrain/jeos-firstboot/internal/module"
	"github.com/jsrain/jeos-firstboot/internal/sysconfig"
)

type fakeDialog struct {
	passwords []string
	confirms  []bool
	warnings  []string
}

func (d *fakeDialog) Menu(string, []module.Choice, string) (string, error) { return "", nil }
func (d *fakeDialog) Input(_, value string) (string, error)               { return value, nil }

func (d *fakeDialog) Password(string) (string, error) {
	if len(d.passwords) == 0 {
		return "", nil
	}
	answer := d.passwords[0]
	d.passwords = d.passwords[1:]
	return answer, nil
}

func (d *fakeDialog) Confirm(_ string, def bool) (bool, error) {
	if len(d.confirms) == 0 {
		return def, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *fakeDialog) Message(string, string) error { return nil }
func (d *fakeDialog) Warn(body string)             { d.warnings = append(d.warnings, body) }

func testContext(t *testing.T, dialog module.Dialog) *module.Context {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	sys := sysconfig.NewSystem().WithRunner(func(string, []string, string) (string, error) {
		return "", nil
	})
	ctx := module.NewContext(cfg, nil, dialog, sys)
	ctx.Credential = func(string) (string, bool) { return "", false }
	return ctx
}

func configureHook(t *testing.T) (module.HookFunc, *module.Registry) {
	t.Helper()
	reg := module.NewRegistry()
	Register(reg)
	modules := reg.Modules()
	if len(modules) != 1 {
		t.Fatalf("expected one module, got %d", len(modules))
	}
	fn := modules[0].Hooks[module.HookConfigure]
	if fn == nil {
		t.Fatal("configure hook missing")
	}
	return fn, reg
}

func TestMismatchRetriesUntilMatch(t *testing.T) {
	dialog := &fakeDialog{passwords: []string{"one", "two", "same", "same"}}
	ctx := testContext(t, dialog)
	configure, _ := configureHook(t)
	if err := configure(ctx); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if len(dialog.warnings) != 1 {
		t.Fatalf("expected one mismatch warning, got %v", dialog.warnings)
	}
	if ctx.Settings.RootPassword != "same" {
		t.Fatalf("expected matching entry to stick, got %q", ctx.Settings.RootPassword)
	}
}

func TestEmptyEntryCanKeepPasswordUnchanged(t *testing.T) {
	dialog := &fakeDialog{passwords: []string{""}, confirms: []bool{true}}
	ctx := testContext(t, dialog)
	configure, _ := configureHook(t)
	if err := configure(ctx); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if ctx.Settings.RootPassword != "" {
		t.Fatalf("expected password to stay unset, got %q", ctx.Settings.RootPassword)
	}
}

func TestDecliningKeepAsksAgain(t *testing.T) {
	dialog := &fakeDialog{passwords: []string{"", "pw", "pw"}, confirms: []bool{false}}
	ctx := testContext(t, dialog)
	configure, _ := configureHook(t)
	if err := configure(ctx); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if ctx.Settings.RootPassword != "pw" {
		t.Fatalf("expected re-prompted password, got %q", ctx.Settings.RootPassword)
	}
}
