package plugins

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsrain/jeos-firstboot/internal/config"
	"github.com/jsrain/jeos-firstboot/internal/module"
)

func TestCommandHookSeesStagedSettings(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "env.txt")
	def := ModuleDefinition{
		Hooks: map[string][]string{
			"apply": {"sh", "-c", "env | grep ^FIRSTBOOT_ > " + outFile},
		},
	}
	desc := def.Descriptor("netcfg", "/tmp/netcfg.yaml")

	ctx := &module.Context{
		Config:   &config.Config{Root: "/sysroot"},
		Settings: &module.Settings{Locale: "cs_CZ.UTF-8", Keymap: "cz", Timezone: "Europe/Prague", RootPassword: "hunter2"},
	}
	if err := desc.Hooks["apply"](ctx); err != nil {
		t.Fatalf("hook: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	env := string(data)
	for _, want := range []string{
		"FIRSTBOOT_HOOK=apply",
		"FIRSTBOOT_ROOT=/sysroot",
		"FIRSTBOOT_LOCALE=cs_CZ.UTF-8",
		"FIRSTBOOT_KEYMAP=cz",
		"FIRSTBOOT_TIMEZONE=Europe/Prague",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("hook environment missing %q", want)
		}
	}
	if strings.Contains(env, "hunter2") {
		t.Error("root password must never reach the hook environment")
	}
}

func TestCommandHookReportsExitStatus(t *testing.T) {
	def := ModuleDefinition{
		Hooks: map[string][]string{
			"apply": {"sh", "-c", "exit 7"},
		},
	}
	desc := def.Descriptor("netcfg", "/tmp/netcfg.yaml")
	if err := desc.Hooks["apply"](&module.Context{}); err == nil {
		t.Fatal("expected a failing command to surface as an error")
	}
}

func TestCommandHookRunsWithoutContext(t *testing.T) {
	def := ModuleDefinition{
		Hooks: map[string][]string{
			"summary": {"true"},
		},
	}
	desc := def.Descriptor("netcfg", "/tmp/netcfg.yaml")
	if err := desc.Hooks["summary"](nil); err != nil {
		t.Fatalf("hook without context: %v", err)
	}
}

func TestNormalizedTrimsAndCopies(t *testing.T) {
	def := ModuleDefinition{
		Description: "  trims me  ",
		Properties:  map[string]string{" stage ": " late ", "": "dropped"},
		Hooks:       map[string][]string{" apply ": {"true"}, "": {"dropped"}},
	}
	normalized := def.Normalized()
	if normalized.Description != "trims me" {
		t.Fatalf("description not trimmed: %q", normalized.Description)
	}
	if got := normalized.Properties["stage"]; got != "late" {
		t.Fatalf("property not trimmed: %v", normalized.Properties)
	}
	if _, ok := normalized.Properties[""]; ok {
		t.Fatal("empty property key must be dropped")
	}
	if _, ok := normalized.Hooks["apply"]; !ok {
		t.Fatalf("hook key not trimmed: %v", normalized.Hooks)
	}
	if _, ok := normalized.Hooks[""]; ok {
		t.Fatal("empty hook key must be dropped")
	}
}
