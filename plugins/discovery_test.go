package plugins

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

func writeDefinition(t *testing.T, dir, base, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func discover(t *testing.T, reg *module.Registry, overrideDir, defaultDir string) {
	t.Helper()
	if err := RegisterDiscovered(reg, nil, overrideDir, defaultDir); err != nil {
		t.Fatalf("discover: %v", err)
	}
}

func TestOverridePrecedence(t *testing.T) {
	overrideDir := filepath.Join(t.TempDir(), "override")
	defaultDir := filepath.Join(t.TempDir(), "default")
	writeDefinition(t, overrideDir, "ping.yaml", "priority: 5\n")
	// If discovery evaluated the default definition it would fail loudly as
	// malformed YAML; precedence means it is never read.
	writeDefinition(t, defaultDir, "ping.yaml", ":::[ not yaml")

	reg := module.NewRegistry()
	discover(t, reg, overrideDir, defaultDir)

	modules := reg.Modules()
	if len(modules) != 1 {
		t.Fatalf("expected one module, got %d", len(modules))
	}
	if modules[0].Priority != 5 {
		t.Fatalf("override definition must win, got priority %d", modules[0].Priority)
	}
	if modules[0].Source != filepath.Join(overrideDir, "ping.yaml") {
		t.Fatalf("unexpected source %q", modules[0].Source)
	}
}

func TestDisableByNullLink(t *testing.T) {
	overrideDir := filepath.Join(t.TempDir(), "override")
	defaultDir := filepath.Join(t.TempDir(), "default")
	writeDefinition(t, defaultDir, "ping.yaml", "priority: 5\n")
	if err := os.MkdirAll(overrideDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(os.DevNull, filepath.Join(overrideDir, "ping.yaml")); err != nil {
		t.Fatal(err)
	}

	reg := module.NewRegistry()
	discover(t, reg, overrideDir, defaultDir)
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("disabled module must not appear, got %v", names)
	}
}

func TestNullLinkDisablesBuiltinToo(t *testing.T) {
	overrideDir := filepath.Join(t.TempDir(), "override")
	if err := os.MkdirAll(overrideDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(os.DevNull, filepath.Join(overrideDir, "keyboard")); err != nil {
		t.Fatal(err)
	}

	reg := module.NewRegistry()
	reg.MustRegister(&module.Descriptor{Name: "keyboard", Source: module.SourceBuiltin, Priority: 20})
	reg.MustRegister(&module.Descriptor{Name: "language", Source: module.SourceBuiltin, Priority: 10})
	discover(t, reg, overrideDir, "")

	if got := reg.Names(); !reflect.DeepEqual(got, []string{"language"}) {
		t.Fatalf("null link must disable the builtin, got %v", got)
	}
}

func TestBrokenDefinitionIsSkippedNotFatal(t *testing.T) {
	defaultDir := filepath.Join(t.TempDir(), "default")
	writeDefinition(t, defaultDir, "broken.yaml", ":::[ not yaml")
	writeDefinition(t, defaultDir, "healthy.yaml", "priority: 60\n")

	reg := module.NewRegistry()
	discover(t, reg, "", defaultDir)
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"healthy"}) {
		t.Fatalf("expected only the healthy module, got %v", got)
	}
}

func TestUnsupportedExtensionIsSkipped(t *testing.T) {
	defaultDir := filepath.Join(t.TempDir(), "default")
	writeDefinition(t, defaultDir, "notes.txt", "not a module")

	reg := module.NewRegistry()
	discover(t, reg, "", defaultDir)
	if got := reg.Names(); len(got) != 0 {
		t.Fatalf("expected nothing registered, got %v", got)
	}
}

func TestMissingDirectoriesYieldZeroCandidates(t *testing.T) {
	reg := module.NewRegistry()
	discover(t, reg, filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "also-nope"))
	if got := reg.Names(); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestDiscoveryRunsOncePerProcess(t *testing.T) {
	defaultDir := filepath.Join(t.TempDir(), "default")
	writeDefinition(t, defaultDir, "ping.yaml", "priority: 70\n")

	reg := module.NewRegistry()
	discover(t, reg, "", defaultDir)
	if !reg.DiscoveryDone() {
		t.Fatal("discovery must be marked done")
	}

	// A second scan must not reload or duplicate anything, even if the
	// directory content changed in the meantime.
	writeDefinition(t, defaultDir, "pong.yaml", "priority: 80\n")
	discover(t, reg, "", defaultDir)
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"ping"}) {
		t.Fatalf("second discovery must be a no-op, got %v", got)
	}
}

func TestDiscoveredModulesSortByBasename(t *testing.T) {
	defaultDir := filepath.Join(t.TempDir(), "default")
	// Same priority everywhere: the order must come from the name sort.
	writeDefinition(t, defaultDir, "zebra.yaml", "priority: 60\n")
	writeDefinition(t, defaultDir, "alpha.yaml", "priority: 60\n")
	writeDefinition(t, defaultDir, "mango.yaml", "priority: 60\n")

	reg := module.NewRegistry()
	discover(t, reg, "", defaultDir)
	want := []string{"alpha", "mango", "zebra"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected name-sorted order %v, got %v", want, got)
	}
}
