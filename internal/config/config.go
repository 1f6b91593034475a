// internal/config/config.go
//
// This package handles runtime configuration for the first-boot wizard.
// Paths are resolved relative to a root prefix so the whole wizard can be
// pointed at a mounted image (or a test directory) instead of the live
// system.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultModuleDir ships with the image and holds the stock module
	// definitions.
	DefaultModuleDir = "/usr/share/jeos-firstboot/modules"

	// OverrideModuleDir is where administrators drop site-local module
	// definitions. A definition here shadows a same-named one in
	// DefaultModuleDir.
	OverrideModuleDir = "/etc/jeos-firstboot/modules"

	// StateDir holds the wizard log and the completion marker.
	StateDir = "/var/lib/jeos-firstboot"

	configFile = "/etc/jeos-firstboot/config.yaml"

	// markerName is the flag file written after a successful run so boot
	// wiring can make the wizard once-only.
	markerName = "configured"
)

const defaultConfigYAML = `# jeos-firstboot configuration
version: 1

# Values used when the administrator accepts a dialog without changing it.
defaults:
  locale: en_US.UTF-8
  keymap: us
  timezone: UTC
`

// Defaults are the pre-selected values offered by the dialogs.
type Defaults struct {
	Locale   string `yaml:"locale"`
	Keymap   string `yaml:"keymap"`
	Timezone string `yaml:"timezone"`
}

// WizardConfig models /etc/jeos-firstboot/config.yaml.
type WizardConfig struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
}

// Config holds the runtime configuration for one wizard run.
type Config struct {
	// Root is the filesystem prefix everything else is resolved under.
	// Empty means the live system.
	Root string

	// ModuleDir is the stock module definition directory.
	ModuleDir string

	// OverrideDir is the site-local module definition directory.
	OverrideDir string

	// StateDir is where the log and the completion marker live.
	StateDir string

	Wizard WizardConfig
}

// New resolves all wizard paths under root and loads the optional
// configuration file. A missing file yields the built-in defaults, not an
// error.
func New(root string) (*Config, error) {
	cfg := &Config{
		Root:        root,
		ModuleDir:   prefixed(root, DefaultModuleDir),
		OverrideDir: prefixed(root, OverrideModuleDir),
		StateDir:    prefixed(root, StateDir),
	}
	wizard, err := loadWizardConfig(prefixed(root, configFile))
	if err != nil {
		return nil, err
	}
	cfg.Wizard = wizard
	return cfg, nil
}

// InitStateDir creates the state directory skeleton (state root plus logs).
func (c *Config) InitStateDir() error {
	dirs := []string{
		c.StateDir,
		filepath.Join(c.StateDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return nil
}

// MarkerPath returns the location of the completion flag file.
func (c *Config) MarkerPath() string {
	return filepath.Join(c.StateDir, markerName)
}

// Configured reports whether a previous run already completed.
func (c *Config) Configured() bool {
	_, err := os.Stat(c.MarkerPath())
	return err == nil
}

// WriteMarker records that the wizard finished successfully.
func (c *Config) WriteMarker() error {
	if err := os.WriteFile(c.MarkerPath(), []byte("configured\n"), 0644); err != nil {
		return fmt.Errorf("config: write marker: %w", err)
	}
	return nil
}

func loadWizardConfig(path string) (WizardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			data = []byte(defaultConfigYAML)
		} else {
			return WizardConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	var wizard WizardConfig
	if err := yaml.Unmarshal(data, &wizard); err != nil {
		return WizardConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyDefaults(&wizard)
	return wizard, nil
}

func applyDefaults(wizard *WizardConfig) {
	if strings.TrimSpace(wizard.Defaults.Locale) == "" {
		wizard.Defaults.Locale = "en_US.UTF-8"
	}
	if strings.TrimSpace(wizard.Defaults.Keymap) == "" {
		wizard.Defaults.Keymap = "us"
	}
	if strings.TrimSpace(wizard.Defaults.Timezone) == "" {
		wizard.Defaults.Timezone = "UTC"
	}
}

func prefixed(root, path string) string {
	if root == "" {
		return path
	}
	return filepath.Join(root, path)
}
