package sysconfig

import (
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command with optional stdin and returns
// its stdout. The default implementation shells out; tests inject a fake.
type CommandRunner func(name string, args []string, stdin string) (string, error)

func execRunner(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("sysconfig: %s: %w", name, err)
	}
	return string(out), nil
}

// System applies configuration choices to the running machine. All methods
// report success or failure by the invoked tool's exit status only; callers
// surface failures to the user themselves.
type System struct {
	run CommandRunner
}

// NewSystem returns a System backed by real command execution.
func NewSystem() *System {
	return &System{run: execRunner}
}

// WithRunner substitutes the command runner. Used by tests.
func (s *System) WithRunner(run CommandRunner) *System {
	clone := *s
	clone.run = run
	return &clone
}

// SetLocale makes locale the system-wide default.
func (s *System) SetLocale(locale string) error {
	_, err := s.run("localectl", []string{"set-locale", "LANG=" + locale}, "")
	return err
}

// SetKeymap activates keymap for the console and X11.
func (s *System) SetKeymap(keymap string) error {
	_, err := s.run("localectl", []string{"set-keymap", keymap}, "")
	return err
}

// SetTimezone points /etc/localtime at the named zone.
func (s *System) SetTimezone(timezone string) error {
	_, err := s.run("timedatectl", []string{"set-timezone", timezone}, "")
	return err
}

// SetRootPassword sets the root password via chpasswd on stdin so the
// cleartext never appears in an argument list.
func (s *System) SetRootPassword(password string) error {
	_, err := s.run("chpasswd", nil, "root:"+password+"\n")
	return err
}

// ListLocales enumerates the locales the system knows about.
func (s *System) ListLocales() ([]string, error) {
	return s.list("localectl", "list-locales")
}

// ListKeymaps enumerates the console keymaps the system knows about.
func (s *System) ListKeymaps() ([]string, error) {
	return s.list("localectl", "list-keymaps")
}

// ListTimezones enumerates the available timezone names.
func (s *System) ListTimezones() ([]string, error) {
	return s.list("timedatectl", "list-timezones")
}

func (s *System) list(name string, args ...string) ([]string, error) {
	out, err := s.run(name, args, "")
	if err != nil {
		return nil, err
	}
	var values []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	return values, nil
}
