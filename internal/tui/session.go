// internal/tui/session.go
//
// Session is the interaction helper consumed by module hooks. It owns the
// product banner and the cancel policy: a cancelled prompt is never handed
// to a module; instead the session asks "do you really want to quit" and
// either re-runs the prompt or reports module.ErrAborted.

package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

const quitQuestion = "Do you really want to quit the configuration?"

// Session presents modal dialogs styled with the product banner.
type Session struct {
	banner string
	opts   []tea.ProgramOption

	// run, when set, resolves a dialog model instead of running an
	// interactive program. Tests script the conversation through it.
	run func(tea.Model) error
}

// NewSession creates a dialog session. The banner is shown above every
// dialog; derive it with sysconfig.Banner.
func NewSession(banner string, opts ...tea.ProgramOption) *Session {
	return &Session{banner: banner, opts: opts}
}

// Banner returns the product name shown above the dialogs.
func (s *Session) Banner() string { return s.banner }

// Menu presents a selection list and returns the chosen value.
func (s *Session) Menu(title string, choices []module.Choice, selected string) (string, error) {
	for {
		m := newMenuModel(s.banner, title, choices, selected)
		if err := s.runProgram(m); err != nil {
			return "", err
		}
		if !m.cancelled {
			return m.choice, nil
		}
		if err := s.offerQuit(); err != nil {
			return "", err
		}
	}
}

// Input prompts for a line of text with an editable initial value.
func (s *Session) Input(title, value string) (string, error) {
	for {
		m := newInputModel(s.banner, title, value, false)
		if err := s.runProgram(m); err != nil {
			return "", err
		}
		if !m.cancelled {
			return m.result, nil
		}
		if err := s.offerQuit(); err != nil {
			return "", err
		}
	}
}

// Password prompts for a masked line of text.
func (s *Session) Password(title string) (string, error) {
	for {
		m := newInputModel(s.banner, title, "", true)
		if err := s.runProgram(m); err != nil {
			return "", err
		}
		if !m.cancelled {
			return m.result, nil
		}
		if err := s.offerQuit(); err != nil {
			return "", err
		}
	}
}

// Confirm asks a yes/no question, starting on def.
func (s *Session) Confirm(title string, def bool) (bool, error) {
	for {
		answer, err := s.confirm(title, def, false)
		if err == nil {
			return answer, nil
		}
		if !errors.Is(err, ErrCancelled) {
			return false, err
		}
		if err := s.offerQuit(); err != nil {
			return false, err
		}
	}
}

// Message shows text until acknowledged. Dismissing a message is the same
// as acknowledging it; there is nothing to cancel.
func (s *Session) Message(title, body string) error {
	m := newMessageModel(s.banner, title, body, false)
	return s.runProgram(m)
}

// Warn shows a warning dialog. Failures to render are ignored; a warning
// that cannot be shown must not break the wizard.
func (s *Session) Warn(body string) {
	m := newMessageModel(s.banner, "Warning", body, true)
	_ = s.runProgram(m)
}

// offerQuit runs the confirm-quit prompt. Returns module.ErrAborted when
// the administrator confirms, nil when they want to keep going. Cancelling
// the quit prompt itself counts as "keep going".
func (s *Session) offerQuit() error {
	quit, err := s.confirm(quitQuestion, false, true)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		return err
	}
	if quit {
		return module.ErrAborted
	}
	return nil
}

func (s *Session) confirm(title string, def, warn bool) (bool, error) {
	m := newConfirmModel(s.banner, title, def)
	m.warn = warn
	if err := s.runProgram(m); err != nil {
		return false, err
	}
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.yes, nil
}

func (s *Session) runProgram(m tea.Model) error {
	if s.run != nil {
		return s.run(m)
	}
	if _, err := tea.NewProgram(m, s.opts...).Run(); err != nil {
		return fmt.Errorf("tui: run dialog: %w", err)
	}
	return nil
}

// FormatSummary renders collected summary lines as a single dialog body.
func FormatSummary(lines []string) string {
	return strings.Join(lines, "\n")
}
