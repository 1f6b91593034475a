package sysconfig

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether the wizard is attached to a real terminal on
// both ends. Without one the dialogs cannot run and the wizard must bail out
// before touching anything.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
