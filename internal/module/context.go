package module

import (
	"fmt"

	"github.com/jsrain/jeos-firstboot/internal/config"
	"github.com/jsrain/jeos-firstboot/internal/logging"
	"github.com/jsrain/jeos-firstboot/internal/sysconfig"
)

// Choice is one selectable entry in a menu dialog.
type Choice struct {
	// Value is what the selecting module receives back.
	Value string
	// Label is what the administrator sees.
	Label string
}

// Dialog is the interaction surface handed to module hooks. The concrete
// implementation lives in internal/tui; modules only depend on this
// interface so tests can script the conversation.
//
// Cancellation semantics: every prompting method retries after a cancelled
// dialog once the administrator declines the quit confirmation, and returns
// ErrAborted once they confirm it. Hooks therefore never see a plain cancel.
type Dialog interface {
	Menu(title string, choices []Choice, selected string) (string, error)
	Input(title, value string) (string, error)
	Password(title string) (string, error)
	Confirm(title string, def bool) (bool, error)
	Message(title, body string) error
	Warn(body string)
}

// Settings accumulates the administrator's choices during the configure
// stage so the apply stage can commit them in one sweep.
type Settings struct {
	Locale       string
	Keymap       string
	Timezone     string
	RootPassword string
}

// Context carries shared runtime dependencies into every hook invocation.
type Context struct {
	Config   *config.Config
	Logger   *logging.Logger
	Dialog   Dialog
	System   *sysconfig.System
	Settings *Settings

	// Credential looks up a pre-seeded value by name. Defaults to the
	// platform credentials directory; tests substitute their own.
	Credential func(name string) (string, bool)

	summary []string
}

// NewContext builds a Context wired to the real system boundaries.
func NewContext(cfg *config.Config, log *logging.Logger, dialog Dialog, sys *sysconfig.System) *Context {
	return &Context{
		Config:     cfg,
		Logger:     log,
		Dialog:     dialog,
		System:     sys,
		Settings:   &Settings{},
		Credential: sysconfig.ReadCredential,
	}
}

// Summaryf records one line for the closing summary dialog.
func (ctx *Context) Summaryf(format string, args ...any) {
	ctx.summary = append(ctx.summary, fmt.Sprintf(format, args...))
}

// SummaryLines returns the recorded summary in append order.
func (ctx *Context) SummaryLines() []string {
	return append([]string{}, ctx.summary...)
}
