package modules

import (
	"github.com/jsrain/jeos-firstboot/internal/module"
	"github.com/jsrain/jeos-firstboot/internal/modules/keyboard"
	"github.com/jsrain/jeos-firstboot/internal/modules/language"
	"github.com/jsrain/jeos-firstboot/internal/modules/password"
	"github.com/jsrain/jeos-firstboot/internal/modules/timezone"
)

// RegisterBuiltins installs all of the built-in wizard modules into the
// provided registry. Directory-discovered definitions may later override or
// disable any of them by name.
func RegisterBuiltins(reg *module.Registry) {
	if reg == nil {
		return
	}
	language.Register(reg)
	keyboard.Register(reg)
	timezone.Register(reg)
	password.Register(reg)
}
