package language

// Package language owns the first dialog of the wizard.
//
// Hooks:
//   - welcome: greets the administrator; runs before any configuration
//     dialog because this module has the lowest builtin priority.
//   - configure: offers the locale list from `localectl list-locales`
//     (falling back to a baked-in set when the tool is missing) and stages
//     the selection. The firstboot.locale credential pre-seeds the value
//     and suppresses the dialog entirely.
//   - apply: commits the staged locale via `localectl set-locale`. A
//     failure is shown as a warning dialog; the wizard continues.
//   - summary: contributes the chosen locale to the closing summary.
