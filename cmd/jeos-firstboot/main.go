// cmd/jeos-firstboot/main.go
//
// This is the entry point for the first-boot wizard.
// Boot wiring (a systemd unit on the first boot of an image) runs this
// binary on the console; once a run completes, a marker file makes every
// later invocation a no-op.
//
// Flow:
// 1. Refuse to start without a terminal, or when already configured
// 2. Register the built-in modules, then discover directory modules
// 3. Walk the hook stages over the frozen module list
// 4. Show the summary and write the completion marker

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jsrain/jeos-firstboot/internal/config"
	"github.com/jsrain/jeos-firstboot/internal/logging"
	"github.com/jsrain/jeos-firstboot/internal/module"
	"github.com/jsrain/jeos-firstboot/internal/modules"
	"github.com/jsrain/jeos-firstboot/internal/sysconfig"
	"github.com/jsrain/jeos-firstboot/internal/tui"
	"github.com/jsrain/jeos-firstboot/plugins"
)

// stages is the fixed hook order of one wizard run. Every module gets each
// stage before the next stage starts, so all questions come before any
// change is committed.
var stages = []string{
	module.HookWelcome,
	module.HookConfigure,
	module.HookApply,
	module.HookSummary,
}

func main() {
	root := flag.String("root", "", "operate on the system mounted at this prefix instead of /")
	force := flag.Bool("force", false, "run even when the completion marker exists")
	flag.Parse()

	if err := run(*root, *force); err != nil {
		fmt.Fprintf(os.Stderr, "jeos-firstboot: %v\n", err)
		os.Exit(1)
	}
}

func run(root string, force bool) error {
	if !sysconfig.IsInteractive() {
		return errors.New("needs an interactive terminal")
	}

	cfg, err := config.New(root)
	if err != nil {
		return err
	}
	if cfg.Configured() && !force {
		// Nothing to do; boot wiring may still invoke us on images that
		// lack a ConditionPathExists guard.
		return nil
	}
	if err := cfg.InitStateDir(); err != nil {
		return err
	}
	log, err := logging.New(cfg.StateDir)
	if err != nil {
		return err
	}
	defer log.Close()

	reg := module.NewRegistry()
	modules.RegisterBuiltins(reg)
	if err := plugins.RegisterDiscovered(reg, log, cfg.OverrideDir, cfg.ModuleDir); err != nil {
		return err
	}

	session := tui.NewSession(sysconfig.Banner(cfg.Root))
	ctx := module.NewContext(cfg, log, session, sysconfig.NewSystem())

	ordered := reg.Freeze()
	log.Printf("starting wizard with %d modules", len(ordered))
	for _, desc := range ordered {
		log.Printf("module %s (priority %d, %s)", desc.Name, desc.EffectivePriority(), desc.Source)
	}

	for _, stage := range stages {
		if err := reg.RunHookForAll(ctx, stage); err != nil {
			if errors.Is(err, module.ErrAborted) {
				log.Printf("wizard aborted during %s", stage)
				return errors.New("aborted, the system is not configured")
			}
			return err
		}
	}

	if lines := ctx.SummaryLines(); len(lines) > 0 {
		if err := session.Message("Configuration summary", tui.FormatSummary(lines)); err != nil {
			return err
		}
	}

	if err := cfg.WriteMarker(); err != nil {
		return err
	}
	log.Printf("wizard finished, marker written to %s", cfg.MarkerPath())
	return nil
}
