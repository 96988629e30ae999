// Package handlers provides explicit registration of all command handlers.
// Registration is explicit rather than init()-based, so the set of commands
// is visible in one place and importing a handler package has no side effects.
package handlers

import (
	"github.com/Kargones/plancheck/internal/command/handlers/help"
	"github.com/Kargones/plancheck/internal/command/handlers/planexporthandler"
	"github.com/Kargones/plancheck/internal/command/handlers/planlisthandler"
	"github.com/Kargones/plancheck/internal/command/handlers/plansessionhandler"
	"github.com/Kargones/plancheck/internal/command/handlers/planshowhandler"
	"github.com/Kargones/plancheck/internal/command/handlers/planvalidatehandler"
	"github.com/Kargones/plancheck/internal/command/handlers/version"
)

// RegisterAll explicitly registers all command handlers in the global registry.
// Call this once from main() before using any commands.
// Returns an error if any handler registration fails.
func RegisterAll() error {
	for _, register := range []func() error{
		help.RegisterCmd,
		version.RegisterCmd,
		planlisthandler.RegisterCmd,
		planshowhandler.RegisterCmd,
		planvalidatehandler.RegisterCmd,
		planexporthandler.RegisterCmd,
		plansessionhandler.RegisterCmd,
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
