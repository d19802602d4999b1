package runscript

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "xivcrit.app/backend/cmd/app/cli"
	script_flag_recompute "xivcrit.app/backend/cmd/app/cli/runscript/scripts/flag_recompute"
)

func depsFn[T any]() func() T {
	return func() T {
		var deps T
		cliapp.Start(fx.Populate(&deps))
		return deps
	}
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run maintenance go scripts",
		Subcommands: []*cli.Command{
			script_flag_recompute.Command(depsFn[script_flag_recompute.CommandDeps]()),
		},
	}
}
