package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"xivcrit.app/backend/cmd/app/cli/runscript"
	"xivcrit.app/backend/cmd/app/server"
	"xivcrit.app/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "critbackend",
		Description: "The crit analysis backend: turns FFLogs reports into damage distribution analyses. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as state synchronization.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
