package script_flag_recompute

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/service"
)

type CommandDeps struct {
	fx.In

	AdminService *service.Admin
}

func Command(depsFn func() CommandDeps) *cli.Command {
	return &cli.Command{
		Name:        "flag_recompute",
		Description: "flag every analysis of an encounter for recomputation, typically after a gamedata fix",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "encounter",
				Usage:    "encounter name to flag, as stored on the analyses",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "phase",
				Usage: "phase to flag, -1 for all phases",
				Value: -1,
			},
			&cli.TimestampFlag{
				Name:   "since",
				Usage:  "only flag analyses created at or after this time (RFC 3339)",
				Layout: "2006-01-02T15:04:05Z07:00",
			},
			&cli.TimestampFlag{
				Name:   "until",
				Usage:  "only flag analyses created at or before this time (RFC 3339)",
				Layout: "2006-01-02T15:04:05Z07:00",
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx, depsFn())
		},
	}
}
