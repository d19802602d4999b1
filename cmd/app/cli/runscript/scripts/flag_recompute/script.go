package script_flag_recompute

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func run(ctx *cli.Context, deps CommandDeps) error {
	encounter := ctx.String("encounter")
	phase := ctx.Int("phase")

	var since, until time.Time
	if t := ctx.Timestamp("since"); t != nil {
		since = *t
	}
	if t := ctx.Timestamp("until"); t != nil {
		until = *t
	}

	log.Info().
		Str("encounter", encounter).
		Int("phase", phase).
		Msg("running script")

	flagged, err := deps.AdminService.FlagEncounter(ctx.Context, encounter, phase, since, until)
	if err != nil {
		return errors.Wrap(err, "failed to flag analyses for recompute")
	}

	log.Info().Int64("flagged", flagged).Msg("script finished")

	return nil
}
