package server

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/app"
	"xivcrit.app/backend/internal/app/appconfig"
	"xivcrit.app/backend/internal/app/appcontext"
	"xivcrit.app/backend/internal/server/httpserver"
)

func Run() {
	fxApp := app.New(appcontext.Declare(appcontext.EnvServer), fx.Invoke(run))
	if err := fxApp.Start(context.Background()); err != nil {
		panic(err)
	}
	<-fxApp.Done()
	if err := fxApp.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to stop application gracefully")
	}
}

func run(publicApp *fiber.App, adminApp *httpserver.AdminApp, conf *appconfig.Config, lc fx.Lifecycle) {
	serve(publicApp, conf.ServiceAddress, conf, lc)
	if conf.AdminAddress != "" {
		serve(adminApp.App, conf.AdminAddress, conf, lc)
	}
}

func serve(app *fiber.App, address string, conf *appconfig.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", address)
			if err != nil {
				return err
			}

			go func() {
				if err := app.Listener(ln); err != nil {
					log.Error().Err(err).Str("address", address).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if conf.DevMode {
				return nil
			}
			return app.Shutdown()
		},
	})
}
