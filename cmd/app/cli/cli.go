package cli

import (
	"context"

	"go.uber.org/fx"

	"xivcrit.app/backend/internal/app"
	"xivcrit.app/backend/internal/app/appcontext"
)

func Start(module fx.Option) {
	app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}
