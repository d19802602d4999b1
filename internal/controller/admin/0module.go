package admin

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("controllers.admin", fx.Invoke(
		RegisterAdmin,
	))
}
