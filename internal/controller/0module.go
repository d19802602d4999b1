package controller

import (
	"go.uber.org/fx"

	controlleradmin "xivcrit.app/backend/internal/controller/admin"
	controllerv1 "xivcrit.app/backend/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (v1)
		controllerv1.Module(),

		// Controllers (admin)
		controlleradmin.Module(),
	)
}
