package server

import (
	"go.uber.org/fx"

	"xivcrit.app/backend/internal/server/httpserver"
	"xivcrit.app/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(httpserver.CreateAdmin),
		fx.Provide(svr.CreateEndpointGroups))
}
