package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewBlob,
		NewQueue,
		NewAdmin,
		NewHealth,
		NewHistory,
		NewJobBuild,
		NewEncounter,
		NewPlayerAnalysis,
		NewPartyAnalysis,
	))
}
