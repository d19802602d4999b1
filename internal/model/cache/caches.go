package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"

	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/cache"
)

var (
	// ReportFightByCode caches resolved "select your player" listings, keyed
	// by "{reportID}:{fightID}".
	ReportFightByCode *cache.Set[view.ReportFight]

	// PlayerAnalysisByID caches assembled player analysis views so repeated
	// GETs skip the blob store.
	PlayerAnalysisByID *cache.Set[view.PlayerAnalysis]

	// PartyAnalysisByID caches assembled party analysis views.
	PartyAnalysisByID *cache.Set[view.PartyAnalysis]

	once sync.Once
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		cache.Initialize(client)

		ReportFightByCode = cache.NewSet[view.ReportFight]("reportFight")
		PlayerAnalysisByID = cache.NewSet[view.PlayerAnalysis]("playerAnalysis")
		PartyAnalysisByID = cache.NewSet[view.PartyAnalysis]("partyAnalysis")
	})
}
