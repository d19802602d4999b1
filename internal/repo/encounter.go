package repo

import (
	"context"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/repo/selector"
)

type Encounter struct {
	db  *bun.DB
	sel selector.S[model.Encounter]
}

func NewEncounter(db *bun.DB) *Encounter {
	return &Encounter{db: db, sel: selector.New[model.Encounter](db)}
}

// SaveEncounters upserts the player rows of one resolved report fight.
func (r *Encounter) SaveEncounters(ctx context.Context, encounters []*model.Encounter) error {
	_, err := r.db.NewInsert().
		On("CONFLICT (report_id, fight_id, player_id) DO UPDATE").
		Model(&encounters).
		Exec(ctx)
	return err
}

func (r *Encounter) GetEncounter(ctx context.Context, reportID string, fightID, playerID int) (*model.Encounter, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("report_id = ?", reportID).
			Where("fight_id = ?", fightID).
			Where("player_id = ?", playerID)
	})
}

// GetFightPlayers lists every player of one pull, in player ID order.
func (r *Encounter) GetFightPlayers(ctx context.Context, reportID string, fightID int) ([]*model.Encounter, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("report_id = ?", reportID).
			Where("fight_id = ?", fightID).
			Order("player_id ASC")
	})
}
