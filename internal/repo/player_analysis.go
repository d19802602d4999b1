package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/repo/selector"
)

type PlayerAnalysis struct {
	db  *bun.DB
	sel selector.S[model.PlayerAnalysis]
}

func NewPlayerAnalysis(db *bun.DB) *PlayerAnalysis {
	return &PlayerAnalysis{db: db, sel: selector.New[model.PlayerAnalysis](db)}
}

func (r *PlayerAnalysis) GetByID(ctx context.Context, analysisID string) (*model.PlayerAnalysis, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("analysis_id = ?", analysisID)
	})
}

// GetMatching finds a prior analysis of the same fight, player, phase and
// job build. Analysis creation is idempotent through this lookup.
func (r *PlayerAnalysis) GetMatching(ctx context.Context, m *model.PlayerAnalysis) (*model.PlayerAnalysis, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("report_id = ?", m.ReportID).
			Where("fight_id = ?", m.FightID).
			Where("player_id = ?", m.PlayerID).
			Where("phase_id = ?", m.PhaseID).
			Where("job = ?", m.Job).
			Where("main_stat = ?", m.MainStat).
			Where("determination = ?", m.Determination).
			Where("speed = ?", m.Speed).
			Where("critical_hit = ?", m.CriticalHit).
			Where("direct_hit = ?", m.DirectHit).
			Where("weapon_damage = ?", m.WeaponDamage).
			Where("medication_amount = ?", m.MedicationAmount).
			Order("created_at DESC").
			Limit(1)
	})
}

func (r *PlayerAnalysis) Save(ctx context.Context, m *model.PlayerAnalysis) error {
	if m.CreatedAt == nil {
		now := time.Now()
		m.CreatedAt = &now
	}
	_, err := r.db.NewInsert().
		On("CONFLICT (analysis_id) DO UPDATE").
		Model(m).
		Exec(ctx)
	return err
}

// GetFlagged lists analyses marked for recomputation, oldest first.
func (r *PlayerAnalysis) GetFlagged(ctx context.Context, limit int) ([]*model.PlayerAnalysis, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("redo_dps_flag = ?", true).WhereOr("redo_rotation_flag = ?", true)
		}).Order("created_at ASC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q
	})
}

// FlagByID marks one analysis for recomputation.
func (r *PlayerAnalysis) FlagByID(ctx context.Context, analysisID string, dps, rotation bool) error {
	_, err := r.db.NewUpdate().
		Model((*model.PlayerAnalysis)(nil)).
		Set("redo_dps_flag = ?", dps).
		Set("redo_rotation_flag = ?", rotation).
		Where("analysis_id = ?", analysisID).
		Exec(ctx)
	return err
}

// FlagByEncounter marks every analysis of an encounter, optionally scoped to
// one phase and a creation window, for recomputation.
func (r *PlayerAnalysis) FlagByEncounter(ctx context.Context, encounterName string, phaseID int, since, until time.Time) (int64, error) {
	q := r.db.NewUpdate().
		Model((*model.PlayerAnalysis)(nil)).
		Set("redo_dps_flag = ?", true).
		Set("redo_rotation_flag = ?", true).
		Where("encounter_name = ?", encounterName)
	if phaseID >= 0 {
		q = q.Where("phase_id = ?", phaseID)
	}
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if !until.IsZero() {
		q = q.Where("created_at <= ?", until)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PlayerAnalysis) ClearFlags(ctx context.Context, analysisID string) error {
	_, err := r.db.NewUpdate().
		Model((*model.PlayerAnalysis)(nil)).
		Set("redo_dps_flag = ?", false).
		Set("redo_rotation_flag = ?", false).
		Where("analysis_id = ?", analysisID).
		Exec(ctx)
	return err
}

// GetByIDs returns the analyses for a set of IDs, used by the history view.
func (r *PlayerAnalysis) GetByIDs(ctx context.Context, analysisIDs []string) ([]*model.PlayerAnalysis, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("analysis_id IN (?)", bun.In(analysisIDs)).
			Order("created_at DESC")
	})
}
