package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/repo/selector"
)

type PartyAnalysisError struct {
	db  *bun.DB
	sel selector.S[model.PartyAnalysisError]
}

func NewPartyAnalysisError(db *bun.DB) *PartyAnalysisError {
	return &PartyAnalysisError{db: db, sel: selector.New[model.PartyAnalysisError](db)}
}

// Upsert writes the per-member rows of one failed party analysis.
func (r *PartyAnalysisError) Upsert(ctx context.Context, rows []*model.PartyAnalysisError) error {
	now := time.Now()
	for _, m := range rows {
		if m.ErroredAt == nil {
			m.ErroredAt = &now
		}
		m.Active = true
	}
	_, err := r.db.NewInsert().
		On("CONFLICT (error_id, player_id) DO UPDATE").
		Model(&rows).
		Exec(ctx)
	return err
}

func (r *PartyAnalysisError) List(ctx context.Context, activeOnly bool, since time.Time) ([]*model.PartyAnalysisError, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if activeOnly {
			q = q.Where("active = ?", true)
		}
		if !since.IsZero() {
			q = q.Where("errored_at >= ?", since)
		}
		return q.Order("errored_at DESC")
	})
}

func (r *PartyAnalysisError) GetByID(ctx context.Context, errorID string) ([]*model.PartyAnalysisError, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("error_id = ?", errorID).Order("player_id ASC")
	})
}

func (r *PartyAnalysisError) Resolve(ctx context.Context, errorIDs []string) error {
	_, err := r.db.NewUpdate().
		Model((*model.PartyAnalysisError)(nil)).
		Set("active = ?", false).
		Where("error_id IN (?)", bun.In(errorIDs)).
		Exec(ctx)
	return err
}

func (r *PartyAnalysisError) Delete(ctx context.Context, errorID string) error {
	_, err := r.db.NewDelete().
		Model((*model.PartyAnalysisError)(nil)).
		Where("error_id = ?", errorID).
		Exec(ctx)
	return err
}
