package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/repo/selector"
)

type AnalysisError struct {
	db  *bun.DB
	sel selector.S[model.AnalysisError]
}

func NewAnalysisError(db *bun.DB) *AnalysisError {
	return &AnalysisError{db: db, sel: selector.New[model.AnalysisError](db)}
}

func (r *AnalysisError) Upsert(ctx context.Context, m *model.AnalysisError) error {
	if m.ErroredAt == nil {
		now := time.Now()
		m.ErroredAt = &now
	}
	m.Active = true
	_, err := r.db.NewInsert().
		On("CONFLICT (error_id) DO UPDATE").
		Model(m).
		Exec(ctx)
	return err
}

// List returns error rows, optionally only active ones, newest first.
func (r *AnalysisError) List(ctx context.Context, activeOnly bool, since time.Time) ([]*model.AnalysisError, error) {
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

func (r *AnalysisError) GetByID(ctx context.Context, errorID string) (*model.AnalysisError, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("error_id = ?", errorID)
	})
}

// Resolve marks error rows inactive without deleting them, so the error run
// chart keeps its history.
func (r *AnalysisError) Resolve(ctx context.Context, errorIDs []string) error {
	_, err := r.db.NewUpdate().
		Model((*model.AnalysisError)(nil)).
		Set("active = ?", false).
		Where("error_id IN (?)", bun.In(errorIDs)).
		Exec(ctx)
	return err
}

func (r *AnalysisError) Delete(ctx context.Context, errorID string) error {
	_, err := r.db.NewDelete().
		Model((*model.AnalysisError)(nil)).
		Where("error_id = ?", errorID).
		Exec(ctx)
	return err
}
