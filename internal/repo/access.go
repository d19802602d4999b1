package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
)

type Access struct {
	db *bun.DB
}

func NewAccess(db *bun.DB) *Access {
	return &Access{db: db}
}

func (r *Access) Record(ctx context.Context, analysisID string) error {
	now := time.Now()
	_, err := r.db.NewInsert().
		Model(&model.AccessRecord{AnalysisID: analysisID, AccessedAt: &now}).
		Exec(ctx)
	return err
}

func (r *Access) CountSince(ctx context.Context, analysisID string, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*model.AccessRecord)(nil)).
		Where("analysis_id = ?", analysisID).
		Where("accessed_at >= ?", since).
		Count(ctx)
}
