package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/repo/selector"
)

type PartyAnalysis struct {
	db  *bun.DB
	sel selector.S[model.PartyAnalysis]
}

func NewPartyAnalysis(db *bun.DB) *PartyAnalysis {
	return &PartyAnalysis{db: db, sel: selector.New[model.PartyAnalysis](db)}
}

func (r *PartyAnalysis) GetByID(ctx context.Context, partyAnalysisID string) (*model.PartyAnalysis, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("party_analysis_id = ?", partyAnalysisID)
	})
}

// GetMatching finds a prior party analysis over the same member analyses.
// Member IDs must be sorted by the caller so the JSON column compares
// stably.
func (r *PartyAnalysis) GetMatching(ctx context.Context, reportID string, fightID, phaseID int, memberIDs model.StringList) (*model.PartyAnalysis, error) {
	v, err := memberIDs.Value()
	if err != nil {
		return nil, err
	}
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("report_id = ?", reportID).
			Where("fight_id = ?", fightID).
			Where("phase_id = ?", phaseID).
			Where("member_ids = ?", v).
			Limit(1)
	})
}

func (r *PartyAnalysis) Save(ctx context.Context, m *model.PartyAnalysis) error {
	if m.CreatedAt == nil {
		now := time.Now()
		m.CreatedAt = &now
	}
	_, err := r.db.NewInsert().
		On("CONFLICT (party_analysis_id) DO UPDATE").
		Model(m).
		Exec(ctx)
	return err
}

func (r *PartyAnalysis) GetFlagged(ctx context.Context, limit int) ([]*model.PartyAnalysis, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("redo_flag = ?", true).Order("created_at ASC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q
	})
}

func (r *PartyAnalysis) FlagByID(ctx context.Context, partyAnalysisID string, flag bool) error {
	_, err := r.db.NewUpdate().
		Model((*model.PartyAnalysis)(nil)).
		Set("redo_flag = ?", flag).
		Where("party_analysis_id = ?", partyAnalysisID).
		Exec(ctx)
	return err
}

// GetByMemberID finds the party analyses containing one player analysis,
// used to cascade recompute flags upwards.
func (r *PartyAnalysis) GetByMemberID(ctx context.Context, analysisID string) ([]*model.PartyAnalysis, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("member_ids LIKE ?", "%\""+analysisID+"\"%")
	})
}
