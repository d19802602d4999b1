package infra

import (
	"context"

	"github.com/uptrace/bun"

	"xivcrit.app/backend/internal/model"
)

// schemaModels lists every table the repo layer touches.
var schemaModels = []any{
	(*model.Encounter)(nil),
	(*model.PlayerAnalysis)(nil),
	(*model.PartyAnalysis)(nil),
	(*model.AnalysisError)(nil),
	(*model.PartyAnalysisError)(nil),
	(*model.AccessRecord)(nil),
}

// CreateSchema creates the tables and indexes the application queries, so a
// fresh database file serves without a separate provisioning step. Every
// statement is IF NOT EXISTS; existing data is never touched.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, m := range schemaModels {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	indexes := []struct {
		name    string
		model   any
		columns []string
	}{
		{"idx_player_analyses_fight", (*model.PlayerAnalysis)(nil), []string{"report_id", "fight_id", "phase_id", "player_id"}},
		{"idx_party_analyses_fight", (*model.PartyAnalysis)(nil), []string{"report_id", "fight_id", "phase_id"}},
		{"idx_access_records_analysis", (*model.AccessRecord)(nil), []string{"analysis_id", "accessed_at"}},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			IfNotExists().
			Column(idx.columns...).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
