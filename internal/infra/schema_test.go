package infra

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"xivcrit.app/backend/internal/model"
)

func testDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateSchema(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	require.NoError(t, CreateSchema(ctx, db))

	// A fresh database serves straight away.
	enc := &model.Encounter{
		ReportID:      "a1b2c3d4",
		FightID:       12,
		PlayerID:      1,
		EncounterID:   1079,
		EncounterName: "Futures Rewritten",
		KillTime:      512.3,
		PlayerName:    "Arc Sin",
		PetIDs:        model.IntList{23},
		Job:           "DarkKnight",
		Role:          "Tank",
	}
	_, err := db.NewInsert().Model(enc).Exec(ctx)
	require.NoError(t, err)

	now := time.Now()
	_, err = db.NewInsert().
		Model(&model.AccessRecord{AnalysisID: "abc", AccessedAt: &now}).
		Exec(ctx)
	require.NoError(t, err)

	var got model.Encounter
	err = db.NewSelect().Model(&got).
		Where("report_id = ?", "a1b2c3d4").
		Where("fight_id = ?", 12).
		Where("player_id = ?", 1).
		Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.IntList{23}, got.PetIDs)
}

func TestCreateSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	require.NoError(t, CreateSchema(ctx, db))

	_, err := db.NewInsert().
		Model(&model.PlayerAnalysis{AnalysisID: "x", ReportID: "r", FightID: 1, PlayerID: 1, Job: "Scholar"}).
		Exec(ctx)
	require.NoError(t, err)

	// Rerunning on a populated database changes nothing.
	require.NoError(t, CreateSchema(ctx, db))

	n, err := db.NewSelect().Model((*model.PlayerAnalysis)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
