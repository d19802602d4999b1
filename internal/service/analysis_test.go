package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/types"
)

func TestValidatePhase(t *testing.T) {
	fru := &model.Encounter{
		EncounterID:    1079,
		EncounterName:  "Futures Rewritten",
		LastPhaseIndex: null.IntFrom(3),
	}

	assert.NoError(t, validatePhase(fru, 0))
	assert.NoError(t, validatePhase(fru, 2))
	assert.NoError(t, validatePhase(fru, 3))

	// the pull wiped in phase 3
	assert.Error(t, validatePhase(fru, 4))
	// FRU has no phase 9
	assert.Error(t, validatePhase(fru, 9))

	singlePhase := &model.Encounter{EncounterID: 93, EncounterName: "Black Cat"}
	assert.NoError(t, validatePhase(singlePhase, 0))
	assert.Error(t, validatePhase(singlePhase, 1))
}

func TestBuildAnalysisRow(t *testing.T) {
	enc := &model.Encounter{
		ReportID:      "AbCd1234eFgH5678",
		FightID:       12,
		PlayerID:      5,
		EncounterID:   96,
		EncounterName: "Wicked Thunder",
		Job:           "DarkKnight",
		PlayerName:    "Crit Happens",
	}
	profile, ok := gamedata.JobProfileOf("DarkKnight")
	require.True(t, ok)

	stats := &types.JobBuildStats{
		MainStatPreBonus: 4000,
		SecondaryStat:    null.IntFrom(868),
		Determination:    2200,
		Speed:            420,
		CriticalHit:      3100,
		DirectHit:        1800,
		WeaponDamage:     141,
		Delay:            2.96,
	}

	m := buildAnalysisRow(enc, &types.PlayerAnalysisRequest{PhaseID: 0}, profile, stats)

	assert.Equal(t, "AbCd1234eFgH5678", m.ReportID)
	assert.Equal(t, 12, m.FightID)
	assert.Equal(t, 5, m.PlayerID)

	// unset party bonus defaults to full composition, floored after scaling
	assert.InDelta(t, DefaultPartyBonus, m.PartyBonus, 1e-9)
	assert.Equal(t, 4200, m.MainStat)
	assert.Equal(t, 4000, m.MainStatPreBonus)
	assert.Equal(t, "STR", m.MainStatType)

	// unset medication falls back to the default potion strength
	assert.Equal(t, fflogs.DefaultMedicationAmount, m.MedicationAmount)

	require.True(t, m.SecondaryStat.Valid)
	assert.Equal(t, int64(868), m.SecondaryStat.Int64)
	assert.Equal(t, "TEN", m.SecondaryStatType.String)
}

func TestBuildAnalysisRowNonTank(t *testing.T) {
	enc := &model.Encounter{EncounterID: 96, Job: "Scholar"}
	profile, ok := gamedata.JobProfileOf("Scholar")
	require.True(t, ok)

	stats := &types.JobBuildStats{MainStatPreBonus: 4000, PartyBonus: 1.03}
	req := &types.PlayerAnalysisRequest{MedicationAmount: 461}

	m := buildAnalysisRow(enc, req, profile, stats)

	assert.Equal(t, 4120, m.MainStat)
	assert.Equal(t, 461, m.MedicationAmount)
	assert.False(t, m.SecondaryStat.Valid)
	assert.False(t, m.SecondaryStatType.Valid)
}
