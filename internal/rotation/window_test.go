package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xivcrit.app/backend/internal/fflogs"
)

func TestPhaseWindow(t *testing.T) {
	// FRU, five phases.
	info := &fflogs.FightInfo{
		StartTime: 0,
		EndTime:   250000,
		PhaseTransitions: []fflogs.PhaseTransition{
			{ID: 1, StartTime: 0},
			{ID: 2, StartTime: 100000},
			{ID: 3, StartTime: 200000},
		},
	}

	start, end, err := PhaseWindow(info, 1079, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), start)
	assert.Equal(t, int64(200000), end)

	// The wipe phase runs to the end of the fight.
	start, end, err = PhaseWindow(info, 1079, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), start)
	assert.Equal(t, int64(250000), end)

	_, _, err = PhaseWindow(info, 1079, 4)
	assert.Error(t, err)
}

func TestPhaseWindowLastPhase(t *testing.T) {
	info := &fflogs.FightInfo{
		EndTime: 600000,
		PhaseTransitions: []fflogs.PhaseTransition{
			{ID: 1, StartTime: 0},
			{ID: 2, StartTime: 100000},
			{ID: 3, StartTime: 200000},
			{ID: 4, StartTime: 300000},
			{ID: 5, StartTime: 400000},
		},
	}

	start, end, err := PhaseWindow(info, 1079, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(400000), start)
	assert.Equal(t, int64(600000), end)
}

func TestPhaseWindowUnphasedEncounter(t *testing.T) {
	info := &fflogs.FightInfo{
		EndTime:          300000,
		PhaseTransitions: []fflogs.PhaseTransition{{ID: 1, StartTime: 5000}},
	}

	start, end, err := PhaseWindow(info, 94, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), start)
	assert.Equal(t, int64(300000), end)
}
