package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/rotation"
	"xivcrit.app/backend/internal/xivmath"
)

func TestJobStats(t *testing.T) {
	m := &model.PlayerAnalysis{
		MainStat:      3000,
		Determination: 2000,
		WeaponDamage:  132,
		SecondaryStat: null.IntFrom(2100),
	}

	tank := jobStats(m, gamedata.JobProfile{Tank: true, JobAttribute: 105, Trait: 1}, 100)
	assert.True(t, tank.Tank)
	assert.Equal(t, 2100, tank.Tenacity)
	assert.Equal(t, 3000, tank.MainStat)
	assert.Equal(t, 100, tank.Level)

	healer := jobStats(m, gamedata.JobProfile{JobAttribute: 115, Trait: 1.3}, 100)
	assert.False(t, healer.Tank)
	assert.Zero(t, healer.Tenacity)
	assert.InDelta(t, 1.3, healer.Trait, 1e-9)
}

func TestActionDistributions(t *testing.T) {
	stats := xivmath.JobStats{
		Level:         100,
		MainStat:      3000,
		Determination: 2000,
		WeaponDamage:  132,
		JobAttribute:  115,
		Trait:         1.3,
	}
	probs := xivmath.HitProbabilities{0.5, 0.25, 0.2, 0.05}

	rows := []rotation.Row{
		{ActionName: "Broil IV", N: 3, Potency: 310, BuffMultiplier: 1, CritDamageMult: 1.6, Probs: probs},
		{ActionName: "Biolysis (tick)", N: 8, Potency: 75, BuffMultiplier: 1, CritDamageMult: 1.6, Probs: probs},
		{ActionName: "Broil IV", N: 2, Potency: 310, BuffMultiplier: 1, CritDamageMult: 1.6, Probs: probs},
	}

	dists, err := actionDistributions(rows, stats)
	require.NoError(t, err)
	require.Len(t, dists, 2)

	assert.Equal(t, "Broil IV", dists[0].Name)
	assert.Equal(t, 5, dists[0].N)
	assert.Equal(t, "Biolysis (tick)", dists[1].Name)
	assert.Equal(t, 8, dists[1].N)
	assert.Greater(t, dists[0].BaseDamage, dists[1].BaseDamage)
}

func TestActionDistributionsUnknownLevel(t *testing.T) {
	rows := []rotation.Row{{ActionName: "Broil IV", N: 1, Potency: 310, BuffMultiplier: 1}}
	_, err := actionDistributions(rows, xivmath.JobStats{Level: 50})
	assert.Error(t, err)
}

func TestSummarizeActions(t *testing.T) {
	uniform := xivmath.ActionPDF{
		PDF:     []float64{0.02, 0.02, 0.02, 0.02, 0.02},
		Support: []float64{0, 10, 20, 30, 40},
	}
	dist := xivmath.RotationDistribution{
		UniqueActions: map[string]xivmath.ActionPDF{"Broil IV": uniform},
	}
	rows := []rotation.Row{
		{ActionName: "Broil IV", N: 3, TotalDamage: 12},
		{ActionName: "Broil IV", N: 2, TotalDamage: 8},
		{ActionName: "Sprint", N: 1},
	}

	out := summarizeActions(rows, dist, 10)
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, "Broil IV", s.Name)
	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 2.0, s.ActualDPS, 1e-9)
	assert.InDelta(t, 0.6, s.Percentile, 1e-9)
}

func TestSummarizeActionsSorted(t *testing.T) {
	pdf := xivmath.ActionPDF{PDF: []float64{0.05, 0.05}, Support: []float64{0, 10}}
	dist := xivmath.RotationDistribution{
		UniqueActions: map[string]xivmath.ActionPDF{"Zodiark": pdf, "Adloquium": pdf, "Broil IV": pdf},
	}
	rows := []rotation.Row{
		{ActionName: "Zodiark", N: 1, TotalDamage: 5},
		{ActionName: "Adloquium", N: 1, TotalDamage: 5},
		{ActionName: "Broil IV", N: 1, TotalDamage: 5},
	}

	out := summarizeActions(rows, dist, 1)
	require.Len(t, out, 3)
	assert.Equal(t, "Adloquium", out[0].Name)
	assert.Equal(t, "Broil IV", out[1].Name)
	assert.Equal(t, "Zodiark", out[2].Name)
}

func TestTotalDamage(t *testing.T) {
	rows := []rotation.Row{
		{ActionName: "Broil IV", TotalDamage: 1200},
		{ActionName: "Biolysis (tick)", TotalDamage: 340.5},
	}
	assert.InDelta(t, 1540.5, totalDamage(rows), 1e-9)
}

func TestResample(t *testing.T) {
	pdf := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	support := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	gotPDF, gotSupport := resample(pdf, support, 5)
	require.Len(t, gotPDF, 5)
	require.Len(t, gotSupport, 5)
	assert.Equal(t, 0.0, gotSupport[0])
	assert.Equal(t, 100.0, gotSupport[4])
	assert.InDelta(t, 0.0, gotPDF[0], 1e-9)
	assert.InDelta(t, 10.0, gotPDF[4], 1e-9)
	// linear data survives linear interpolation exactly
	assert.InDelta(t, 5.0, gotPDF[2], 1e-9)

	// short densities come back untouched
	samePDF, sameSupport := resample(pdf, support, 50)
	assert.Equal(t, pdf, samePDF)
	assert.Equal(t, support, sameSupport)

	emptyPDF, emptySupport := resample(nil, nil, 5)
	assert.Nil(t, emptyPDF)
	assert.Nil(t, emptySupport)
}
