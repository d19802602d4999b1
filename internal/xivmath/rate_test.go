package xivmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateBaseValues(t *testing.T) {
	// At the substat baseline every rate bottoms out.
	r, err := NewRate(420, 420, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, r.CritProb(), 1e-9)
	assert.InDelta(t, 0.0, r.DirectHitProb(), 1e-9)
	assert.InDelta(t, 1.4, r.CritDamageMultiplier(), 1e-9)

	r, err = NewRate(2560, 1600, 100)
	require.NoError(t, err)
	assert.Greater(t, r.CritProb(), 0.05)
	assert.Greater(t, r.DirectHitProb(), 0.0)
	assert.Greater(t, r.CritDamageMultiplier(), 1.4)
}

func TestHitProbsSumToOne(t *testing.T) {
	r, err := NewRate(2560, 1600, 100)
	require.NoError(t, err)

	for _, tc := range []struct {
		crit, dh   float64
		guaranteed int
	}{
		{0, 0, HitNormal},
		{0.1, 0.2, HitNormal},
		{0, 0, HitAutoCrit},
		{0.1, 0, HitAutoDirect},
		{0.2, 0.2, HitAutoCritDirect},
	} {
		p := r.HitProbs(tc.crit, tc.dh, tc.guaranteed)
		var sum float64
		for _, v := range p {
			require.GreaterOrEqual(t, v, 0.0)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestHitProbsGuaranteedCollapse(t *testing.T) {
	r, err := NewRate(2560, 1600, 90)
	require.NoError(t, err)

	assert.Equal(t, HitProbabilities{0, 1, 0, 0}, r.HitProbs(0, 0, HitAutoCrit))
	assert.Equal(t, HitProbabilities{0, 0, 1, 0}, r.HitProbs(0, 0, HitAutoDirect))
	assert.Equal(t, HitProbabilities{0, 0, 0, 1}, r.HitProbs(0.3, 0.3, HitAutoCritDirect))
}

func TestGuaranteedHitTypeDamageBuff(t *testing.T) {
	r, err := NewRate(2560, 1600, 100)
	require.NoError(t, err)

	// No rate buffs, no bonus.
	assert.InDelta(t, 1.0, r.GuaranteedHitTypeDamageBuff(HitAutoCrit, 0, 0), 1e-9)

	// A crit rate buff on an auto-crit converts into damage.
	withBuff := r.GuaranteedHitTypeDamageBuff(HitAutoCrit, 0.1, 0)
	assert.Greater(t, withBuff, 1.0)

	// Auto crit-direct gains from both.
	both := r.GuaranteedHitTypeDamageBuff(HitAutoCritDirect, 0.1, 0.2)
	assert.Greater(t, both, withBuff)
}

func TestNewRateUnknownLevel(t *testing.T) {
	_, err := NewRate(2000, 2000, 80)
	assert.Error(t, err)
}
