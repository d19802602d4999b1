package xivmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFTConvolveMatchesDirect(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{0.5, 0.25}

	direct := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			direct[i+j] += a[i] * b[j]
		}
	}

	got := FFTConvolve(a, b)
	require.Len(t, got, len(direct))
	for i := range direct {
		assert.InDelta(t, direct[i], got[i], 1e-9)
	}
}

func TestSelfConvolvePreservesMass(t *testing.T) {
	pdf := []float64{0.25, 0.5, 0.25}
	out := SelfConvolve(pdf, 3)

	var sum float64
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestCoarsenedBoundaries(t *testing.T) {
	lo, hi := CoarsenedBoundaries(105, 283, 20)
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 300.0, hi)

	lo, hi = CoarsenedBoundaries(-35, 35, 20)
	assert.Equal(t, -40.0, lo)
	assert.Equal(t, 40.0, hi)
}

func TestInterp(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, 0}

	got := Interp([]float64{-1, 0.5, 1.5, 3}, xs, ys)
	assert.InDelta(t, 0.0, got[0], 1e-9)
	assert.InDelta(t, 5.0, got[1], 1e-9)
	assert.InDelta(t, 5.0, got[2], 1e-9)
	assert.InDelta(t, 0.0, got[3], 1e-9)
}

func testAction(n int) ActionDistribution {
	return ActionDistribution{
		Name:           "Glare III-1001221",
		N:              n,
		BaseDamage:     15000,
		BuffMultiplier: 1.05,
		CritMultiplier: 1.55,
		Probs:          HitProbabilities{0.45, 0.25, 0.2, 0.1},
	}
}

func TestOneHitPDFNormalized(t *testing.T) {
	pdf, support := testAction(1).OneHitPDF(DefaultDamageStep)
	require.NotNil(t, pdf)
	require.Len(t, support, len(pdf))

	assert.InDelta(t, 1.0, Trapz(pdf, support), 1e-6)

	// Support covers the lowest normal roll through the highest crit-direct
	// roll.
	assert.LessOrEqual(t, support[0], 0.95*15000*1.05)
	assert.GreaterOrEqual(t, support[len(support)-1], 1.05*15000*1.05*1.55*1.25)
}

func TestMomentsMatchDiscretizedPDF(t *testing.T) {
	a := testAction(1)
	mean, variance, _ := a.Moments()

	pdf, support := a.OneHitPDF(1)
	var numMean float64
	for i := range support {
		numMean += pdf[i] * support[i]
	}
	// Step of 1 on a continuous mixture: close but not exact.
	assert.InEpsilon(t, mean, numMean, 0.01)

	var numVar float64
	for i := range support {
		numVar += pdf[i] * (support[i] - numMean) * (support[i] - numMean)
	}
	assert.InEpsilon(t, variance, numVar, 0.05)
}

func TestComputeRotation(t *testing.T) {
	actions := []ActionDistribution{testAction(10), {
		Name:           "Dia (tick)",
		N:              20,
		BaseDamage:     3200,
		BuffMultiplier: 1,
		CritMultiplier: 1.55,
		Probs:          HitProbabilities{0.6, 0.2, 0.15, 0.05},
	}}

	r := ComputeRotation(actions, DefaultDamageStep)
	require.NotNil(t, r.PDF)
	require.Len(t, r.Support, len(r.PDF))

	assert.InDelta(t, 1.0, Trapz(r.PDF, r.Support), 1e-6)
	assert.Greater(t, r.Mean, 0.0)
	assert.Greater(t, r.Variance, 0.0)
	assert.Equal(t, math.Sqrt(r.Variance), r.Std)
	assert.Len(t, r.UniqueActions, 2)

	// The distribution mean tracks the analytic mean.
	var numMean float64
	step := r.Support[1] - r.Support[0]
	for i := range r.Support {
		numMean += r.PDF[i] * r.Support[i] * step
	}
	assert.InEpsilon(t, r.Mean, numMean, 0.02)
}

func TestInterpolateShrinksSupport(t *testing.T) {
	r := ComputeRotation([]ActionDistribution{testAction(30)}, DefaultDamageStep)
	require.Greater(t, len(r.Support), 5000)

	r.Interpolate(5000)
	assert.Len(t, r.Support, 5000)
	assert.Len(t, r.PDF, 5000)
	for _, a := range r.UniqueActions {
		assert.Len(t, a.Support, 5000)
	}
}

func TestPercentileRoundTrip(t *testing.T) {
	r := ComputeRotation([]ActionDistribution{testAction(10)}, DefaultDamageStep)

	p := PercentileOfValue(r.Mean, r.PDF, r.Support)
	assert.InDelta(t, 0.5, p, 0.1)

	v := ValueAtPercentile(0.5, r.PDF, r.Support)
	assert.InEpsilon(t, r.Mean, v, 0.05)
}

func TestPartyDistribution(t *testing.T) {
	members := []RotationDistribution{
		ComputeRotation([]ActionDistribution{testAction(10)}, DefaultDamageStep),
		ComputeRotation([]ActionDistribution{testAction(12)}, DefaultDamageStep),
		ComputeRotation([]ActionDistribution{testAction(8)}, DefaultDamageStep),
		ComputeRotation([]ActionDistribution{testAction(9)}, DefaultDamageStep),
	}

	pdf, support := PartyDistribution(members, 120000, DefaultDamageStep)
	require.NotNil(t, pdf)
	require.Len(t, support, len(pdf))
	assert.InDelta(t, 1.0, Trapz(pdf, support), 1e-6)

	// Party support starts at the sum of members' minimums plus LB damage.
	var wantLo float64
	for _, m := range members {
		wantLo += m.Support[0]
	}
	assert.InDelta(t, wantLo+120000, support[0], 2*DefaultDamageStep)

	// A kill is near certain when boss HP sits below the support.
	assert.InDelta(t, 1.0, KillTimePercentile(support[0]+float64(len(support)*DefaultDamageStep), pdf, support), 0.01)
}

func TestUnconvolveClippedPDF(t *testing.T) {
	full := ComputeRotation([]ActionDistribution{testAction(20)}, DefaultDamageStep)
	clipped := ComputeRotation([]ActionDistribution{testAction(4)}, DefaultDamageStep)

	pdf, support := UnconvolveClippedPDF(
		full.PDF, clipped.PDF, full.Support, clipped.Support,
		full.Mean, clipped.Mean, 0, DefaultDamageStep,
	)
	require.NotNil(t, pdf)
	require.Len(t, support, len(pdf))
	assert.InDelta(t, 1.0, Trapz(pdf, support), 1e-6)

	// The truncated mean honors the mean identity.
	var mean float64
	step := support[1] - support[0]
	for i := range support {
		mean += pdf[i] * support[i] * step
	}
	assert.InEpsilon(t, full.Mean-clipped.Mean, mean, 0.02)
}
