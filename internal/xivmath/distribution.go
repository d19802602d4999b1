package xivmath

import "math"

// DamageRollSpread is the game's uniform damage roll, ±5% of the base value.
const DamageRollSpread = 0.05

// DefaultDamageStep is the damage discretization used when building
// distribution supports.
const DefaultDamageStep = 20

// ActionDistribution describes the damage distribution of one unique action
// in a rotation: a mixture over hit types, each with a uniform damage roll,
// repeated N times.
type ActionDistribution struct {
	Name           string
	N              int
	BaseDamage     float64 // one normal hit at the action's potency, before buffs
	BuffMultiplier float64
	CritMultiplier float64
	Probs          HitProbabilities
}

// hitMultipliers returns the damage multiplier of each hit type, buffs
// included.
func (a ActionDistribution) hitMultipliers() [4]float64 {
	m := a.BuffMultiplier
	if m == 0 {
		m = 1
	}
	return [4]float64{
		m,
		m * a.CritMultiplier,
		m * DirectHitMultiplier,
		m * a.CritMultiplier * DirectHitMultiplier,
	}
}

// Moments returns the mean, variance and third central moment of a single
// hit of the action.
func (a ActionDistribution) Moments() (mean, variance, thirdCentral float64) {
	mults := a.hitMultipliers()

	for h, p := range a.Probs {
		mean += p * a.BaseDamage * mults[h]
	}
	for h, p := range a.Probs {
		mu := a.BaseDamage * mults[h]
		width := 2 * DamageRollSpread * mu
		sigma2 := width * width / 12
		variance += p * (sigma2 + (mu-mean)*(mu-mean))
		// The uniform roll is symmetric, so only the mixture offsets
		// contribute to the third moment.
		thirdCentral += p * ((mu-mean)*(mu-mean)*(mu-mean) + 3*(mu-mean)*sigma2)
	}
	return mean, variance, thirdCentral
}

// OneHitPDF builds the probability density of a single hit on a damage grid
// with the given step.
func (a ActionDistribution) OneHitPDF(step int) (pdf, support []float64) {
	mults := a.hitMultipliers()

	lower, upper := math.Inf(1), math.Inf(-1)
	for h, p := range a.Probs {
		if p == 0 {
			continue
		}
		mu := a.BaseDamage * mults[h]
		lower = math.Min(lower, (1-DamageRollSpread)*mu)
		upper = math.Max(upper, (1+DamageRollSpread)*mu)
	}
	if math.IsInf(lower, 1) {
		return nil, nil
	}

	lo, hi := CoarsenedBoundaries(lower, upper, step)
	support = Support(lo, hi, step)
	pdf = make([]float64, len(support))

	for h, p := range a.Probs {
		if p == 0 {
			continue
		}
		mu := a.BaseDamage * mults[h]
		rollLo := (1 - DamageRollSpread) * mu
		rollHi := (1 + DamageRollSpread) * mu
		density := p / (rollHi - rollLo)
		for i, x := range support {
			if x >= rollLo && x <= rollHi {
				pdf[i] += density
			}
		}
	}

	Normalize(pdf, support)
	return pdf, support
}

// NHitPDF builds the damage density of all N hits of the action by repeated
// self-convolution.
func (a ActionDistribution) NHitPDF(step int) (pdf, support []float64) {
	one, oneSupport := a.OneHitPDF(step)
	if one == nil || a.N <= 0 {
		return nil, nil
	}

	pdf = SelfConvolve(one, a.N)
	lo := oneSupport[0] * float64(a.N)
	hi := oneSupport[len(oneSupport)-1] * float64(a.N)
	support = Support(lo, hi, step)

	// Convolved length can differ from the support length by a point due
	// to boundary coarsening. Trim to the shorter of the two.
	if len(pdf) < len(support) {
		support = support[:len(pdf)]
	} else if len(support) < len(pdf) {
		pdf = pdf[:len(support)]
	}

	Normalize(pdf, support)
	return pdf, support
}

// ActionPDF is an action's aggregate damage density over all its uses.
type ActionPDF struct {
	PDF     []float64 `json:"dps_distribution"`
	Support []float64 `json:"support"`
}

// RotationDistribution is the full rotation's damage distribution together
// with its moments and the per-action distributions.
type RotationDistribution struct {
	Mean          float64
	Variance      float64
	Std           float64
	Skewness      float64
	PDF           []float64
	Support       []float64
	UniqueActions map[string]ActionPDF
}

// ComputeRotation convolves every action's damage distribution into the
// rotation-level distribution. Moments are computed exactly from the mixture
// rather than from the discretized density.
func ComputeRotation(actions []ActionDistribution, step int) RotationDistribution {
	if step <= 0 {
		step = DefaultDamageStep
	}

	out := RotationDistribution{UniqueActions: make(map[string]ActionPDF, len(actions))}

	var m3Total float64
	for _, a := range actions {
		mean, variance, m3 := a.Moments()
		n := float64(a.N)
		out.Mean += n * mean
		out.Variance += n * variance
		m3Total += n * m3

		pdf, support := a.NHitPDF(step)
		if pdf == nil {
			continue
		}
		out.UniqueActions[a.Name] = ActionPDF{PDF: pdf, Support: support}

		if out.PDF == nil {
			out.PDF = pdf
			out.Support = support
			continue
		}
		out.PDF = FFTConvolve(out.PDF, pdf)
		lo := out.Support[0] + support[0]
		hi := out.Support[len(out.Support)-1] + support[len(support)-1]
		out.Support = Support(lo, hi, step)
		if len(out.PDF) < len(out.Support) {
			out.Support = out.Support[:len(out.PDF)]
		} else if len(out.Support) < len(out.PDF) {
			out.PDF = out.PDF[:len(out.Support)]
		}
	}

	if out.PDF != nil {
		Normalize(out.PDF, out.Support)
	}
	out.Std = math.Sqrt(out.Variance)
	if out.Variance > 0 {
		out.Skewness = m3Total / math.Pow(out.Variance, 1.5)
	}
	return out
}

// Interpolate resamples the rotation and per-action densities down to n
// points each, done once all convolving is complete.
func (r *RotationDistribution) Interpolate(n int) {
	if r.PDF != nil {
		newSupport := Linspace(r.Support[0], r.Support[len(r.Support)-1], n)
		r.PDF = Interp(newSupport, r.Support, r.PDF)
		r.Support = newSupport
	}

	for name, a := range r.UniqueActions {
		newSupport := Linspace(a.Support[0], a.Support[len(a.Support)-1], n)
		a.PDF = Interp(newSupport, a.Support, a.PDF)
		a.Support = newSupport
		r.UniqueActions[name] = a
	}
}
