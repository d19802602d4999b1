package xivmath

// PartyDistribution convolves the party members' rotation densities into the
// party-level damage distribution. Limit Break damage is deterministic and
// shifts the support.
func PartyDistribution(rotations []RotationDistribution, lbDamage float64, step int) (pdf, support []float64) {
	if len(rotations) == 0 {
		return nil, nil
	}
	if step <= 0 {
		step = DefaultDamageStep
	}

	pdf = append([]float64(nil), rotations[0].PDF...)
	lo := rotations[0].Support[0]
	hi := rotations[0].Support[len(rotations[0].Support)-1]

	for _, r := range rotations[1:] {
		pdf = FFTConvolve(pdf, r.PDF)
		lo += r.Support[0]
		hi += r.Support[len(r.Support)-1]
	}

	lo, hi = CoarsenedBoundaries(lo, hi, step)
	support = Support(lo+lbDamage, hi+lbDamage, step)
	if len(pdf) < len(support) {
		support = support[:len(pdf)]
	} else if len(support) < len(pdf) {
		pdf = pdf[:len(support)]
	}

	Normalize(pdf, support)
	return pdf, support
}

// KillTimePercentile returns the probability the party dealt at least the
// boss's HP, read off the damage CDF at the HP value.
func KillTimePercentile(bossHP float64, pdf, support []float64) float64 {
	return PercentileOfValue(bossHP, pdf, support)
}

// UnconvolveClippedPDF derives the damage density of a rotation with its
// final seconds removed, by convolving the full rotation with the clipped
// portion's mirror. The discretized support accumulates error, so it is
// corrected using the exactly known means: the truncated mean must equal the
// full rotation mean (plus Limit Break damage) minus the clipped mean.
func UnconvolveClippedPDF(
	rotationPDF, clippedPDF, rotationSupport, clippedSupport []float64,
	rotationMean, clippedMean, lbDamage float64,
	step int,
) (pdf, support []float64) {
	if step <= 0 {
		step = DefaultDamageStep
	}

	lower := rotationSupport[0] - clippedSupport[len(clippedSupport)-1]
	upper := rotationSupport[len(rotationSupport)-1] - clippedSupport[0]
	lower, upper = CoarsenedBoundaries(lower, upper, step)
	support = Support(lower, upper, step)

	mirrored := make([]float64, len(clippedPDF))
	for i, v := range clippedPDF {
		mirrored[len(clippedPDF)-1-i] = v
	}
	pdf = FFTConvolve(rotationPDF, mirrored)
	if len(pdf) < len(support) {
		support = support[:len(pdf)]
	} else if len(support) < len(pdf) {
		pdf = pdf[:len(support)]
	}
	Normalize(pdf, support)

	var approximateMean float64
	for i := range support {
		approximateMean += pdf[i] * support[i] * float64(step)
	}
	exactMean := rotationMean + lbDamage - clippedMean
	correction := float64(int(exactMean - approximateMean))
	for i := range support {
		support[i] += correction
	}

	Normalize(pdf, support)
	return pdf, support
}
