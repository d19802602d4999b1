package xivmath

import "math"

// Hit type codes, shared with the FFLogs event data.
const (
	HitNormal         = 0
	HitAutoCrit       = 1
	HitAutoDirect     = 2
	HitAutoCritDirect = 3
)

// DirectHitMultiplier is the flat damage bonus of a direct hit.
const DirectHitMultiplier = 1.25

// HitProbabilities is the probability of each hit type for one hit:
// normal, critical, direct, critical-direct. The four values sum to 1.
type HitProbabilities [4]float64

// Rate computes hit type rates from the critical hit and direct hit stats.
type Rate struct {
	CriticalHit int
	DirectHit   int
	lm          LevelMod
}

// NewRate builds a Rate for the given stats and level.
func NewRate(criticalHit, directHit, level int) (Rate, error) {
	lm, err := LevelModFor(level)
	if err != nil {
		return Rate{}, err
	}
	return Rate{CriticalHit: criticalHit, DirectHit: directHit, lm: lm}, nil
}

// CritProb is the base critical hit rate from the stat alone.
func (r Rate) CritProb() float64 {
	return (math.Floor(200*float64(r.CriticalHit-r.lm.Sub)/float64(r.lm.Div)) + 50) / 1000
}

// DirectHitProb is the base direct hit rate from the stat alone.
func (r Rate) DirectHitProb() float64 {
	return math.Floor(550*float64(r.DirectHit-r.lm.Sub)/float64(r.lm.Div)) / 1000
}

// CritDamageMultiplier is the damage multiplier of a critical hit.
func (r Rate) CritDamageMultiplier() float64 {
	return (math.Floor(200*float64(r.CriticalHit-r.lm.Sub)/float64(r.lm.Div)) + 1400) / 1000
}

// HitProbs returns the hit type probabilities for a single hit, with rate
// buffs added. A guaranteed hit type collapses the distribution onto that
// outcome; rate buffs are ignored since the hit cannot improve.
func (r Rate) HitProbs(critRateBuff, dhRateBuff float64, guaranteed int) HitProbabilities {
	switch guaranteed {
	case HitAutoCrit:
		return HitProbabilities{0, 1, 0, 0}
	case HitAutoDirect:
		return HitProbabilities{0, 0, 1, 0}
	case HitAutoCritDirect:
		return HitProbabilities{0, 0, 0, 1}
	}

	pCrit := clampProb(r.CritProb() + critRateBuff)
	pDH := clampProb(r.DirectHitProb() + dhRateBuff)

	return HitProbabilities{
		(1 - pCrit) * (1 - pDH),
		pCrit * (1 - pDH),
		(1 - pCrit) * pDH,
		pCrit * pDH,
	}
}

// GuaranteedHitTypeDamageBuff returns the damage multiplier a guaranteed hit
// gains from hit type rate buffs that would otherwise be wasted. A
// guaranteed critical hit under a crit rate buff gains a fraction of the
// crit bonus; a guaranteed direct hit under a direct hit rate buff gains a
// fraction of the direct hit bonus.
func (r Rate) GuaranteedHitTypeDamageBuff(hitType int, critRateBuff, dhRateBuff float64) float64 {
	m := 1.0
	if hitType == HitAutoCrit || hitType == HitAutoCritDirect {
		m *= 1 + critRateBuff*(r.CritDamageMultiplier()-1)
	}
	if hitType == HitAutoDirect || hitType == HitAutoCritDirect {
		m *= 1 + dhRateBuff*(DirectHitMultiplier-1)
	}
	return m
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
