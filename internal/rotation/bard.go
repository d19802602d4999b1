package rotation

import (
	"sort"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/xivmath"
)

// Bard corrections: Pitch Perfect's potency depends on Repertoire stacks and
// Radiant Encore's on Coda count, neither of which FFLogs reports. Stack
// counts are estimated and tracked as synthetic buffs the potency table
// keys on.

var pitchPerfectPotencies = map[int]int{1: 100, 2: 220, 3: 360}

const burstShotPotency = 220

type bardActions struct{}

func (bardActions) apply(t *ActionTable) {
	estimatePitchPerfect(t)
	if t.Patch >= 7.0 {
		estimateRadiantEncore(t)
	}
}

// estimatePitchPerfect infers Repertoire stacks from each Pitch Perfect's
// damage relative to the average normalized Burst Shot hit, whose potency is
// known. Stack boundaries sit halfway between adjacent stack potencies,
// which the ±5% damage roll cannot cross.
func estimatePitchPerfect(t *ActionTable) {
	lc := t.rate.CritDamageMultiplier()

	var base float64
	var n int
	for _, a := range t.Actions {
		if a.AbilityGameID != gamedata.BurstShotAbilityID || a.MainStatAdd != 0 {
			continue
		}
		base += normalizedDamage(a, lc, false)
		n++
	}
	if n == 0 {
		return
	}
	base /= float64(n)

	boundary12 := 0.5 * float64(pitchPerfectPotencies[1]+pitchPerfectPotencies[2]) / burstShotPotency
	boundary23 := 0.5 * float64(pitchPerfectPotencies[2]+pitchPerfectPotencies[3]) / burstShotPotency

	for i := range t.Actions {
		a := &t.Actions[i]
		if a.AbilityGameID != gamedata.PitchPerfectAbility {
			continue
		}

		relative := normalizedDamage(*a, lc, true) / base

		buff := "pp3"
		switch {
		case relative < boundary12:
			buff = "pp1"
		case relative <= boundary23:
			buff = "pp2"
		}

		a.Buffs = append(a.Buffs, buff)
		sort.Strings(a.Buffs)
		a.ActionName += "_" + buff
	}
}

// estimateRadiantEncore assumes one Coda inside the first 40 seconds of a
// pull and all three after.
func estimateRadiantEncore(t *ActionTable) {
	for i := range t.Actions {
		a := &t.Actions[i]
		if a.AbilityGameID != gamedata.RadiantEncoreAbility {
			continue
		}

		buff := "c3"
		if a.ElapsedTime < 40 {
			buff = "c1"
		}
		a.Buffs = append(a.Buffs, buff)
		sort.Strings(a.Buffs)
		a.ActionName += "_" + buff
	}
}

// normalizedDamage divides the buff multiplier and hit type bonuses back out
// of a damage amount. Medicated hits additionally shed the flat 5% bonus
// when requested.
func normalizedDamage(a Action, lc float64, undoMedication bool) float64 {
	d := a.Amount / a.Multiplier
	if a.HitType == 2 {
		d /= lc
	}
	if a.DirectHit {
		d /= xivmath.DirectHitMultiplier
	}
	if undoMedication && a.MainStatAdd > 0 {
		d /= 1.05
	}
	return d
}
