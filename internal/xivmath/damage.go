package xivmath

import "math"

// JobStats carries the stats entering the direct damage formula.
type JobStats struct {
	Level         int
	MainStat      int
	Determination int
	WeaponDamage  int
	Tenacity      int // 0 for non-tanks
	JobAttribute  int // job main stat modifier, 100 for most combat jobs
	Tank          bool
	Trait         float64 // damage trait, e.g. 1.2 for casters and ranged
}

// D2 returns the expected direct damage of an action at the given potency
// before the damage roll and hit type, following the game's truncation order.
// Medication raises the main stat before the attack scalar applies.
func D2(s JobStats, potency, medication int) (int, error) {
	lm, err := LevelModFor(s.Level)
	if err != nil {
		return 0, err
	}

	mainStat := s.MainStat + medication

	atkMod := AttackModifier(s.Level, s.Tank)
	fAtk := math.Floor(float64(atkMod)*float64(mainStat-lm.Main)/float64(lm.Main)) + 100
	fDet := math.Floor(140*float64(s.Determination-lm.Main)/float64(lm.Div)) + 1000
	fTen := 1000.0
	if s.Tank {
		fTen = math.Floor(112*float64(s.Tenacity-lm.Sub)/float64(lm.Div)) + 1000
	}
	fWD := math.Floor(float64(lm.Main)*float64(s.JobAttribute)/1000) + float64(s.WeaponDamage)

	d1 := math.Floor(math.Floor(math.Floor(float64(potency)*fAtk*fDet/100) / 1000))
	d2 := math.Floor(math.Floor(math.Floor(d1*fTen/1000)*fWD) / 100)
	trait := s.Trait
	if trait == 0 {
		trait = 1
	}
	return int(math.Floor(d2 * trait)), nil
}

// D2For100Potency is the damage value of a 100 potency action, the unit the
// rest of the pipeline expresses potency estimates in.
func D2For100Potency(s JobStats, medication int) (int, error) {
	return D2(s, 100, medication)
}

// MedicationMultiplier estimates the damage multiplier medication confers by
// comparing the 100 potency damage value with and without the main stat
// increase.
func MedicationMultiplier(s JobStats, medication int) (float64, error) {
	with, err := D2For100Potency(s, medication)
	if err != nil {
		return 0, err
	}
	without, err := D2For100Potency(s, 0)
	if err != nil {
		return 0, err
	}
	return float64(with) / float64(without), nil
}
