// Package xivmath implements the FFXIV damage formulas and the probability
// machinery behind damage distributions: hit type rates, direct damage (D2)
// values, and discrete distribution convolution.
package xivmath

import "fmt"

// LevelMod holds the level-scaling constants entering the damage formulas.
type LevelMod struct {
	Main int
	Sub  int
	Div  int
}

// levelMods covers the levels current encounters sync to.
var levelMods = map[int]LevelMod{
	90:  {Main: 390, Sub: 400, Div: 1900},
	100: {Main: 440, Sub: 420, Div: 2780},
}

// LevelModFor returns the scaling constants for a level.
func LevelModFor(level int) (LevelMod, error) {
	lm, ok := levelMods[level]
	if !ok {
		return LevelMod{}, fmt.Errorf("no level modifiers for level %d", level)
	}
	return lm, nil
}

// AttackModifier returns the attack scalar for the main stat, which differs
// for tanks.
func AttackModifier(level int, tank bool) int {
	switch {
	case level == 90 && tank:
		return 156
	case level == 90:
		return 195
	case tank:
		return 190
	default:
		return 237
	}
}
