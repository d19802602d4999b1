package rotation

import (
	"fmt"
	"sort"

	"xivcrit.app/backend/internal/gamedata"
)

// Machinist corrections: Wildfire is a ground effect that can never crit,
// and its detonation potency depends on how many weaponskills landed during
// the buff window. The GCD count per detonation is reconstructed from the
// Wildfire buff bands.

var machinistWeaponskillIDs = map[int]bool{
	7410:  true, // Heat Blast
	7411:  true, // Heated Split Shot
	7412:  true, // Heated Slug Shot
	7413:  true, // Heated Clean Shot
	16497: true, // Auto Crossbow
	16498: true, // Drill
	16499: true, // Bioblaster
	16500: true, // Air Anchor
	25786: true, // Scattergun
	25788: true, // Chain Saw
	36978: true, // Blazing Shot
	36981: true, // Excavator
	36982: true, // Full Metal Field
}

// The in-game potency cap is reached at six weaponskills.
const wildfireGCDCap = 6

type machinistActions struct {
	// Absolute [start, end] windows Wildfire was active.
	wildfireBands [][2]int64
}

func (m *machinistActions) apply(t *ActionTable) {
	// Wildfire detonations cannot crit or direct hit.
	for i := range t.Actions {
		if t.Actions[i].AbilityGameID == gamedata.WildfireAbilityID {
			t.Actions[i].Probs = [4]float64{1, 0, 0, 0}
		}
	}

	t.estimateGroundEffectMultiplier(gamedata.WildfireAbilityID)
	m.countWildfireGCDs(t)
}

// countWildfireGCDs groups weaponskills inside Wildfire windows into
// detonations (gaps over 10s start a new one), caps the count, and tags
// each Wildfire tick with a wildfire_N buff so detonations with different
// GCD counts stay distinct.
func (m *machinistActions) countWildfireGCDs(t *ActionTable) {
	type detonation struct {
		count       int
		lastElapsed float64
	}

	var detonations []detonation
	for _, a := range t.Actions {
		if !machinistWeaponskillIDs[a.AbilityGameID] || !m.inWildfire(a.Timestamp) {
			continue
		}
		n := len(detonations)
		if n == 0 || a.ElapsedTime-detonations[n-1].lastElapsed > 10 {
			detonations = append(detonations, detonation{})
			n++
		}
		detonations[n-1].count++
		detonations[n-1].lastElapsed = a.ElapsedTime
	}

	for i := range detonations {
		if detonations[i].count > wildfireGCDCap {
			detonations[i].count = wildfireGCDCap
		}
	}

	for i := range t.Actions {
		a := &t.Actions[i]
		if a.AbilityGameID != gamedata.WildfireAbilityID || !a.Tick {
			continue
		}

		// Match the detonation whose last GCD most recently preceded this
		// tick, within a 10s tolerance.
		best := -1
		for j, d := range detonations {
			if d.lastElapsed <= a.ElapsedTime && a.ElapsedTime-d.lastElapsed <= 10 {
				best = j
			}
		}
		if best < 0 {
			continue
		}

		buff := fmt.Sprintf("wildfire_%d", detonations[best].count)
		a.Buffs = append(a.Buffs, buff)
		sort.Strings(a.Buffs)
		a.ActionName += "_" + buff
	}
}

func (m *machinistActions) inWildfire(ts int64) bool {
	for _, b := range m.wildfireBands {
		if ts >= b[0] && ts <= b[1] {
			return true
		}
	}
	return false
}
