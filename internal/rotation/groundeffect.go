package rotation

import "strings"

// estimateGroundEffectMultiplier fills in damage multipliers for a ground
// effect's ticks, which FFLogs reports without one. A tick's buff set is
// first matched against the multipliers observed on regular actions with the
// same set; unmatched sets fall back to the product of the known strengths
// of the buffs present.
func (t *ActionTable) estimateGroundEffectMultiplier(groundEffectID int) {
	observed := make(map[string]float64)
	for _, a := range t.Actions {
		if !a.HasMultiplier {
			continue
		}
		key := strings.Join(a.Buffs, ".")
		if m, ok := observed[key]; !ok || a.Multiplier < m {
			observed[key] = a.Multiplier
		}
	}

	for i := range t.Actions {
		a := &t.Actions[i]
		if a.AbilityGameID != groundEffectID || a.HasMultiplier {
			continue
		}

		if m, ok := observed[strings.Join(a.Buffs, ".")]; ok {
			a.Multiplier = m
		} else {
			m := 1.0
			for _, id := range a.Buffs {
				if s, ok := t.buffStrengths[id]; ok {
					m *= s
				}
			}
			a.Multiplier = m
		}
		a.HasMultiplier = true
	}
}
