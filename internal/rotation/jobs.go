package rotation

import (
	"context"
	"strings"

	"xivcrit.app/backend/internal/gamedata"
)

// applyJobSpecifics runs the mechanics the generic pipeline cannot express.
// Jobs without an entry here pass through unchanged.
func (t *ActionTable) applyJobSpecifics(ctx context.Context, client BandsClient, code string, fightID int) error {
	switch t.Job {
	case "DarkKnight":
		t.estimateGroundEffectMultiplier(gamedata.SaltedEarthAbilityID)

		petID := 0
		if len(t.PetIDs) > 0 {
			petID = t.PetIDs[0]
		}
		(&darkKnightActions{}).apply(t, petID)

	case "Summoner":
		t.estimateGroundEffectMultiplier(gamedata.SlipstreamAbilityID)

	case "Machinist":
		bands, err := client.BuffBands(ctx, code, fightID, t.PlayerID, gamedata.WildfireBuffID)
		if err != nil {
			return err
		}
		(&machinistActions{wildfireBands: bands}).apply(t)

	case "Bard":
		bardActions{}.apply(t)
	}

	// Caster and healer auto attacks are excluded from the analysis.
	if gamedata.FiltersAutoAttacks(t.Job) {
		kept := t.Actions[:0]
		for _, a := range t.Actions {
			if strings.ToLower(a.AbilityName) != "attack" {
				kept = append(kept, a)
			}
		}
		t.Actions = kept
	}
	return nil
}
