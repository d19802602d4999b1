package fflogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEventFromJSON(t *testing.T) {
	raw := `{
		"timestamp": 1234567,
		"type": "calculateddamage",
		"sourceID": 8,
		"targetID": 42,
		"packetID": 991,
		"abilityGameID": 25859,
		"ability": {"name": "Glare III", "guid": 25859},
		"buffs": "1000786.1001221.",
		"amount": 15321,
		"multiplier": 1.1,
		"bonusPercent": 50,
		"hitType": 2,
		"directHit": true
	}`

	ev := eventFromJSON(gjson.Parse(raw))
	assert.Equal(t, int64(1234567), ev.Timestamp)
	assert.Equal(t, "calculateddamage", ev.Type)
	assert.Equal(t, 8, ev.SourceID)
	assert.Equal(t, "Glare III", ev.AbilityName)
	assert.Equal(t, 25859, ev.AbilityGameID)
	assert.Equal(t, []string{"1000786", "1001221"}, ev.Buffs)
	assert.Equal(t, 15321.0, ev.Amount)
	require.True(t, ev.HasMultiplier)
	assert.Equal(t, 1.1, ev.Multiplier)
	assert.Equal(t, 50, ev.BonusPercent)
	assert.Equal(t, 2, ev.HitType)
	assert.True(t, ev.DirectHit)
	assert.False(t, ev.Tick)
	assert.Equal(t, 1, ev.TargetInstance)
}

func TestEventFromJSONDefaults(t *testing.T) {
	// Ground effect ticks lack a multiplier; striking dummy logs lack buffs.
	ev := eventFromJSON(gjson.Parse(`{"type": "damage", "tick": true, "amount": 800, "ability": {"name": "Salted Earth", "guid": 1000749}}`))
	assert.True(t, ev.Tick)
	assert.False(t, ev.HasMultiplier)
	assert.Nil(t, ev.Buffs)
	assert.Equal(t, -1, ev.BonusPercent)
	assert.Equal(t, 1, ev.TargetInstance)
}

func TestMedicationAmount(t *testing.T) {
	auras := gjson.Parse(`[{
		"icon": "DarkKnight",
		"appliedByAbilities": [
			{"name": "Grade 2 Gemdraught of Strength [HQ]"},
			{"name": "Grade 2 Gemdraught of Strength"}
		]
	}]`)
	assert.Equal(t, 392, medicationAmount(auras))

	// Wrong potion stat grants nothing.
	wrong := gjson.Parse(`[{
		"icon": "DarkKnight",
		"appliedByAbilities": [{"name": "Grade 2 Gemdraught of Intelligence"}]
	}]`)
	assert.Equal(t, 0, medicationAmount(wrong))

	// No auras at all: no medication.
	assert.Equal(t, 0, medicationAmount(gjson.Parse(`[]`)))

	// Unparseable names assume the current-tier strength.
	weird := gjson.Parse(`[{
		"icon": "DarkKnight",
		"appliedByAbilities": [{"name": "Medicated"}]
	}]`)
	assert.Equal(t, DefaultMedicationAmount, medicationAmount(weird))
}

func TestSplitPotionName(t *testing.T) {
	name, typ, ok := splitPotionName("Grade 2 Gemdraught of Strength [HQ]")
	require.True(t, ok)
	assert.Equal(t, "Grade 2 Gemdraught [HQ]", name)
	assert.Equal(t, "Strength", typ)

	name, typ, ok = splitPotionName("Grade 8 Tincture of Dexterity")
	require.True(t, ok)
	assert.Equal(t, "Grade 8 Tincture", name)
	assert.Equal(t, "Dexterity", typ)

	_, _, ok = splitPotionName("Medicated")
	assert.False(t, ok)
}
