package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/xivmath"
)

const (
	rtFightStart = int64(1_000_000)
	rtFightEnd   = int64(1_300_000)
)

func testRotationTable(job string, actions []Action) *RotationTable {
	return &RotationTable{
		ActionTable: &ActionTable{
			Job:            job,
			Patch:          7.05,
			FightStartTime: rtFightStart,
			FightEndTime:   rtFightEnd,
			Actions:        actions,
		},
		Potencies: jobPotencies(7.05, job),
	}
}

func rtAction(ts int64, name string, abilityID int, amount float64, buffs ...string) Action {
	actionName := name
	if len(buffs) > 0 {
		actionName = name + "-" + buffs[0]
	}
	return Action{
		Timestamp:      ts,
		ElapsedTime:    float64(ts-rtFightStart) / 1000,
		SourceID:       1,
		TargetID:       50,
		PacketID:       ts,
		AbilityGameID:  abilityID,
		AbilityName:    name,
		ActionName:     actionName,
		Buffs:          buffs,
		Amount:         amount,
		Multiplier:     1,
		HasMultiplier:  true,
		BonusPercent:   gamedata.NoBonus,
		CritDamageMult: 1.553,
		Probs:          xivmath.HitProbabilities{0.55, 0.2, 0.2, 0.05},
	}
}

func findRow(t *testing.T, rows []Row, name string) Row {
	t.Helper()
	for _, r := range rows {
		if r.ActionName == name {
			return r
		}
	}
	t.Fatalf("no row named %q", name)
	return Row{}
}

func TestRowsGroupsIdenticalActions(t *testing.T) {
	rt := testRotationTable("DarkKnight", []Action{
		rtAction(1_010_000, "Hard Slash", 3617, 3000),
		rtAction(1_040_000, "Hard Slash", 3617, 3100),
		rtAction(1_070_000, "Hard Slash", 3617, 2950, "1001878"),
	})

	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	plain := findRow(t, rows, "Hard Slash_1.0")
	assert.Equal(t, 2, plain.N)
	assert.Equal(t, 300, plain.Potency)
	assert.Equal(t, "Hard Slash", plain.BaseAction)
	assert.Equal(t, gamedata.DamageDirect, plain.DamageType)

	buffed := findRow(t, rows, "Hard Slash-1001878_1.0")
	assert.Equal(t, 1, buffed.N)
}

func TestRowsComboDetection(t *testing.T) {
	combo := rtAction(1_010_000, "Souleater", 3632, 4400)
	combo.BonusPercent = 69
	broken := rtAction(1_040_000, "Souleater", 3632, 2600)

	rt := testRotationTable("DarkKnight", []Action{combo, broken})
	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 440, findRow(t, rows, "Souleater_1.0_combo").Potency)
	assert.Equal(t, 260, findRow(t, rows, "Souleater_1.0").Potency)
}

func TestRowsNoBonusNeverMatchesCombo(t *testing.T) {
	// Hard Slash has no combo potency; an action without a bonus percent
	// must not pick one up just because both sides default to the same
	// sentinel.
	rt := testRotationTable("DarkKnight", []Action{
		rtAction(1_010_000, "Hard Slash", 3617, 3000),
	})

	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hard Slash_1.0", rows[0].ActionName)
	assert.Equal(t, 300, rows[0].Potency)
}

func TestRowsPositionals(t *testing.T) {
	positional := rtAction(1_010_000, "Gekko", 7481, 2100)
	positional.BonusPercent = 31
	comboPositional := rtAction(1_040_000, "Gekko", 7481, 3800)
	comboPositional.BonusPercent = 137

	rt := testRotationTable("Samurai", []Action{positional, comboPositional})
	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)

	assert.Equal(t, 210, findRow(t, rows, "Gekko_1.0_positional").Potency)
	assert.Equal(t, 380, findRow(t, rows, "Gekko_1.0_combo_positional").Potency)
}

func TestRowsFalloff(t *testing.T) {
	// Two targets of one Shadowbringer share a packet ID. The primary hit
	// is a crit, so the crit bonus is divided out before comparing.
	primary := rtAction(1_010_000, "Shadowbringer", 25757, 6000*1.553)
	primary.HitType = 2
	secondary := rtAction(1_010_000, "Shadowbringer", 25757, 3050)
	secondary.PacketID = primary.PacketID

	rt := testRotationTable("DarkKnight", []Action{primary, secondary})
	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	full := findRow(t, rows, "Shadowbringer_1.0")
	assert.Equal(t, 600, full.Potency)

	half := findRow(t, rows, "Shadowbringer_0.5")
	assert.Equal(t, 300, half.Potency)
}

func TestRowsTicksSkipFalloff(t *testing.T) {
	tick := rtAction(1_010_000, "Salted Earth (tick)", gamedata.SaltedEarthAbilityID, 120)
	tick.Tick = true
	tick.PacketID = 0

	rt := testRotationTable("DarkKnight", []Action{
		rtAction(1_009_000, "Hard Slash", 3617, 3000),
		tick,
	})
	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)

	row := findRow(t, rows, "Salted Earth (tick)_1.0")
	assert.Equal(t, 50, row.Potency)
	assert.Equal(t, gamedata.DamageDoT, row.DamageType)
}

func TestRowsDropsUnmatchable(t *testing.T) {
	excluded := rtAction(1_020_000, "Hard Slash", 3617, 3000)
	excluded.TargetID = 99
	zero := rtAction(1_030_000, "Hard Slash", 3617, 0)

	rt := testRotationTable("DarkKnight", []Action{
		rtAction(1_010_000, "Sprint", 999999, 1),
		excluded,
		zero,
		rtAction(1_040_000, "Hard Slash", 3617, 3000),
	})
	rt.ExcludedEnemyIDs = []int{99}

	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].N)
}

func TestRowsBuffConditionalPotency(t *testing.T) {
	rt := testRotationTable("Paladin", []Action{
		rtAction(1_010_000, "Holy Spirit", 7384, 2700),
		rtAction(1_040_000, "Holy Spirit", 7384, 4700, "1002673"),
	})

	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)

	assert.Equal(t, 270, findRow(t, rows, "Holy Spirit_1.0").Potency)
	assert.Equal(t, 470, findRow(t, rows, "Holy Spirit-1002673_1.0").Potency)
}

func TestRowsWildfireStacks(t *testing.T) {
	tick := rtAction(1_010_000, "Wildfire (tick)_wildfire_4", gamedata.WildfireAbilityID, 9600, "wildfire_4")
	tick.ActionName = "Wildfire (tick)_wildfire_4"
	tick.Tick = true
	tick.PacketID = 0

	rt := testRotationTable("Machinist", []Action{tick})
	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 960, rows[0].Potency)
	assert.Equal(t, gamedata.DamageDoT, rows[0].DamageType)
}

func TestRowsSorted(t *testing.T) {
	rt := testRotationTable("DarkKnight", []Action{
		rtAction(1_010_000, "Souleater", 3632, 2600),
		rtAction(1_020_000, "Hard Slash", 3617, 3000),
		rtAction(1_030_000, "Bloodspiller", 7392, 5800),
	})

	rows, err := rt.Rows(Clip{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Bloodspiller", rows[0].BaseAction)
	assert.Equal(t, "Hard Slash", rows[1].BaseAction)
	assert.Equal(t, "Souleater", rows[2].BaseAction)
}

func TestRowsClipping(t *testing.T) {
	actions := []Action{
		rtAction(1_010_000, "Hard Slash", 3617, 3000),
		rtAction(1_150_000, "Hard Slash", 3617, 3000),
		rtAction(1_290_000, "Hard Slash", 3617, 3000),
	}
	rt := testRotationTable("DarkKnight", actions)

	t.Run("full fight", func(t *testing.T) {
		rows, err := rt.Rows(Clip{})
		require.NoError(t, err)
		assert.Equal(t, 3, rows[0].N)
	})

	t.Run("shortened end", func(t *testing.T) {
		rows, err := rt.Rows(Clip{EndSeconds: 100})
		require.NoError(t, err)
		assert.Equal(t, 2, rows[0].N)
	})

	t.Run("clipped tail only", func(t *testing.T) {
		rows, err := rt.Rows(Clip{EndSeconds: 100, Portion: PortionEnd})
		require.NoError(t, err)
		assert.Equal(t, 1, rows[0].N)
	})

	t.Run("clipped head only", func(t *testing.T) {
		rows, err := rt.Rows(Clip{StartSeconds: 50, Portion: PortionStart})
		require.NoError(t, err)
		assert.Equal(t, 1, rows[0].N)
	})

	t.Run("empty window", func(t *testing.T) {
		rows, err := rt.Rows(Clip{StartSeconds: 5, Portion: PortionStart})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unknown portion", func(t *testing.T) {
		_, err := rt.Rows(Clip{Portion: Portion("sideways")})
		assert.Error(t, err)
	})
}

func TestNewRotationTable(t *testing.T) {
	at := &ActionTable{
		Job:            "DarkKnight",
		Patch:          7.05,
		FightStartTime: rtFightStart,
		FightEndTime:   rtFightEnd,
		Actions:        []Action{rtAction(1_010_000, "Hard Slash", 3617, 3000)},
	}

	rt, err := NewRotationTable(at)
	require.NoError(t, err)
	require.Len(t, rt.Rotation, 1)

	// Nothing matching the potency table is an error, not an empty
	// rotation.
	at.Actions = []Action{rtAction(1_010_000, "Sprint", 999999, 1)}
	_, err = NewRotationTable(at)
	assert.Error(t, err)
}

func TestJobPotencies(t *testing.T) {
	drk := jobPotencies(7.05, "DarkKnight")
	assert.Contains(t, drk, 3617)
	assert.Contains(t, drk, 7938) // autos
	assert.NotContains(t, drk, gamedata.BurstShotAbilityID)

	// Casters and healers have their autos filtered.
	whm := jobPotencies(7.05, "WhiteMage")
	assert.Contains(t, whm, 25859)
	assert.NotContains(t, whm, 7938)
}
