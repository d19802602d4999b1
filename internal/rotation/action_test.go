package rotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
)

// Report start times pinning the fight to a known patch.
const (
	reportStart705 = int64(1725000000000) // patch 7.05
	reportStart65  = int64(1700000000000) // patch 6.5
)

func testParams(job string) Params {
	return Params{
		ReportCode:    "a1b2c3d4",
		FightID:       12,
		Job:           job,
		PlayerID:      1,
		Level:         100,
		Phase:         0,
		CriticalHit:   2560,
		DirectHit:     1800,
		Determination: 2000,
	}
}

func testFightInfo(reportStart int64) *fflogs.FightInfo {
	return &fflogs.FightInfo{
		ReportStartTime:  reportStart,
		Region:           "NA",
		EncounterID:      94,
		Kill:             true,
		StartTime:        10000,
		EndTime:          310000,
		MedicationAmount: 392,
	}
}

func hit(ts int64, name string, abilityID int, amount float64, buffs ...string) fflogs.Event {
	return fflogs.Event{
		Timestamp:      ts,
		Type:           "calculateddamage",
		SourceID:       1,
		TargetID:       50,
		PacketID:       ts,
		TargetInstance: 1,
		AbilityName:    name,
		AbilityGameID:  abilityID,
		Buffs:          buffs,
		Amount:         amount,
		Multiplier:     1,
		HasMultiplier:  true,
		BonusPercent:   gamedata.NoBonus,
	}
}

func dotTick(ts int64, name string, abilityID int, amount float64, buffs ...string) fflogs.Event {
	e := hit(ts, name, abilityID, amount, buffs...)
	e.Type = "damage"
	e.Tick = true
	e.HasMultiplier = false
	e.PacketID = 0
	return e
}

func TestNewFiltersAndTiming(t *testing.T) {
	info := testFightInfo(reportStart705)
	events := []fflogs.Event{
		{Timestamp: 11000, Type: "begincast", SourceID: 1, AbilityName: "Heavy Swing"},
		hit(12000, "Heavy Swing", 31, 5000),
		{Timestamp: 13000, Type: "damage", SourceID: 1, AbilityName: "Heavy Swing", Amount: 5000},
		dotTick(15000, "Salted Earth", gamedata.SaltedEarthAbilityID, 300),
	}

	at, err := New(context.Background(), nil, info, events, testParams("Warrior"))
	require.NoError(t, err)

	// Only the snapshot and the tick survive; the cast and the non-tick
	// damage confirmation are dropped.
	require.Len(t, at.Actions, 2)

	// The analysis window starts at the first damage event, not the
	// nominal fight start, but the DPS time keeps the nominal window.
	assert.Equal(t, reportStart705+12000, at.FightStartTime)
	assert.Equal(t, reportStart705+310000, at.FightEndTime)
	assert.InDelta(t, 300.0, at.FightDPSTime, 1e-9)

	assert.Equal(t, 7.05, at.Patch)
	assert.Zero(t, at.Actions[0].ElapsedTime)
	assert.InDelta(t, 3.0, at.Actions[1].ElapsedTime, 1e-9)
	assert.Equal(t, "Salted Earth (tick)", at.Actions[1].AbilityName)
}

func TestNewNoEvents(t *testing.T) {
	_, err := New(context.Background(), nil, testFightInfo(reportStart705), nil, testParams("Warrior"))
	assert.Error(t, err)
}

func TestPetActionNaming(t *testing.T) {
	ev := hit(12000, "Fang and Claw", 3609, 2000)
	ev.SourceID = 201

	p := testParams("Summoner")
	p.PetIDs = []int{201}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), []fflogs.Event{hit(11000, "Ruin III", 163, 3000), ev}, p)
	require.NoError(t, err)
	assert.Equal(t, "Fang and Claw (Pet)", at.Actions[1].AbilityName)
}

func TestMedicationDividedOut(t *testing.T) {
	ev := hit(12000, "Heavy Swing", 31, 5000, gamedata.MedicationBuffID)
	ev.Multiplier = 1.1025

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), []fflogs.Event{ev}, testParams("Warrior"))
	require.NoError(t, err)

	a := at.Actions[0]
	assert.Equal(t, 392, a.MainStatAdd)
	assert.InDelta(t, 1.05, a.Multiplier, 1e-9)
	assert.Equal(t, "Heavy Swing-1000049", a.ActionName)
}

func TestRadiantFinaleEstimation(t *testing.T) {
	events := []fflogs.Event{
		hit(12000, "Heavy Swing", 31, 5000, gamedata.RadiantFinaleBuffID),
		hit(162000, "Heavy Swing", 31, 5000, gamedata.RadiantFinaleBuffID),
	}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)

	assert.Equal(t, []string{"RadiantFinale1"}, at.Actions[0].Buffs)
	assert.Equal(t, []string{"RadiantFinale3"}, at.Actions[1].Buffs)
}

func TestAstCardStandardization(t *testing.T) {
	// The Balance is a melee card: 6% on a tank, 3% on a caster.
	events := []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000, "1001882")}

	at, err := New(context.Background(), nil, testFightInfo(reportStart65), events, testParams("Warrior"))
	require.NoError(t, err)
	assert.Equal(t, []string{"card6"}, at.Actions[0].Buffs)

	events = []fflogs.Event{hit(12000, "Fire IV", 3577, 5000, "1001882")}
	at, err = New(context.Background(), nil, testFightInfo(reportStart65), events, testParams("BlackMage"))
	require.NoError(t, err)
	assert.Equal(t, []string{"card3"}, at.Actions[0].Buffs)
}

func TestAstCardsUntouchedAfterRework(t *testing.T) {
	events := []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000, "1001882")}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1001882"}, at.Actions[0].Buffs)
}

func TestGuaranteedHitTypes(t *testing.T) {
	events := []fflogs.Event{
		hit(12000, "Midare Setsugekka", 7487, 20000),
		hit(14000, "Gekko", 7481, 5000),
	}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Samurai"))
	require.NoError(t, err)

	assert.Equal(t, [4]float64(at.Actions[0].Probs), [4]float64{0, 1, 0, 0})
	assert.InDelta(t, 1.0, at.Actions[0].Probs[1], 1e-9)

	// Regular actions keep a full distribution.
	probs := at.Actions[1].Probs
	assert.InDelta(t, 1.0, probs[0]+probs[1]+probs[2]+probs[3], 1e-9)
	assert.Greater(t, probs[0], 0.0)
}

func TestGuaranteedHitUnderRateBuff(t *testing.T) {
	// A guaranteed crit under Battle Litany converts the wasted crit rate
	// into a damage multiplier.
	ev := hit(12000, "Midare Setsugekka", 7487, 20000, "1000786")
	ev.Multiplier = 1.1

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), []fflogs.Event{ev}, testParams("Samurai"))
	require.NoError(t, err)

	lc := at.rate.CritDamageMultiplier()
	assert.InDelta(t, 1.1*(1+0.1*(lc-1)), at.Actions[0].Multiplier, 1e-9)
}

func TestGuaranteedHitViaBuff(t *testing.T) {
	// Inner Release forces Fell Cleave into a critical direct hit.
	events := []fflogs.Event{
		hit(12000, "Fell Cleave", 3549, 15000, "1001177"),
		hit(14000, "Fell Cleave", 3549, 9000),
	}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)

	assert.Equal(t, [4]float64(at.Actions[0].Probs), [4]float64{0, 0, 0, 1})
	assert.NotEqual(t, [4]float64(at.Actions[1].Probs), [4]float64{0, 0, 0, 1})
}

func TestActionNameCombinesSortedBuffs(t *testing.T) {
	events := []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000, "1001878", "1000141")}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)

	assert.Equal(t, []string{"1000141", "1001878"}, at.Actions[0].Buffs)
	assert.Equal(t, "Heavy Swing-1000141_1001878", at.Actions[0].ActionName)

	// No buffs means no suffix.
	events = []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000)}
	at, err = New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)
	assert.Equal(t, "Heavy Swing", at.Actions[0].ActionName)
}

func TestUnpairedDropped(t *testing.T) {
	unpaired := hit(13000, "Heavy Swing", 31, 0)
	unpaired.Unpaired = true

	events := []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000), unpaired}
	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)
	require.Len(t, at.Actions, 1)
	assert.False(t, at.Actions[0].Unpaired)
}

func TestTheEcho(t *testing.T) {
	t.Run("15 percent", func(t *testing.T) {
		info := testFightInfo(reportStart705)
		info.HasEcho = true

		at, err := New(context.Background(), nil, info, []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000)}, testParams("Warrior"))
		require.NoError(t, err)

		a := at.Actions[0]
		assert.InDelta(t, 1.15, a.Multiplier, 1e-9)
		assert.Equal(t, "Heavy Swing_echo15", a.ActionName)
		assert.Contains(t, a.Buffs, "echo15")
	})

	t.Run("10 percent window", func(t *testing.T) {
		// Reports between patch 6.57 and 6.58 had the weaker echo.
		info := testFightInfo(int64(1708000000000))
		info.HasEcho = true

		at, err := New(context.Background(), nil, info, []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000)}, testParams("Warrior"))
		require.NoError(t, err)

		a := at.Actions[0]
		assert.InDelta(t, 1.10, a.Multiplier, 1e-9)
		assert.Contains(t, a.Buffs, "echo10")
	})

	t.Run("disabled", func(t *testing.T) {
		at, err := New(context.Background(), nil, testFightInfo(reportStart705), []fflogs.Event{hit(12000, "Heavy Swing", 31, 5000)}, testParams("Warrior"))
		require.NoError(t, err)
		assert.NotContains(t, at.Actions[0].ActionName, "echo")
	})
}

func TestCasterAutoAttacksFiltered(t *testing.T) {
	events := []fflogs.Event{
		hit(12000, "Glare III", 25859, 8000),
		hit(14000, "Attack", 7938, 100),
	}

	at, err := New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("WhiteMage"))
	require.NoError(t, err)
	require.Len(t, at.Actions, 1)
	assert.Equal(t, "Glare III", at.Actions[0].AbilityName)

	// Physical jobs keep their autos.
	at, err = New(context.Background(), nil, testFightInfo(reportStart705), events, testParams("Warrior"))
	require.NoError(t, err)
	assert.Len(t, at.Actions, 2)
}
