package rotation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
)

type stubBandsClient struct {
	bands [][2]int64
}

func (s stubBandsClient) BuffBands(context.Context, string, int, int, int) ([][2]int64, error) {
	return s.bands, nil
}

func TestWildfireGCDCounting(t *testing.T) {
	events := []fflogs.Event{
		hit(11000, "Drill", 16498, 12000),
		hit(13000, "Heat Blast", 7410, 4000),
		hit(15000, "Heat Blast", 7410, 4000),
		hit(17000, "Heat Blast", 7410, 4000),
		dotTick(21000, "Wildfire", gamedata.WildfireAbilityID, 9600),
		// A weaponskill outside the buff window does not count.
		hit(25000, "Drill", 16498, 12000),
	}

	client := stubBandsClient{bands: [][2]int64{
		{reportStart705 + 10000, reportStart705 + 20000},
	}}

	at, err := New(context.Background(), client, testFightInfo(reportStart705), events, testParams("Machinist"))
	require.NoError(t, err)

	var wildfire *Action
	for i := range at.Actions {
		if at.Actions[i].AbilityGameID == gamedata.WildfireAbilityID {
			wildfire = &at.Actions[i]
		}
	}
	require.NotNil(t, wildfire)

	assert.Contains(t, wildfire.Buffs, "wildfire_4")
	assert.Equal(t, "Wildfire (tick)_wildfire_4", wildfire.ActionName)
	assert.Equal(t, [4]float64(wildfire.Probs), [4]float64{1, 0, 0, 0})
	assert.True(t, wildfire.HasMultiplier)
}

func TestWildfireGCDCap(t *testing.T) {
	events := make([]fflogs.Event, 0, 9)
	for i := 0; i < 8; i++ {
		events = append(events, hit(int64(11000+i*1000), "Heat Blast", 7410, 4000))
	}
	events = append(events, dotTick(21000, "Wildfire", gamedata.WildfireAbilityID, 14400))

	client := stubBandsClient{bands: [][2]int64{
		{reportStart705 + 10000, reportStart705 + 20000},
	}}

	at, err := New(context.Background(), client, testFightInfo(reportStart705), events, testParams("Machinist"))
	require.NoError(t, err)

	last := at.Actions[len(at.Actions)-1]
	assert.Contains(t, last.Buffs, "wildfire_6")
}

func TestWildfireSeparateDetonations(t *testing.T) {
	events := []fflogs.Event{
		hit(11000, "Drill", 16498, 12000),
		hit(13000, "Heat Blast", 7410, 4000),
		dotTick(15000, "Wildfire", gamedata.WildfireAbilityID, 4800),

		// Second buff window two minutes later, with three weaponskills.
		hit(131000, "Drill", 16498, 12000),
		hit(133000, "Heat Blast", 7410, 4000),
		hit(135000, "Heat Blast", 7410, 4000),
		dotTick(137000, "Wildfire", gamedata.WildfireAbilityID, 7200),
	}

	client := stubBandsClient{bands: [][2]int64{
		{reportStart705 + 10000, reportStart705 + 16000},
		{reportStart705 + 130000, reportStart705 + 138000},
	}}

	at, err := New(context.Background(), client, testFightInfo(reportStart705), events, testParams("Machinist"))
	require.NoError(t, err)

	assert.Contains(t, at.Actions[2].Buffs, "wildfire_2")
	assert.Contains(t, at.Actions[6].Buffs, "wildfire_3")
}

func TestWildfireTickWithoutDetonationMatch(t *testing.T) {
	// No weaponskill landed inside the buff window: the tick keeps its
	// plain name and joins no detonation.
	events := []fflogs.Event{
		hit(11000, "Drill", 16498, 12000),
		dotTick(41000, "Wildfire", gamedata.WildfireAbilityID, 2400),
	}

	client := stubBandsClient{bands: [][2]int64{
		{reportStart705 + 30000, reportStart705 + 40000},
	}}

	at, err := New(context.Background(), client, testFightInfo(reportStart705), events, testParams("Machinist"))
	require.NoError(t, err)

	tick := at.Actions[1]
	assert.Equal(t, "Wildfire (tick)", tick.ActionName)
	assert.Empty(t, tick.Buffs)
}
