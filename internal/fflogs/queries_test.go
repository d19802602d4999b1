package fflogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestEventsPage(t *testing.T) {
	result := gjson.Parse(`{"data": {"reportData": {"report": {"events": {
		"data": [
			{"timestamp": 12000, "type": "calculateddamage", "sourceID": 8, "ability": {"name": "Glare III", "guid": 25859}, "amount": 15321},
			{"timestamp": 14500, "type": "calculateddamage", "sourceID": 8, "ability": {"name": "Glare III", "guid": 25859}, "amount": 15500}
		],
		"nextPageTimestamp": 845000
	}}}}}`)

	events, next := eventsPage(result)
	require.Len(t, events, 2)
	assert.Equal(t, int64(12000), events[0].Timestamp)
	assert.Equal(t, "Glare III", events[1].AbilityName)
	assert.Equal(t, int64(845000), next)
}

func TestEventsPageLast(t *testing.T) {
	result := gjson.Parse(`{"data": {"reportData": {"report": {"events": {
		"data": [{"timestamp": 846000, "type": "calculateddamage", "sourceID": 8, "ability": {"name": "Glare III", "guid": 25859}, "amount": 15100}],
		"nextPageTimestamp": null
	}}}}}`)

	events, next := eventsPage(result)
	require.Len(t, events, 1)
	assert.Zero(t, next)
}

func TestMergeEvents(t *testing.T) {
	player := []Event{
		{Timestamp: 100, SourceID: 8, AbilityName: "Bloodspiller"},
		{Timestamp: 300, SourceID: 8, AbilityName: "Edge of Shadow"},
	}
	pet := []Event{
		{Timestamp: 100, SourceID: 23, AbilityName: "Abyssal Drain"},
		{Timestamp: 200, SourceID: 23, AbilityName: "Abyssal Drain"},
	}

	merged := MergeEvents(player, pet)
	require.Len(t, merged, 4)

	// Ordered by timestamp; on a tie the player's batch stays ahead of
	// the pet's.
	assert.Equal(t, []int{8, 23, 23, 8}, []int{
		merged[0].SourceID, merged[1].SourceID, merged[2].SourceID, merged[3].SourceID,
	})
	assert.Equal(t, "Abyssal Drain", merged[1].AbilityName)
}

func TestMergeEventsEmptyBatches(t *testing.T) {
	merged := MergeEvents(nil, []Event{{Timestamp: 50, SourceID: 23}}, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, 23, merged[0].SourceID)

	assert.Empty(t, MergeEvents())
}
