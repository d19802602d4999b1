package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatKillTime(t *testing.T) {
	assert.Equal(t, "12:34.321", formatKillTime(754.321))
	assert.Equal(t, "00:07.500", formatKillTime(7.5))
	assert.Equal(t, "10:00.000", formatKillTime(600))
	assert.Equal(t, "00:00.000", formatKillTime(-3))
}

func TestShortEncounterName(t *testing.T) {
	assert.Equal(t, "FRU", shortEncounterName(1079, 0))
	assert.Equal(t, "FRU p3", shortEncounterName(1079, 3))
	assert.Equal(t, "M4S", shortEncounterName(96, 0))
	assert.Equal(t, "", shortEncounterName(99999, 0))
}

func TestFormatDatetime(t *testing.T) {
	assert.Equal(t, "", formatDatetime(nil))

	loc := time.FixedZone("UTC+9", 9*3600)
	ts := time.Date(2025, 6, 1, 21, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-01T12:30:00Z", formatDatetime(&ts))
}

func TestRoundPercentile(t *testing.T) {
	assert.Equal(t, 64.72, roundPercentile(0.64721))
	assert.Equal(t, 100.0, roundPercentile(1))
	assert.Equal(t, 0.0, roundPercentile(0))
	assert.Equal(t, 0.01, roundPercentile(0.0000501))
}
