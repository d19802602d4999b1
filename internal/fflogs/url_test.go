package fflogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		code     string
		fightID  int
		expected error
	}{
		{
			name:    "fight=last",
			url:     "https://www.fflogs.com/reports/abcdefgh12345678?fight=last",
			code:    "abcdefgh12345678",
			fightID: FightLast,
		},
		{
			name:    "numeric fight",
			url:     "https://www.fflogs.com/reports/abcdefgh12345678?fight=7",
			code:    "abcdefgh12345678",
			fightID: 7,
		},
		{
			name:    "hash fragment form",
			url:     "https://www.fflogs.com/reports/abcdefgh12345678#fight=2",
			code:    "abcdefgh12345678",
			fightID: 2,
		},
		{
			name:     "wrong domain",
			url:      "https://www.fake-logs.com/reports/abcdefgh12345678?fight=last",
			expected: ErrNotFFLogsURL,
		},
		{
			name:     "missing fight param",
			url:      "https://www.fflogs.com/reports/abcdefgh12345678",
			expected: ErrNoFightID,
		},
		{
			name:     "invalid fight param",
			url:      "https://www.fflogs.com/reports/abcdefgh12345678?fight=abc",
			expected: ErrNoFightID,
		},
		{
			name:     "report code too short",
			url:      "https://www.fflogs.com/reports/shortID?fight=3",
			expected: ErrNoReportID,
		},
		{
			name:     "report code too long",
			url:      "https://www.fflogs.com/reports/toolongID-1234567?fight=3",
			expected: ErrNoReportID,
		},
		{
			name:     "missing reports segment",
			url:      "https://www.fflogs.com/foo/1234567890123456?fight=3",
			expected: ErrNoReportID,
		},
		{
			name:     "no report id",
			url:      "https://www.fflogs.com/reports/?fight=3",
			expected: ErrNoReportID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, fightID, err := ParseReportURL(tt.url)
			if tt.expected != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expected, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.fightID, fightID)
		})
	}
}

func TestParseReportURLErrorMessages(t *testing.T) {
	// User-facing messages are part of the frontend contract.
	assert.Equal(t, "URL isn't fflogs.", ErrNotFFLogsURL.Message)
	assert.Equal(t, "A specific fight must be linked, ?fight={fightID} or ?fight=last.", ErrNoFightID.Message)
	assert.Equal(t, "No report ID found.", ErrNoReportID.Message)
	assert.Equal(t, "Linked report is private/no longer available.", ErrReportPrivate.Message)
}
