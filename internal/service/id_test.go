package service

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisID(t *testing.T) {
	id := NewAnalysisID()
	assert.Len(t, id, 26)
	assert.Equal(t, strings.ToLower(id), id)

	_, err := ulid.ParseStrict(strings.ToUpper(id))
	require.NoError(t, err)

	assert.NotEqual(t, id, NewAnalysisID())
}

func TestErrorIDs(t *testing.T) {
	assert.Equal(t, "pl-AbCd1234eFgH5678-12.2.5", PlayerErrorID("AbCd1234eFgH5678", 12, 2, 5))
	assert.Equal(t, "pa-AbCd1234eFgH5678-12.0", PartyErrorID("AbCd1234eFgH5678", 12, 0))

	// the same failing inputs always map to the same row
	assert.Equal(t,
		PlayerErrorID("AbCd1234eFgH5678", 12, 2, 5),
		PlayerErrorID("AbCd1234eFgH5678", 12, 2, 5))
}
