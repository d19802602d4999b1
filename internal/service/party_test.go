package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xivcrit.app/backend/internal/model/view"
)

func TestClippingFor(t *testing.T) {
	p := &view.PlayerAnalysisPayload{
		Clippings: []view.RotationClipping{
			{SecondsShortened: 2.5, Mean: 10000},
			{SecondsShortened: 5, Mean: 21000},
			{SecondsShortened: 10, Mean: 44000},
		},
	}

	c, ok := clippingFor(p, 5)
	require.True(t, ok)
	assert.Equal(t, 21000.0, c.Mean)

	// clip windows drift by the per player offset to the last damage event
	c, ok = clippingFor(p, 2.4)
	require.True(t, ok)
	assert.Equal(t, 10000.0, c.Mean)

	// this member cast nothing in the 7.5s window, so it has no clipping
	_, ok = clippingFor(p, 7.5)
	assert.False(t, ok)

	_, ok = clippingFor(&view.PlayerAnalysisPayload{}, 5)
	assert.False(t, ok)
}
