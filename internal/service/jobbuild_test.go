package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuildURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		provider  string
		gearSetID string
		setIndex  int
		wantErr   bool
	}{
		{
			name:      "etro gear set",
			url:       "https://etro.gg/gearset/689e0528-3bc9-4344-a5a7-499f8d79292f",
			provider:  ProviderEtro,
			gearSetID: "689e0528-3bc9-4344-a5a7-499f8d79292f",
		},
		{
			name:      "etro with www prefix",
			url:       "https://www.etro.gg/gearset/689e0528-3bc9-4344-a5a7-499f8d79292f",
			provider:  ProviderEtro,
			gearSetID: "689e0528-3bc9-4344-a5a7-499f8d79292f",
		},
		{
			name:      "etro trailing slash",
			url:       "https://etro.gg/gearset/689e0528-3bc9-4344-a5a7-499f8d79292f/",
			provider:  ProviderEtro,
			gearSetID: "689e0528-3bc9-4344-a5a7-499f8d79292f",
		},
		{
			name:    "etro without gear set ID",
			url:     "https://etro.gg/",
			wantErr: true,
		},
		{
			name:    "etro non-UUID gear set ID",
			url:     "https://etro.gg/gearset/not-a-uuid",
			wantErr: true,
		},
		{
			name:      "xivgear saved sheet",
			url:       "https://xivgear.app/?page=sl%7C7e7f9bf8-b75c-4157-8303-2b459485db4f",
			provider:  ProviderXIVGear,
			gearSetID: "7e7f9bf8-b75c-4157-8303-2b459485db4f",
		},
		{
			name:      "xivgear bis link",
			url:       "https://xivgear.app/?page=bis%7Csge%7Cendwalker%7Canabaseios",
			provider:  ProviderXIVGear,
			gearSetID: "bis/sge/endwalker/anabaseios",
		},
		{
			name:      "xivgear with onlySetIndex",
			url:       "https://xivgear.app/?page=sl%7C7e7f9bf8-b75c-4157-8303-2b459485db4f&onlySetIndex=2",
			provider:  ProviderXIVGear,
			gearSetID: "7e7f9bf8-b75c-4157-8303-2b459485db4f",
			setIndex:  2,
		},
		{
			name:      "xivgear with selectedIndex",
			url:       "https://xivgear.app/?page=sl%7C7e7f9bf8-b75c-4157-8303-2b459485db4f&selectedIndex=3",
			provider:  ProviderXIVGear,
			gearSetID: "7e7f9bf8-b75c-4157-8303-2b459485db4f",
			setIndex:  3,
		},
		{
			name:      "xivgear onlySetIndex wins over selectedIndex",
			url:       "https://xivgear.app/?page=sl%7C7e7f9bf8-b75c-4157-8303-2b459485db4f&onlySetIndex=1&selectedIndex=4",
			provider:  ProviderXIVGear,
			gearSetID: "7e7f9bf8-b75c-4157-8303-2b459485db4f",
			setIndex:  1,
		},
		{
			name:    "xivgear without page parameter",
			url:     "https://xivgear.app/",
			wantErr: true,
		},
		{
			name:    "xivgear non-UUID page",
			url:     "https://xivgear.app/?page=sl%7Cnot-a-uuid",
			wantErr: true,
		},
		{
			name:    "unknown provider",
			url:     "https://example.com/gearset/689e0528-3bc9-4344-a5a7-499f8d79292f",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, gearSetID, setIndex, err := ParseBuildURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.provider, provider)
			assert.Equal(t, tt.gearSetID, gearSetID)
			assert.Equal(t, tt.setIndex, setIndex)
		})
	}
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("689e0528-3bc9-4344-a5a7-499f8d79292f"))
	assert.True(t, isUUID("689E0528-3BC9-4344-A5A7-499F8D79292F"))

	assert.False(t, isUUID("not-a-uuid"))
	assert.False(t, isUUID(""))
	// uuid.Parse accepts these spellings but links never carry them
	assert.False(t, isUUID("{689e0528-3bc9-4344-a5a7-499f8d79292f}"))
	assert.False(t, isUUID("urn:uuid:689e0528-3bc9-4344-a5a7-499f8d79292f"))
}
