package tablet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 10)

	m, err := c.Get("wacom-ctl-472")
	require.NoError(t, err)
	assert.Equal(t, 152.0, m.WidthMM)
	assert.Equal(t, 95.0, m.HeightMM)

	all := c.All()
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, strings.ToLower(all[i-1].Label()), strings.ToLower(all[i].Label()))
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Default().Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	c := Default()

	got := c.Search("ctl472", 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "wacom-ctl-472", got[0].ID)

	got = c.Search("huion", 2)
	assert.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, "Huion", m.Brand)
	}

	assert.Len(t, c.Search("", 0), c.Len())
	assert.Len(t, c.Search("  ", 3), 3)
	assert.Empty(t, c.Search("zzzzqqq", 0))
}

func TestLoadValidates(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  string
	}{
		{"missing id", "tablets:\n  - brand: X\n    width: 100\n    height: 100\n", "missing id"},
		{"duplicate", "tablets:\n  - {id: a, width: 100, height: 100}\n  - {id: a, width: 100, height: 100}\n", "duplicate id"},
		{"too small", "tablets:\n  - {id: a, width: 5, height: 100}\n", "below"},
		{"unknown field", "tablets:\n  - {id: a, width: 100, height: 100, depth: 3}\n", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
