package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageData_DecodesCurrentShape(t *testing.T) {
	raw := `[{"language":"go","type":"repositories","since":"daily","month":"2024-05","day":"2024-05-01","items":[]}]`

	var data LanguageData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.False(t, data.IsLegacy())

	snapshots := data.Resolve("go", "2024-05")
	require.Len(t, snapshots, 1)
	assert.Equal(t, "2024-05-01", snapshots[0].Day)
}

func TestLanguageData_UpgradesLegacyShape(t *testing.T) {
	raw := `[{"url":"https://x","description":null,"stars":5,"starsSince":2,"dateAdded":"2024-04-12"}]`

	var data LanguageData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.True(t, data.IsLegacy())

	snapshots := data.Resolve("go", "2024-04")
	require.Len(t, snapshots, 1)
	assert.Equal(t, "go", snapshots[0].Language)
	assert.Equal(t, TypeRepositories, snapshots[0].Type)
	assert.Equal(t, SinceDaily, snapshots[0].Since)
	assert.Equal(t, "2024-04", snapshots[0].Month)
	assert.Equal(t, "2024-04-01", snapshots[0].Day)
	require.Len(t, snapshots[0].Items, 1)
	require.NotNil(t, snapshots[0].Items[0].Url)
	assert.Equal(t, "https://x", *snapshots[0].Items[0].Url)
	assert.Equal(t, 5, snapshots[0].Items[0].Stars)
}

func TestLanguageData_EmptyListIsCurrent(t *testing.T) {
	var data LanguageData
	require.NoError(t, json.Unmarshal([]byte(`[]`), &data))
	assert.False(t, data.IsLegacy())
	assert.Empty(t, data.Resolve("go", "2024-05"))
}

func TestLanguageData_MarshalsCurrentShapeOnly(t *testing.T) {
	raw := `[{"url":"https://x","description":null,"stars":5,"starsSince":2,"dateAdded":"2024-04-12"}]`

	var data LanguageData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	// A legacy value round-trips as an upgraded current value, never back to
	// the flat shape
	upgraded := NewLanguageData(data.Resolve("go", "2024-04"))
	out, err := json.Marshal(upgraded)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items"`)
}

func TestLanguageData_RejectsNonList(t *testing.T) {
	var data LanguageData
	assert.Error(t, json.Unmarshal([]byte(`{"oops":1}`), &data))
}
