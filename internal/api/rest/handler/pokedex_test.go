package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPokedexes(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	status, body := get(t, router, "/v2/pokedexes")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])

	first := body["pokedexes"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "national", first["name"])
}

func TestGetPokedex(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "known", path: "/v2/pokedexes/2", wantStatus: http.StatusOK},
		{name: "unknown", path: "/v2/pokedexes/999", wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "not an integer", path: "/v2/pokedexes/kanto", wantStatus: http.StatusBadRequest, wantCode: "INVALID_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, router, tt.path)
			require.Equal(t, tt.wantStatus, status)

			if tt.wantCode != "" {
				apiErr := body["error"].(map[string]any)
				assert.Equal(t, tt.wantCode, apiErr["code"])
				assert.NotEmpty(t, apiErr["message"])
				return
			}

			assert.Equal(t, "kanto", body["name"])
			assert.Equal(t, "kanto", body["region"])
			assert.Equal(t, true, body["is_main_series"])

			descriptions := body["descriptions"].([]any)
			require.Len(t, descriptions, 1)
			assert.Equal(t, "Kanto dex", descriptions[0].(map[string]any)["description"])

			entries := body["entries"].([]any)
			require.Len(t, entries, 2)
			assert.Equal(t, float64(1), entries[0].(map[string]any)["entry_number"])
			assert.Equal(t, "bulbasaur", entries[0].(map[string]any)["species_name"])
		})
	}
}

func TestGetPokedexWithoutEntries(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	status, body := get(t, router, "/v2/pokedexes/1")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["entries"])
	assert.Equal(t, []any{}, body["descriptions"])
}

func TestListPokedexEntries(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	status, body := get(t, router, "/v2/pokedexes/2/entries")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(2), body["pokedexId"])

	entries := body["entries"].([]any)
	assert.Equal(t, float64(2), entries[1].(map[string]any)["species_id"])

	// Unknown pokedexes have no entries
	status, body = get(t, router, "/v2/pokedexes/999/entries")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["entries"])

	status, _ = get(t, router, "/v2/pokedexes/x/entries")
	assert.Equal(t, http.StatusBadRequest, status)
}
