package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	router, db, _ := setupTestRouter(t)

	status, body := get(t, router, "/health")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, float64(5), body["cards"])

	require.NoError(t, db.Close())

	status, body = get(t, router, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "disconnected", body["database"])
	assert.Equal(t, float64(0), body["cards"])

	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "UNAVAILABLE", apiErr["code"])
	assert.Equal(t, "Card store unavailable", apiErr["message"])
}

func TestStatsHandler(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	status, body := get(t, router, "/stats")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["sets"])
	assert.Equal(t, float64(5), body["cards"])
	assert.Equal(t, float64(2), body["types"])
	assert.Equal(t, float64(2), body["pokedex_entries"])
}

func TestInternalErrorsHideTheCause(t *testing.T) {
	router, db, _ := setupTestRouter(t)
	require.NoError(t, db.Close())

	status, body := get(t, router, "/v2/sets")
	require.Equal(t, http.StatusInternalServerError, status)

	apiErr := body["error"].(map[string]any)
	assert.Equal(t, "INTERNAL_ERROR", apiErr["code"])
	assert.Equal(t, "Internal server error", apiErr["message"])
}
