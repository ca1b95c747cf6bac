package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/pokemon-data-api/internal/config"
	"github.com/palemoky/pokemon-data-api/internal/testutil"
)

func TestSetupRouter(t *testing.T) {
	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixtures(t, repo)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	router := SetupRouter(cfg, db)

	routes := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/v2/stats", http.StatusOK},
		{"/v2/cards", http.StatusOK},
		{"/v2/cards/filter?types=Fire", http.StatusOK},
		{"/v2/sets", http.StatusOK},
		{"/v2/decks", http.StatusOK},
		{"/v2/pokemon", http.StatusOK},
		{"/v2/pokemon/types", http.StatusOK},
		{"/v2/pokemon/moves", http.StatusOK},
		{"/v2/pokemon/abilities", http.StatusOK},
		{"/v2/pokemon/species", http.StatusOK},
		{"/v2/pokedexes", http.StatusOK},
		{"/v2/pokedexes/1", http.StatusNotFound},
		{"/v2/pokedexes/1/entries", http.StatusOK},
		{"/v2/unknown", http.StatusNotFound},
	}

	for _, tt := range routes {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSetupRouterRateLimit(t *testing.T) {
	db, _ := testutil.SetupTestDB(t)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerSecond = 0.001
	cfg.RateLimit.Burst = 1
	router := SetupRouter(cfg, db)

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/sets", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
