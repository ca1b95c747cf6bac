package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
	"github.com/palemoky/pokemon-data-api/internal/search"
	"github.com/palemoky/pokemon-data-api/internal/testutil"
)

const testPokedexes = `[
	{"id": 2, "name": "kanto", "is_main_series": true, "region": {"name": "kanto", "url": "https://pokeapi.co/api/v2/region/1/"},
	 "descriptions": [{"description": "Kanto dex", "language": {"name": "en", "url": ""}}],
	 "names": [{"name": "Kanto", "language": {"name": "en", "url": ""}}],
	 "pokemon_entries": [
		{"entry_number": 2, "pokemon_species": {"name": "ivysaur", "url": "https://pokeapi.co/api/v2/pokemon-species/2/"}},
		{"entry_number": 1, "pokemon_species": {"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon-species/1/"}}
	 ]},
	{"id": 1, "name": "national", "is_main_series": true}
]`

// setupTestRouter returns a router with every handler mounted over the shared fixtures
func setupTestRouter(t *testing.T) (*gin.Engine, *database.DB, *database.Repository) {
	t.Helper()

	db, repo := testutil.SetupTestDB(t)
	testutil.SeedFixtures(t, repo)
	seedReference(t, repo)

	engine := search.NewEngine(db)
	router := testutil.SetupTestGin()

	router.GET("/health", HealthHandler(db, repo))
	router.GET("/stats", StatsHandler(repo))

	cards := NewCardHandler(engine)
	router.GET("/v2/cards", cards.ListCards)
	router.GET("/v2/cards/filter", cards.FilterCards)
	router.GET("/v2/sets", NewSetHandler(repo).ListSets)
	router.GET("/v2/decks", NewDeckHandler(repo).ListDecks)

	pokemon := NewPokemonHandler(engine, repo)
	router.GET("/v2/pokemon", pokemon.GroupCards)
	router.GET("/v2/pokemon/types", pokemon.ListTypes)
	router.GET("/v2/pokemon/moves", pokemon.ListMoves)
	router.GET("/v2/pokemon/abilities", pokemon.ListAbilities)
	router.GET("/v2/pokemon/species", pokemon.ListSpecies)

	pokedexes := NewPokedexHandler(repo)
	router.GET("/v2/pokedexes", pokedexes.ListPokedexes)
	router.GET("/v2/pokedexes/:id", pokedexes.GetPokedex)
	router.GET("/v2/pokedexes/:id/entries", pokedexes.ListEntries)

	return router, db, repo
}

func seedReference(t *testing.T, repo *database.Repository) {
	t.Helper()
	ctx := context.Background()
	opts := database.WriteOptions{}

	types, err := record.KeyedRecords([]byte(`{"fire": {"name": "Fire", "damageTaken": {"Water": 1}}, "water": {"name": "Water"}}`))
	require.NoError(t, err)
	var typeRows []database.PokemonType
	for _, r := range types {
		typeRows = append(typeRows, record.NormalizeType(r))
	}
	require.NoError(t, repo.UpsertTypes(ctx, typeRows, opts))

	moves, err := record.KeyedRecords([]byte(`{"tackle": {"num": 33, "name": "Tackle", "basePower": 40, "accuracy": 100, "pp": 35}}`))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertMoves(ctx, []database.Move{record.NormalizeMove(moves[0])}, opts))

	decks, err := record.ParseRecords([]byte(`[{"id": "d-base1-1", "name": "2-Player Starter", "types": ["Fire", "Water"], "cards": [{"id": "base1-4", "name": "Charizard", "rarity": "Rare Holo", "count": 1}]}]`))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertDecks(ctx, record.NormalizeDecks(decks), opts))

	raws, err := record.ParseRecords([]byte(testPokedexes))
	require.NoError(t, err)
	var pokedexRows []database.Pokedex
	var entryRows []database.PokedexEntry
	for _, r := range raws {
		p, entries, errs := record.NormalizePokedex(r)
		require.Empty(t, errs)
		pokedexRows = append(pokedexRows, p)
		entryRows = append(entryRows, entries...)
	}
	require.NoError(t, repo.UpsertPokedexes(ctx, pokedexRows, entryRows, opts))
}

// get performs a GET request and decodes the JSON object body
func get(t *testing.T, router *gin.Engine, path string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func ids(t *testing.T, list any) []string {
	t.Helper()
	items, ok := list.([]any)
	require.True(t, ok, "expected a JSON array, got %T", list)

	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.(map[string]any)["id"].(string)
	}
	return result
}
