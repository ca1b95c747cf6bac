// Package testutil provides shared utilities for testing.
package testutil

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// SetupTestDB creates an in-memory SQLite database with the schema applied.
// Returns the DB wrapper and Repository. Automatically cleans up on test completion.
func SetupTestDB(t testing.TB) (*database.DB, *database.Repository) {
	t.Helper()

	db, err := database.Open(database.MemoryPath, 0, 0)
	require.NoError(t, err, "Failed to open in-memory database")
	require.NoError(t, db.Migrate(), "Failed to run migrations")

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db, database.NewRepository(db)
}

// SetupTestGin creates a test Gin engine with test mode enabled.
func SetupTestGin() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// FixtureSets is a small set dataset: two dated sets and one without a release date.
const FixtureSets = `[
	{"id": "base1", "name": "Base", "series": "Base", "releaseDate": "1999/01/09", "legalities": {"unlimited": "Legal"}},
	{"id": "sv1", "name": "Scarlet & Violet", "series": "Scarlet & Violet", "releaseDate": "2023/03/31"},
	{"id": "promo", "name": "Promo"}
]`

// FixtureCards holds cards A, B, C and a trainer T:
// A is Fire/Common, B is Water/Rare, C is Fire+Water/Rare with two pokedex numbers.
const FixtureCards = `[
	{"id": "base1-4", "name": "Charizard", "supertype": "Pokémon", "subtypes": ["Stage 2"], "types": ["Fire"], "rarity": "Common", "nationalPokedexNumbers": [6]},
	{"id": "base1-2", "name": "Blastoise", "supertype": "Pokémon", "subtypes": ["Stage 2"], "types": ["Water"], "rarity": "Rare", "nationalPokedexNumbers": [9]},
	{"id": "sv1-25", "name": "Steam Duo", "supertype": "Pokémon", "subtypes": ["Basic"], "types": ["Fire", "Water"], "rarity": "Rare", "nationalPokedexNumbers": [25, 26]},
	{"id": "sv1-190", "name": "Professor's Research", "supertype": "Trainer", "subtypes": ["Supporter"], "rarity": "Uncommon", "rules": ["Draw 7 cards."]},
	{"id": "promo-26", "name": "Raichu", "supertype": "Pokémon", "subtypes": ["Stage 1"], "types": ["Lightning"], "nationalPokedexNumbers": [26]}
]`

// SeedFixtures normalizes and stores FixtureSets and FixtureCards.
func SeedFixtures(t testing.TB, repo *database.Repository) {
	t.Helper()
	ctx := context.Background()

	rawSets, err := record.ParseRecords([]byte(FixtureSets))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertSets(ctx, record.NormalizeSets(rawSets), database.WriteOptions{}))

	rawCards, err := record.ParseRecords([]byte(FixtureCards))
	require.NoError(t, err)
	require.NoError(t, repo.UpsertCards(ctx, record.NormalizeCards(rawCards), database.WriteOptions{}))
}

// GormDB returns the underlying GORM database from a database.DB wrapper.
// This is useful for direct database manipulation in tests.
func GormDB(db *database.DB) *gorm.DB {
	return db.DB
}
