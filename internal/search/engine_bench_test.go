package search

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

var benchTypes = []string{"Fire", "Water", "Grass", "Lightning", "Psychic"}

// setupBenchmarkEngine creates an in-memory store with ten sets of a hundred cards each
func setupBenchmarkEngine(b *testing.B) *Engine {
	db, err := database.Open(database.MemoryPath, 0, 0)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = db.Close() })
	if err := db.Migrate(); err != nil {
		b.Fatal(err)
	}

	var sets, cards []string
	for s := 0; s < 10; s++ {
		setID := fmt.Sprintf("bench%d", s)
		sets = append(sets, fmt.Sprintf(`{"id":%q,"name":"Bench %d","releaseDate":"%d/01/01"}`, setID, s, 2000+s))
		for c := 0; c < 100; c++ {
			cards = append(cards, fmt.Sprintf(
				`{"id":"%s-%d","name":"Card %d","types":[%q],"subtypes":["Basic"],"rarity":"Common","nationalPokedexNumbers":[%d]}`,
				setID, c, c, benchTypes[c%len(benchTypes)], c%151+1))
		}
	}

	ctx := context.Background()
	repo := database.NewRepository(db)
	rawSets, err := record.ParseRecords([]byte("[" + strings.Join(sets, ",") + "]"))
	if err != nil {
		b.Fatal(err)
	}
	if err := repo.UpsertSets(ctx, record.NormalizeSets(rawSets), database.WriteOptions{}); err != nil {
		b.Fatal(err)
	}
	rawCards, err := record.ParseRecords([]byte("[" + strings.Join(cards, ",") + "]"))
	if err != nil {
		b.Fatal(err)
	}
	if err := repo.UpsertCards(ctx, record.NormalizeCards(rawCards), database.WriteOptions{}); err != nil {
		b.Fatal(err)
	}

	return NewEngine(db)
}

// BenchmarkListCards benchmarks card listing with different filters
func BenchmarkListCards(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	ctx := context.Background()

	testCases := []struct {
		name   string
		filter Filter
	}{
		{"unfiltered", Filter{}},
		{"types", Filter{Types: []string{"Fire", "Water"}}},
		{"years", Filter{Years: []string{"2003"}}},
		{"combined", Filter{Types: []string{"Grass"}, Sets: []string{"bench1", "bench2"}, Rarities: []string{"Common"}}},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = engine.ListCards(ctx, tc.filter)
			}
		})
	}
}

// BenchmarkGroupCardsByReferenceNumber benchmarks the pokedex number grouping
func BenchmarkGroupCardsByReferenceNumber(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.GroupCardsByReferenceNumber(ctx)
	}
}
