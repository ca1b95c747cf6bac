package search

import (
	"context"
	"testing"

	"github.com/palemoky/pokemon-data-api/internal/testutil"
)

// FuzzListCards checks that arbitrary filter values never fail a query and
// always narrow the unfiltered listing.
func FuzzListCards(f *testing.F) {
	f.Add("Fire", "1999", "Rare")
	f.Add("Water", "", "")
	f.Add("", "2023", "Uncommon")
	f.Add("'; DROP TABLE cards; --", "1999' OR '1'='1", "%")
	f.Add("[\"Fire\"]", "null", "\x00")

	db, repo := testutil.SetupTestDB(f)
	testutil.SeedFixtures(f, repo)
	engine := NewEngine(db)

	all, err := engine.ListCards(context.Background(), Filter{})
	if err != nil {
		f.Fatal(err)
	}
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c.ID] = true
	}

	f.Fuzz(func(t *testing.T, typ, year, rarity string) {
		filter := Filter{
			Types:    []string{typ},
			Years:    []string{year},
			Rarities: []string{rarity, "Rare"},
		}

		cards, err := engine.ListCards(context.Background(), filter)
		if err != nil {
			t.Fatalf("ListCards(%+v) returned error: %v", filter, err)
		}
		for _, c := range cards {
			if !known[c.ID] {
				t.Errorf("ListCards(%+v) returned unknown card %q", filter, c.ID)
			}
		}

		if len(cards) > len(all) {
			t.Errorf("ListCards(%+v) returned %d cards, more than the %d stored", filter, len(cards), len(all))
		}
	})
}
