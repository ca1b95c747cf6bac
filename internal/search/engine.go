// Package search implements the card listing, filtering and grouping queries.
package search

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// Engine handles all card queries
type Engine struct {
	db   *database.DB
	repo *database.Repository
}

// NewEngine creates a new search engine
func NewEngine(db *database.DB) *Engine {
	return &Engine{db: db, repo: database.NewRepository(db)}
}

// Filter selects cards. Groups are combined with AND, values within a group
// with OR. An empty group places no constraint. Values match exactly and
// case-sensitively.
type Filter struct {
	Types    []string `json:"types"`
	Subtypes []string `json:"subtypes"`
	Years    []string `json:"years"`
	Sets     []string `json:"sets"`
	Rarities []string `json:"rarities"`
}

// IsEmpty reports whether no group constrains the result.
func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Subtypes) == 0 && len(f.Years) == 0 &&
		len(f.Sets) == 0 && len(f.Rarities) == 0
}

// baseQuery selects card rows joined to their set for year filtering.
func (e *Engine) baseQuery(ctx context.Context) *gorm.DB {
	return e.db.WithContext(ctx).
		Model(&database.Card{}).
		Joins("LEFT JOIN sets ON sets.id = cards.set_id")
}

// jsonArrayContainsAny matches rows whose JSON array column shares a value with the list.
func jsonArrayContainsAny(column string) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN ?)", column)
}

func applyFilter(db *gorm.DB, f Filter) *gorm.DB {
	if len(f.Types) > 0 {
		db = db.Where(jsonArrayContainsAny("cards.types"), f.Types)
	}
	if len(f.Subtypes) > 0 {
		db = db.Where(jsonArrayContainsAny("cards.subtypes"), f.Subtypes)
	}
	if len(f.Years) > 0 {
		db = db.Where("sets.year IN ?", f.Years)
	}
	if len(f.Sets) > 0 {
		db = db.Where("cards.set_id IN ?", f.Sets)
	}
	if len(f.Rarities) > 0 {
		db = db.Where("cards.rarity IN ?", f.Rarities)
	}
	return db
}

// ListCards returns the cards matching f, each enriched with its set, ordered by id.
// An empty filter lists every card without joining sets.
func (e *Engine) ListCards(ctx context.Context, f Filter) ([]record.EnrichedCard, error) {
	query := e.db.WithContext(ctx).Model(&database.Card{})
	if !f.IsEmpty() {
		query = applyFilter(e.baseQuery(ctx), f)
	}

	var rows []database.Card
	err := query.
		Select("cards.*").
		Order("cards.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	return e.enrich(ctx, rows)
}

// enrich attaches each card's set, loading all referenced sets in one query.
func (e *Engine) enrich(ctx context.Context, rows []database.Card) ([]record.EnrichedCard, error) {
	cards := make([]record.EnrichedCard, 0, len(rows))
	if len(rows) == 0 {
		return cards, nil
	}

	seen := make(map[string]bool)
	var setIDs []string
	for _, row := range rows {
		if !seen[row.SetID] {
			seen[row.SetID] = true
			setIDs = append(setIDs, row.SetID)
		}
	}

	sets, err := e.repo.GetSetsByIDs(ctx, setIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load sets: %w", err)
	}

	for _, row := range rows {
		cards = append(cards, record.EnrichCard(row, sets[row.SetID]))
	}
	return cards, nil
}

// GroupCardsByReferenceNumber groups cards by national pokedex number. A card
// carrying several numbers joins every one of their groups. A group is named
// after the first card seen for its number, even when later members differ.
// Groups are ordered by number.
func (e *Engine) GroupCardsByReferenceNumber(ctx context.Context) ([]record.Grouping, error) {
	var rows []database.Card
	err := e.db.WithContext(ctx).
		Where("json_array_length(national_pokedex_numbers) > 0").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards, err := e.enrich(ctx, rows)
	if err != nil {
		return nil, err
	}

	groups := make(map[int]*record.Grouping)
	for _, card := range cards {
		for _, number := range card.NationalPokedexNumbers {
			g, ok := groups[number]
			if !ok {
				g = &record.Grouping{NationalPokedexNumber: number, Name: card.Name}
				groups[number] = g
			}
			g.Cards = append(g.Cards, card)
		}
	}

	result := make([]record.Grouping, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].NationalPokedexNumber < result[j].NationalPokedexNumber
	})
	return result, nil
}
