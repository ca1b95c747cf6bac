package database

import (
	"context"
)

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying connection
func (r *Repository) DB() *DB {
	return r.db
}

// ListSets returns every set ordered by release date.
// Dates are compared as strings, so they must be in a sortable format.
func (r *Repository) ListSets(ctx context.Context) ([]Set, error) {
	var sets []Set
	err := r.db.WithContext(ctx).
		Order("release_date ASC").
		Order("id ASC").
		Find(&sets).Error
	return sets, err
}

// GetSetsByIDs loads sets keyed by id. Unknown ids are absent from the map.
func (r *Repository) GetSetsByIDs(ctx context.Context, ids []string) (map[string]*Set, error) {
	result := make(map[string]*Set, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var sets []Set
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sets).Error; err != nil {
		return nil, err
	}
	for i := range sets {
		result[sets[i].ID] = &sets[i]
	}
	return result, nil
}

// ListDecks returns all decks ordered by id
func (r *Repository) ListDecks(ctx context.Context) ([]Deck, error) {
	var decks []Deck
	err := r.db.WithContext(ctx).Order("id ASC").Find(&decks).Error
	return decks, err
}

// ListTypes returns all pokemon types ordered by name
func (r *Repository) ListTypes(ctx context.Context) ([]PokemonType, error) {
	var types []PokemonType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

// ListMoves returns all moves ordered by num, then id
func (r *Repository) ListMoves(ctx context.Context) ([]Move, error) {
	var moves []Move
	err := r.db.WithContext(ctx).Order("num ASC").Order("id ASC").Find(&moves).Error
	return moves, err
}

// ListAbilities returns all abilities ordered by num, then id
func (r *Repository) ListAbilities(ctx context.Context) ([]Ability, error) {
	var abilities []Ability
	err := r.db.WithContext(ctx).Order("num ASC").Order("id ASC").Find(&abilities).Error
	return abilities, err
}

// ListSpecies returns all species ordered by num, then id
func (r *Repository) ListSpecies(ctx context.Context) ([]Species, error) {
	var species []Species
	err := r.db.WithContext(ctx).Order("num ASC").Order("id ASC").Find(&species).Error
	return species, err
}

// ListPokedexes returns all pokedexes ordered by id
func (r *Repository) ListPokedexes(ctx context.Context) ([]Pokedex, error) {
	var pokedexes []Pokedex
	err := r.db.WithContext(ctx).Order("id ASC").Find(&pokedexes).Error
	return pokedexes, err
}

// GetPokedex returns a single pokedex. It returns gorm.ErrRecordNotFound for unknown ids.
func (r *Repository) GetPokedex(ctx context.Context, id int) (*Pokedex, error) {
	var pokedex Pokedex
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pokedex).Error; err != nil {
		return nil, err
	}
	return &pokedex, nil
}

// ListPokedexEntries returns the entries of a pokedex in entry order.
// An unknown pokedex yields an empty list.
func (r *Repository) ListPokedexEntries(ctx context.Context, pokedexID int) ([]PokedexEntry, error) {
	entries := []PokedexEntry{}
	err := r.db.WithContext(ctx).
		Where("pokedex_id = ?", pokedexID).
		Order("entry_number ASC").
		Find(&entries).Error
	return entries, err
}

// GetMetadata returns a metadata value, or "" when the key is unset.
func (r *Repository) GetMetadata(ctx context.Context, key string) (string, error) {
	var metas []Metadata
	if err := r.db.WithContext(ctx).Where("key = ?", key).Limit(1).Find(&metas).Error; err != nil {
		return "", err
	}
	if len(metas) == 0 {
		return "", nil
	}
	return metas[0].Value, nil
}
