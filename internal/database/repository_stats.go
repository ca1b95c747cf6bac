package database

import "context"

// Statistics and counting methods

// CountCards returns the total number of cards
func (r *Repository) CountCards(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Card{}).Count(&count).Error
	return count, err
}

// GetStatistics returns row counts for every entity table
func (r *Repository) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&Set{}, &stats.Sets},
		{&Card{}, &stats.Cards},
		{&Deck{}, &stats.Decks},
		{&PokemonType{}, &stats.Types},
		{&Move{}, &stats.Moves},
		{&Ability{}, &stats.Abilities},
		{&Species{}, &stats.Species},
		{&Pokedex{}, &stats.Pokedexes},
		{&PokedexEntry{}, &stats.PokedexEntries},
	}

	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
