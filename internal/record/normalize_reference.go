package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/pokemon-data-api/internal/database"
	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
)

// NormalizeType flattens a type chart record. The name falls back to the id.
func NormalizeType(r Raw) database.PokemonType {
	id := r.String("id")
	name := r.String("name")
	if name == "" {
		name = id
	}
	return database.PokemonType{
		ID:          id,
		Name:        name,
		DamageTaken: r.Map(r.firstPresent("damageTaken", "damage_taken")),
	}
}

// NormalizeMove flattens a move record. Accuracy stays a loose string:
// sources use either a percentage or true for moves that never miss.
func NormalizeMove(r Raw) database.Move {
	return database.Move{
		ID:               r.String("id"),
		Num:              r.Int("num"),
		Name:             r.String("name"),
		Type:             r.OptString("type"),
		Category:         r.OptString("category"),
		Power:            r.Int(r.firstPresent("power", "basePower")),
		Accuracy:         r.OptString("accuracy"),
		PP:               r.Int("pp"),
		Priority:         r.Int("priority"),
		Target:           r.OptString("target"),
		Description:      r.firstString("description", "desc"),
		ShortDescription: r.firstString("shortDescription", "shortDesc"),
		Flags:            r.Map("flags"),
		IsZ:              r.Bool("isZ"),
		IsGmax:           r.Bool("isGmax") || r.Bool("isMax"),
	}
}

// NormalizeAbility flattens an ability record.
func NormalizeAbility(r Raw) database.Ability {
	return database.Ability{
		ID:               r.String("id"),
		Num:              r.Int("num"),
		Name:             r.String("name"),
		Rating:           r.Float("rating"),
		Description:      r.firstString("description", "desc"),
		ShortDescription: r.firstString("shortDescription", "shortDesc"),
	}
}

// NormalizeSpecies flattens a species record.
func NormalizeSpecies(r Raw) database.Species {
	return database.Species{
		ID:          r.String("id"),
		Num:         r.Int("num"),
		Name:        r.String("name"),
		Types:       r.List("types"),
		BaseStats:   r.Map("baseStats"),
		Abilities:   r.Map("abilities"),
		HeightM:     r.Float(r.firstPresent("heightm", "heightM")),
		WeightKg:    r.Float(r.firstPresent("weightkg", "weightKg")),
		Color:       r.OptString("color"),
		Generation:  r.Int(r.firstPresent("gen", "generation")),
		Prevo:       r.OptString("prevo"),
		Evos:        r.List("evos"),
		Forme:       r.OptString("forme"),
		BaseSpecies: r.OptString("baseSpecies"),
		IsCanonical: r.Bool("isCanonical"),
	}
}

// NormalizePokedex flattens a pokedex resource and its entries. A malformed
// entry is reported in errs and skipped; the rest of the pokedex is kept.
func NormalizePokedex(r Raw) (database.Pokedex, []database.PokedexEntry, []error) {
	id := 0
	if n := r.Int("id"); n != nil {
		id = *n
	}

	var region *string
	if reg := r.Object("region"); reg != nil {
		region = reg.OptString("name")
	}

	pokedex := database.Pokedex{
		ID:            id,
		Name:          r.String("name"),
		IsMainSeries:  r.Bool("is_main_series"),
		Region:        region,
		Descriptions:  r.List("descriptions"),
		Names:         r.List("names"),
		VersionGroups: r.List("version_groups"),
	}

	var rawEntries []Raw
	if err := decodeBlob(r.List("pokemon_entries"), &rawEntries); err != nil {
		return pokedex, nil, []error{&apperrors.RecordError{Kind: "pokedex", Key: pokedex.Name, Err: err}}
	}

	entries := make([]database.PokedexEntry, 0, len(rawEntries))
	var errs []error
	for _, raw := range rawEntries {
		entry, err := NormalizePokedexEntry(id, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return pokedex, entries, errs
}

// NormalizePokedexEntry flattens one pokemon_entries item. The species id is
// the second-to-last "/" segment of pokemon_species.url, so the URL must end in "/".
func NormalizePokedexEntry(pokedexID int, r Raw) (database.PokedexEntry, error) {
	species := r.Object("pokemon_species")
	name := species.String("name")
	url := species.String("url")

	number := r.Int("entry_number")
	if number == nil {
		return database.PokedexEntry{}, &apperrors.RecordError{
			Kind: "pokedex entry",
			Key:  name,
			Err:  fmt.Errorf("missing entry_number"),
		}
	}

	speciesID, err := SpeciesIDFromURL(url)
	if err != nil {
		return database.PokedexEntry{}, &apperrors.RecordError{
			Kind: "pokedex entry",
			Key:  strconv.Itoa(*number),
			Err:  err,
		}
	}

	return database.PokedexEntry{
		PokedexID:   pokedexID,
		EntryNumber: *number,
		SpeciesID:   speciesID,
		SpeciesName: name,
	}, nil
}

// SpeciesIDFromURL reads the numeric id from a resource URL like
// "https://pokeapi.co/api/v2/pokemon-species/25/".
func SpeciesIDFromURL(url string) (int, error) {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed species url %q", url)
	}
	id, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, fmt.Errorf("malformed species url %q: %w", url, err)
	}
	return id, nil
}
