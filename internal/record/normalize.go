package record

import (
	"strings"

	"github.com/palemoky/pokemon-data-api/internal/database"
)

var cardKeys = keySet(
	"id", "name", "supertype", "subtypes", "level", "hp", "types", "evolvesFrom", "evolvesTo",
	"abilities", "attacks", "weaknesses", "resistances", "retreatCost", "convertedRetreatCost",
	"number", "artist", "rarity", "flavorText", "nationalPokedexNumbers", "legalities", "images",
	"rules", "regulationMark", "set",
)

var setKeys = keySet(
	"id", "name", "series", "printedTotal", "total", "legalities", "ptcgoCode", "releaseDate",
	"updatedAt", "images", "year",
)

var deckKeys = keySet("id", "name", "types", "cards")

// DeriveSetID returns the set id encoded in a card id: the text before the first "-".
func DeriveSetID(cardID string) string {
	setID, _, _ := strings.Cut(cardID, "-")
	return setID
}

// DeriveYear returns the first "/" segment of a release date, or nil when the date is empty.
func DeriveYear(releaseDate string) *string {
	if releaseDate == "" {
		return nil
	}
	year, _, _ := strings.Cut(releaseDate, "/")
	return &year
}

// NormalizeCard flattens a card record. A missing set reference is derived from the card id.
func NormalizeCard(r Raw) database.Card {
	id := r.String("id")

	setID := r.Object("set").String("id")
	if setID == "" {
		setID = DeriveSetID(id)
	}

	return database.Card{
		ID:                     id,
		Name:                   r.String("name"),
		Supertype:              r.OptString("supertype"),
		Subtypes:               r.List("subtypes"),
		Level:                  r.OptString("level"),
		HP:                     r.OptString("hp"),
		Types:                  r.List("types"),
		EvolvesFrom:            r.OptString("evolvesFrom"),
		EvolvesTo:              r.List("evolvesTo"),
		Abilities:              r.List("abilities"),
		Attacks:                r.List("attacks"),
		Weaknesses:             r.List("weaknesses"),
		Resistances:            r.List("resistances"),
		RetreatCost:            r.List("retreatCost"),
		ConvertedRetreatCost:   r.Int("convertedRetreatCost"),
		Number:                 r.OptString("number"),
		Artist:                 r.OptString("artist"),
		Rarity:                 r.OptString("rarity"),
		FlavorText:             r.OptString("flavorText"),
		NationalPokedexNumbers: r.List("nationalPokedexNumbers"),
		Legalities:             r.Map("legalities"),
		Images:                 r.Map("images"),
		Rules:                  r.List("rules"),
		RegulationMark:         r.OptString("regulationMark"),
		SetID:                  setID,
		Extras:                 r.Extras(cardKeys),
	}
}

// NormalizeSet flattens a set record. The year is always derived from
// releaseDate; a year field in the source is ignored.
func NormalizeSet(r Raw) database.Set {
	releaseDate := r.String("releaseDate")

	return database.Set{
		ID:           r.String("id"),
		Name:         r.String("name"),
		Series:       r.OptString("series"),
		PrintedTotal: r.Int("printedTotal"),
		Total:        r.Int("total"),
		Legalities:   r.Map("legalities"),
		PtcgoCode:    r.OptString("ptcgoCode"),
		ReleaseDate:  r.OptString("releaseDate"),
		UpdatedAt:    r.OptString("updatedAt"),
		Images:       r.Map("images"),
		Year:         DeriveYear(releaseDate),
		Extras:       r.Extras(setKeys),
	}
}

// NormalizeDeck flattens a theme deck record.
func NormalizeDeck(r Raw) database.Deck {
	return database.Deck{
		ID:     r.String("id"),
		Name:   r.String("name"),
		Types:  r.List("types"),
		Cards:  r.List("cards"),
		Extras: r.Extras(deckKeys),
	}
}

// NormalizeCards normalizes a batch, dropping records without an id.
func NormalizeCards(raws []Raw) []database.Card {
	cards := make([]database.Card, 0, len(raws))
	for _, r := range raws {
		if c := NormalizeCard(r); c.ID != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

// NormalizeSets normalizes a batch, dropping records without an id.
func NormalizeSets(raws []Raw) []database.Set {
	sets := make([]database.Set, 0, len(raws))
	for _, r := range raws {
		if s := NormalizeSet(r); s.ID != "" {
			sets = append(sets, s)
		}
	}
	return sets
}

// NormalizeDecks normalizes a batch, dropping records without an id.
func NormalizeDecks(raws []Raw) []database.Deck {
	decks := make([]database.Deck, 0, len(raws))
	for _, r := range raws {
		if d := NormalizeDeck(r); d.ID != "" {
			decks = append(decks, d)
		}
	}
	return decks
}
