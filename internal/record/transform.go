package record

import (
	"encoding/json"

	"github.com/palemoky/pokemon-data-api/internal/database"
)

// Card is the API shape of a card row. Unrecognised source fields kept in
// Extras are emitted alongside the typed ones.
type Card struct {
	ID                     string                     `json:"id"`
	Name                   string                     `json:"name"`
	Supertype              *string                    `json:"supertype,omitempty"`
	Subtypes               []string                   `json:"subtypes"`
	Level                  *string                    `json:"level,omitempty"`
	HP                     *string                    `json:"hp,omitempty"`
	Types                  []string                   `json:"types"`
	EvolvesFrom            *string                    `json:"evolvesFrom,omitempty"`
	EvolvesTo              []string                   `json:"evolvesTo"`
	Abilities              []Ability                  `json:"abilities"`
	Attacks                []Attack                   `json:"attacks"`
	Weaknesses             []Weakness                 `json:"weaknesses"`
	Resistances            []Weakness                 `json:"resistances"`
	RetreatCost            []string                   `json:"retreatCost"`
	ConvertedRetreatCost   *int                       `json:"convertedRetreatCost,omitempty"`
	Number                 *string                    `json:"number,omitempty"`
	Artist                 *string                    `json:"artist,omitempty"`
	Rarity                 *string                    `json:"rarity,omitempty"`
	FlavorText             *string                    `json:"flavorText,omitempty"`
	NationalPokedexNumbers []int                      `json:"nationalPokedexNumbers"`
	Legalities             map[string]json.RawMessage `json:"legalities"`
	Images                 map[string]json.RawMessage `json:"images"`
	Rules                  []string                   `json:"rules"`
	RegulationMark         *string                    `json:"regulationMark,omitempty"`
	SetID                  string                     `json:"setId"`
	Set                    *Set                       `json:"set,omitempty"`
	Extras                 map[string]json.RawMessage `json:"-"`
}

// EnrichedCard is a card carrying its parent set.
type EnrichedCard = Card

// Set is the API shape of a set row.
type Set struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Series       *string                    `json:"series,omitempty"`
	PrintedTotal *int                       `json:"printedTotal,omitempty"`
	Total        *int                       `json:"total,omitempty"`
	Legalities   map[string]json.RawMessage `json:"legalities"`
	PtcgoCode    *string                    `json:"ptcgoCode,omitempty"`
	ReleaseDate  *string                    `json:"releaseDate,omitempty"`
	UpdatedAt    *string                    `json:"updatedAt,omitempty"`
	Images       map[string]json.RawMessage `json:"images"`
	Year         *string                    `json:"year,omitempty"`
	Extras       map[string]json.RawMessage `json:"-"`
}

// Deck is the API shape of a deck row.
type Deck struct {
	ID     string                     `json:"id"`
	Name   string                     `json:"name"`
	Types  []string                   `json:"types"`
	Cards  []DeckCard                 `json:"cards"`
	Extras map[string]json.RawMessage `json:"-"`
}

// PokedexDetail is a pokedex with its decoded lists and ordered entries.
type PokedexDetail struct {
	ID            int                     `json:"id"`
	Name          string                  `json:"name"`
	IsMainSeries  bool                    `json:"is_main_series"`
	Region        *string                 `json:"region"`
	Descriptions  []Description           `json:"descriptions"`
	Names         []LocalizedName         `json:"names"`
	VersionGroups []NamedResource         `json:"version_groups"`
	Entries       []database.PokedexEntry `json:"entries"`
}

// Grouping collects the cards sharing a national pokedex number.
type Grouping struct {
	NationalPokedexNumber int            `json:"nationalPokedexNumber"`
	Name                  string         `json:"name"`
	Cards                 []EnrichedCard `json:"cards"`
}

type cardJSON Card

func (c Card) MarshalJSON() ([]byte, error) {
	return withExtras(cardJSON(c), c.Extras)
}

type setJSON Set

func (s Set) MarshalJSON() ([]byte, error) {
	return withExtras(setJSON(s), s.Extras)
}

type deckJSON Deck

func (d Deck) MarshalJSON() ([]byte, error) {
	return withExtras(deckJSON(d), d.Extras)
}

// withExtras marshals v and adds every extra key it does not already contain.
func withExtras(v any, extras map[string]json.RawMessage) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extras) == 0 {
		return b, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, raw := range extras {
		if _, ok := merged[k]; !ok {
			merged[k] = raw
		}
	}
	return json.Marshal(merged)
}

// CardFromRow decodes a card row. The set is left empty; see EnrichCard.
func CardFromRow(row database.Card) Card {
	return Card{
		ID:                     row.ID,
		Name:                   row.Name,
		Supertype:              row.Supertype,
		Subtypes:               decodeList[string](row.Subtypes),
		Level:                  row.Level,
		HP:                     row.HP,
		Types:                  decodeList[string](row.Types),
		EvolvesFrom:            row.EvolvesFrom,
		EvolvesTo:              decodeList[string](row.EvolvesTo),
		Abilities:              decodeList[Ability](row.Abilities),
		Attacks:                decodeList[Attack](row.Attacks),
		Weaknesses:             decodeList[Weakness](row.Weaknesses),
		Resistances:            decodeList[Weakness](row.Resistances),
		RetreatCost:            decodeList[string](row.RetreatCost),
		ConvertedRetreatCost:   row.ConvertedRetreatCost,
		Number:                 row.Number,
		Artist:                 row.Artist,
		Rarity:                 row.Rarity,
		FlavorText:             row.FlavorText,
		NationalPokedexNumbers: decodeList[int](row.NationalPokedexNumbers),
		Legalities:             decodeMap[json.RawMessage](row.Legalities),
		Images:                 decodeMap[json.RawMessage](row.Images),
		Rules:                  decodeList[string](row.Rules),
		RegulationMark:         row.RegulationMark,
		SetID:                  row.SetID,
		Extras:                 decodeMap[json.RawMessage](row.Extras),
	}
}

// EnrichCard decodes a card row and attaches its set. A nil set leaves the card without one.
func EnrichCard(row database.Card, set *database.Set) EnrichedCard {
	card := CardFromRow(row)
	if set != nil {
		s := SetFromRow(*set)
		card.Set = &s
	}
	return card
}

// SetFromRow decodes a set row.
func SetFromRow(row database.Set) Set {
	return Set{
		ID:           row.ID,
		Name:         row.Name,
		Series:       row.Series,
		PrintedTotal: row.PrintedTotal,
		Total:        row.Total,
		Legalities:   decodeMap[json.RawMessage](row.Legalities),
		PtcgoCode:    row.PtcgoCode,
		ReleaseDate:  row.ReleaseDate,
		UpdatedAt:    row.UpdatedAt,
		Images:       decodeMap[json.RawMessage](row.Images),
		Year:         row.Year,
		Extras:       decodeMap[json.RawMessage](row.Extras),
	}
}

// SetsFromRows decodes a list of set rows.
func SetsFromRows(rows []database.Set) []Set {
	sets := make([]Set, len(rows))
	for i, row := range rows {
		sets[i] = SetFromRow(row)
	}
	return sets
}

// DeckFromRow decodes a deck row.
func DeckFromRow(row database.Deck) Deck {
	return Deck{
		ID:     row.ID,
		Name:   row.Name,
		Types:  decodeList[string](row.Types),
		Cards:  decodeList[DeckCard](row.Cards),
		Extras: decodeMap[json.RawMessage](row.Extras),
	}
}

// DecksFromRows decodes a list of deck rows.
func DecksFromRows(rows []database.Deck) []Deck {
	decks := make([]Deck, len(rows))
	for i, row := range rows {
		decks[i] = DeckFromRow(row)
	}
	return decks
}

// PokedexFromRow decodes a pokedex row and attaches its entries.
func PokedexFromRow(row database.Pokedex, entries []database.PokedexEntry) PokedexDetail {
	if entries == nil {
		entries = []database.PokedexEntry{}
	}
	return PokedexDetail{
		ID:            row.ID,
		Name:          row.Name,
		IsMainSeries:  row.IsMainSeries,
		Region:        row.Region,
		Descriptions:  decodeList[Description](row.Descriptions),
		Names:         decodeList[LocalizedName](row.Names),
		VersionGroups: decodeList[NamedResource](row.VersionGroups),
		Entries:       entries,
	}
}
