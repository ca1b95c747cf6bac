package record

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/palemoky/pokemon-data-api/internal/database"
)

const sampleCard = `{
	"id": "base1-4",
	"name": "Charizard",
	"supertype": "Pokémon",
	"subtypes": ["Stage 2"],
	"hp": "120",
	"types": ["Fire"],
	"evolvesFrom": "Charmeleon",
	"abilities": [{"name": "Energy Burn", "text": "All Energy is Fire.", "type": "Pokémon Power"}],
	"attacks": [{"name": "Fire Spin", "cost": ["Fire", "Fire", "Fire", "Fire"], "convertedEnergyCost": 4, "damage": "100", "text": "Discard 2 Energy."}],
	"weaknesses": [{"type": "Water", "value": "×2"}],
	"resistances": [{"type": "Fighting", "value": "-30"}],
	"retreatCost": ["Colorless", "Colorless", "Colorless"],
	"convertedRetreatCost": 3,
	"number": "4",
	"artist": "Mitsuhiro Arita",
	"rarity": "Rare Holo",
	"flavorText": "Spits fire.",
	"nationalPokedexNumbers": [6],
	"legalities": {"unlimited": "Legal"},
	"images": {"small": "https://images.example/base1/4.png"},
	"tcgplayer": {"url": "https://prices.example/base1-4"}
}`

const sampleSet = `{
	"id": "base1",
	"name": "Base",
	"series": "Base",
	"printedTotal": 102,
	"total": 102,
	"legalities": {"unlimited": "Legal"},
	"ptcgoCode": "BS",
	"releaseDate": "1999/01/09",
	"updatedAt": "2020/08/14 09:35:00",
	"images": {"symbol": "https://images.example/base1/symbol.png"}
}`

// assertRoundTrip checks that every field of raw reappears unchanged in out.
func assertRoundTrip(t *testing.T, raw string, out []byte) map[string]json.RawMessage {
	t.Helper()

	var in, got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	require.NoError(t, json.Unmarshal(out, &got))

	for key, value := range in {
		require.Contains(t, got, key)
		assert.JSONEq(t, string(value), string(got[key]), "field %s", key)
	}
	return got
}

func TestCardRoundTrip(t *testing.T) {
	row := NormalizeCard(mustRaw(t, sampleCard))
	set := NormalizeSet(mustRaw(t, sampleSet))

	out, err := json.Marshal(EnrichCard(row, &set))
	require.NoError(t, err)

	got := assertRoundTrip(t, sampleCard, out)

	// Only the derived fields are added
	assert.JSONEq(t, `"base1"`, string(got["setId"]))
	var enriched Set
	require.NoError(t, json.Unmarshal(got["set"], &enriched))
	assert.Equal(t, "Base", enriched.Name)
	require.NotNil(t, enriched.Year)
	assert.Equal(t, "1999", *enriched.Year)
}

func TestCardRoundTripKeepsNestedItems(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, card Card)
	}{
		{
			name: "unknown keys inside an attack",
			raw:  `{"id":"x-1","name":"Zapdos","attacks":[{"name":"Thunder","cost":["Lightning"],"convertedEnergyCost":1,"damage":"60","text":"","effectTag":"x"}]}`,
			check: func(t *testing.T, card Card) {
				require.Len(t, card.Attacks, 1)
				assert.Equal(t, "Thunder", card.Attacks[0].Name)
			},
		},
		{
			name: "a mistyped attack does not drop its neighbours",
			raw:  `{"id":"x-2","name":"Mew","attacks":[{"name":"Psywave","convertedEnergyCost":"2","damage":"10x"},{"name":"Devolution Beam","convertedEnergyCost":2,"damage":20}]}`,
			check: func(t *testing.T, card Card) {
				require.Len(t, card.Attacks, 2)
				assert.Equal(t, "Psywave", card.Attacks[0].Name)
				assert.Equal(t, "10x", card.Attacks[0].Damage)
				assert.Equal(t, 2, card.Attacks[1].ConvertedEnergyCost)
			},
		},
		{
			name: "abilities and weaknesses keep extra and mistyped values",
			raw:  `{"id":"x-3","name":"Alakazam","abilities":[{"name":"Damage Swap","text":"Move damage.","type":"Pokémon Power","errata":true}],"weaknesses":[{"type":"Psychic","value":2}],"resistances":[{"type":"Fighting","value":"-30","note":"old"}]}`,
			check: func(t *testing.T, card Card) {
				require.Len(t, card.Abilities, 1)
				assert.Equal(t, "Damage Swap", card.Abilities[0].Name)
				require.Len(t, card.Weaknesses, 1)
				assert.Equal(t, "Psychic", card.Weaknesses[0].Type)
				require.Len(t, card.Resistances, 1)
				assert.Equal(t, "-30", card.Resistances[0].Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := CardFromRow(NormalizeCard(mustRaw(t, tt.raw)))
			tt.check(t, card)

			out, err := json.Marshal(card)
			require.NoError(t, err)
			assertRoundTrip(t, tt.raw, out)
		})
	}
}

func TestDeckRoundTripKeepsCardEntries(t *testing.T) {
	raw := `{"id":"d-2","name":"Haymaker","types":["Fighting"],"cards":[{"id":"base1-8","name":"Machop","rarity":"Common","count":4,"edition":"1st"},{"id":"base1-92","name":"Energy Removal","rarity":"Common","count":"3"}]}`

	deck := DeckFromRow(NormalizeDeck(mustRaw(t, raw)))
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, 4, deck.Cards[0].Count)
	assert.Equal(t, "Energy Removal", deck.Cards[1].Name)

	out, err := json.Marshal(deck)
	require.NoError(t, err)
	assertRoundTrip(t, raw, out)
}

func TestNestedItemsBuiltInCodeMarshalTheirFields(t *testing.T) {
	out, err := json.Marshal(Attack{Name: "Tackle", Cost: []string{"Colorless"}, ConvertedEnergyCost: 1, Damage: "10"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tackle","cost":["Colorless"],"convertedEnergyCost":1,"damage":"10","text":""}`, string(out))
}

func TestSetRoundTrip(t *testing.T) {
	row := NormalizeSet(mustRaw(t, sampleSet))

	out, err := json.Marshal(SetFromRow(row))
	require.NoError(t, err)

	got := assertRoundTrip(t, sampleSet, out)
	assert.JSONEq(t, `"1999"`, string(got["year"]))
}

func TestCardFromRowToleratesBadBlobs(t *testing.T) {
	row := database.Card{
		ID:         "x-1",
		Name:       "Broken",
		Types:      datatypes.JSON(`{"not":"a list"}`),
		Attacks:    datatypes.JSON(`garbage`),
		Rules:      datatypes.JSON(`["ok", 7, "also ok"]`),
		Legalities: nil,
		SetID:      "x",
	}

	card := CardFromRow(row)
	assert.Equal(t, []string{}, card.Types)
	assert.Equal(t, []Attack{}, card.Attacks)
	assert.Equal(t, []string{"ok", "also ok"}, card.Rules)
	assert.NotNil(t, card.Legalities)
	assert.Nil(t, card.Set)

	out, err := json.Marshal(card)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"types":[]`)
	assert.NotContains(t, string(out), `"set"`)
}

func TestExtrasDoNotOverrideTypedFields(t *testing.T) {
	row := NormalizeDeck(mustRaw(t, `{"id":"d-1","name":"Deck","types":["Fire"],"cards":[{"id":"base1-4","name":"Charizard","rarity":"Rare Holo","count":1}],"format":"legacy"}`))
	deck := DeckFromRow(row)
	deck.Extras["name"] = json.RawMessage(`"shadowed"`)

	out, err := json.Marshal(deck)
	require.NoError(t, err)

	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &got))
	assert.JSONEq(t, `"Deck"`, string(got["name"]))
	assert.JSONEq(t, `"legacy"`, string(got["format"]))
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, 1, deck.Cards[0].Count)
}

func TestPokedexFromRow(t *testing.T) {
	row := database.Pokedex{
		ID:            1,
		Name:          "national",
		Descriptions:  datatypes.JSON(`[{"description":"Entire National dex","language":{"name":"en","url":"u"}}]`),
		Names:         datatypes.JSON(`[]`),
		VersionGroups: datatypes.JSON(`[]`),
	}

	detail := PokedexFromRow(row, nil)
	require.Len(t, detail.Descriptions, 1)
	assert.Equal(t, "en", detail.Descriptions[0].Language.Name)
	assert.NotNil(t, detail.Entries)
	assert.Empty(t, detail.Names)
}
