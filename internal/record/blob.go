package record

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Typed views of the nested structures stored as JSON blobs. Items decoded
// from a blob keep their source bytes and marshal back to them unchanged, so
// keys the view does not model and values of an unexpected type survive.

type Ability struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Type string `json:"type"`

	source json.RawMessage
}

type Attack struct {
	Name                string   `json:"name"`
	Cost                []string `json:"cost"`
	ConvertedEnergyCost int      `json:"convertedEnergyCost"`
	Damage              string   `json:"damage"`
	Text                string   `json:"text"`

	source json.RawMessage
}

// Weakness is also used for resistances.
type Weakness struct {
	Type  string `json:"type"`
	Value string `json:"value"`

	source json.RawMessage
}

type DeckCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Count  int    `json:"count"`

	source json.RawMessage
}

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Description struct {
	Description string        `json:"description"`
	Language    NamedResource `json:"language"`
}

type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

type (
	abilityFields  Ability
	attackFields   Attack
	weaknessFields Weakness
	deckCardFields DeckCard
)

// keepSource fills the typed view v as far as b allows and returns a copy of b.
// A field of the wrong type is left zero in v; the decoder still fills the rest.
func keepSource(b []byte, v any) json.RawMessage {
	_ = json.Unmarshal(b, v)
	return append(json.RawMessage(nil), b...)
}

func (a *Ability) UnmarshalJSON(b []byte) error {
	var f abilityFields
	src := keepSource(b, &f)
	*a = Ability(f)
	a.source = src
	return nil
}

func (a Ability) MarshalJSON() ([]byte, error) {
	if a.source != nil {
		return a.source, nil
	}
	return json.Marshal(abilityFields(a))
}

func (a *Attack) UnmarshalJSON(b []byte) error {
	var f attackFields
	src := keepSource(b, &f)
	*a = Attack(f)
	a.source = src
	return nil
}

func (a Attack) MarshalJSON() ([]byte, error) {
	if a.source != nil {
		return a.source, nil
	}
	return json.Marshal(attackFields(a))
}

func (w *Weakness) UnmarshalJSON(b []byte) error {
	var f weaknessFields
	src := keepSource(b, &f)
	*w = Weakness(f)
	w.source = src
	return nil
}

func (w Weakness) MarshalJSON() ([]byte, error) {
	if w.source != nil {
		return w.source, nil
	}
	return json.Marshal(weaknessFields(w))
}

func (d *DeckCard) UnmarshalJSON(b []byte) error {
	var f deckCardFields
	src := keepSource(b, &f)
	*d = DeckCard(f)
	d.source = src
	return nil
}

func (d DeckCard) MarshalJSON() ([]byte, error) {
	if d.source != nil {
		return d.source, nil
	}
	return json.Marshal(deckCardFields(d))
}

func decodeBlob(b datatypes.JSON, v any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, v)
}

// decodeList decodes a JSON array blob element by element, skipping only the
// elements that cannot be decoded. A blob that is not an array yields an
// empty, non-nil slice.
func decodeList[T any](b datatypes.JSON) []T {
	var items []json.RawMessage
	if err := decodeBlob(b, &items); err != nil {
		return []T{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeMap decodes a JSON object blob. Anything undecodable yields an empty, non-nil map.
func decodeMap[V any](b datatypes.JSON) map[string]V {
	var out map[string]V
	if err := decodeBlob(b, &out); err != nil || out == nil {
		return map[string]V{}
	}
	return out
}
