package database

import (
	"time"

	"gorm.io/datatypes"
)

// Set represents a card expansion
type Set struct {
	ID           string         `gorm:"primaryKey"       json:"id"`
	Name         string         `gorm:"not null"         json:"name"`
	Series       *string        `                        json:"series"`
	PrintedTotal *int           `                        json:"printed_total"`
	Total        *int           `                        json:"total"`
	Legalities   datatypes.JSON `gorm:"type:json"        json:"legalities"`
	PtcgoCode    *string        `                        json:"ptcgo_code"`
	ReleaseDate  *string        `gorm:"index"            json:"release_date"`
	UpdatedAt    *string        `                        json:"updated_at"` // Source timestamp string
	Images       datatypes.JSON `gorm:"type:json"        json:"images"`
	Year         *string        `gorm:"index"            json:"year"` // Derived from ReleaseDate at ingest
	Extras       datatypes.JSON `gorm:"type:json"        json:"-"`
}

// TableName specifies the table name for Set
func (Set) TableName() string {
	return "sets"
}

// Card represents a single trading card
type Card struct {
	ID                     string         `gorm:"primaryKey"      json:"id"`
	Name                   string         `gorm:"not null"        json:"name"`
	Supertype              *string        `                       json:"supertype"`
	Subtypes               datatypes.JSON `gorm:"type:json"       json:"subtypes"`
	Level                  *string        `                       json:"level"`
	HP                     *string        `gorm:"column:hp"       json:"hp"`
	Types                  datatypes.JSON `gorm:"type:json"       json:"types"`
	EvolvesFrom            *string        `                       json:"evolves_from"`
	EvolvesTo              datatypes.JSON `gorm:"type:json"       json:"evolves_to"`
	Abilities              datatypes.JSON `gorm:"type:json"       json:"abilities"`
	Attacks                datatypes.JSON `gorm:"type:json"       json:"attacks"`
	Weaknesses             datatypes.JSON `gorm:"type:json"       json:"weaknesses"`
	Resistances            datatypes.JSON `gorm:"type:json"       json:"resistances"`
	RetreatCost            datatypes.JSON `gorm:"type:json"       json:"retreat_cost"`
	ConvertedRetreatCost   *int           `                       json:"converted_retreat_cost"`
	Number                 *string        `                       json:"number"`
	Artist                 *string        `                       json:"artist"`
	Rarity                 *string        `gorm:"index"           json:"rarity"`
	FlavorText             *string        `                       json:"flavor_text"`
	NationalPokedexNumbers datatypes.JSON `gorm:"type:json"       json:"national_pokedex_numbers"`
	Legalities             datatypes.JSON `gorm:"type:json"       json:"legalities"`
	Images                 datatypes.JSON `gorm:"type:json"       json:"images"`
	Rules                  datatypes.JSON `gorm:"type:json"       json:"rules"`
	RegulationMark         *string        `                       json:"regulation_mark"`
	SetID                  string         `gorm:"not null;index"  json:"set_id"`
	Extras                 datatypes.JSON `gorm:"type:json"       json:"-"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}

// Deck represents a preconstructed theme deck
type Deck struct {
	ID     string         `gorm:"primaryKey" json:"id"`
	Name   string         `gorm:"not null"   json:"name"`
	Types  datatypes.JSON `gorm:"type:json"  json:"types"`
	Cards  datatypes.JSON `gorm:"type:json"  json:"cards"`
	Extras datatypes.JSON `gorm:"type:json"  json:"-"`
}

// TableName specifies the table name for Deck
func (Deck) TableName() string {
	return "decks"
}

// PokemonType represents an elemental type and its damage chart
type PokemonType struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null"   json:"name"`
	DamageTaken datatypes.JSON `gorm:"type:json"  json:"damage_taken"`
}

// TableName specifies the table name for PokemonType
func (PokemonType) TableName() string {
	return "pokemon_types"
}

// Move represents a battle move
type Move struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	Num              *int           `                  json:"num"`
	Name             string         `gorm:"not null"   json:"name"`
	Type             *string        `                  json:"type"`
	Category         *string        `                  json:"category"`
	Power            *int           `                  json:"power"`
	Accuracy         *string        `                  json:"accuracy"` // Either a number or "true" for moves that never miss
	PP               *int           `gorm:"column:pp"  json:"pp"`
	Priority         *int           `                  json:"priority"`
	Target           *string        `                  json:"target"`
	Description      *string        `                  json:"description"`
	ShortDescription *string        `                  json:"short_description"`
	Flags            datatypes.JSON `gorm:"type:json"  json:"flags"`
	IsZ              bool           `gorm:"column:is_z"    json:"is_z"`
	IsGmax           bool           `gorm:"column:is_gmax" json:"is_gmax"`
}

// TableName specifies the table name for Move
func (Move) TableName() string {
	return "moves"
}

// Ability represents a passive creature ability
type Ability struct {
	ID               string   `gorm:"primaryKey" json:"id"`
	Num              *int     `                  json:"num"`
	Name             string   `gorm:"not null"   json:"name"`
	Rating           *float64 `                  json:"rating"`
	Description      *string  `                  json:"description"`
	ShortDescription *string  `                  json:"short_description"`
}

// TableName specifies the table name for Ability
func (Ability) TableName() string {
	return "abilities"
}

// Species represents a creature species entry of the reference dataset
type Species struct {
	ID          string         `gorm:"primaryKey"  json:"id"`
	Num         *int           `                   json:"num"`
	Name        string         `gorm:"not null"    json:"name"`
	Types       datatypes.JSON `gorm:"type:json"   json:"types"`
	BaseStats   datatypes.JSON `gorm:"type:json"   json:"base_stats"`
	Abilities   datatypes.JSON `gorm:"type:json"   json:"abilities"`
	HeightM     *float64       `gorm:"column:height_m"  json:"height_m"`
	WeightKg    *float64       `gorm:"column:weight_kg" json:"weight_kg"`
	Color       *string        `                   json:"color"`
	Generation  *int           `                   json:"generation"`
	Prevo       *string        `                   json:"prevo"`
	Evos        datatypes.JSON `gorm:"type:json"   json:"evos"`
	Forme       *string        `                   json:"forme"`
	BaseSpecies *string        `                   json:"base_species"`
	IsCanonical bool           `                   json:"is_canonical"`
}

// TableName specifies the table name for Species
func (Species) TableName() string {
	return "species"
}

// Pokedex represents a regional or national catalog
type Pokedex struct {
	ID            int            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name          string         `gorm:"not null"                       json:"name"`
	IsMainSeries  bool           `                                      json:"is_main_series"`
	Region        *string        `                                      json:"region"`
	Descriptions  datatypes.JSON `gorm:"type:json"                      json:"descriptions"`
	Names         datatypes.JSON `gorm:"type:json"                      json:"names"`
	VersionGroups datatypes.JSON `gorm:"type:json"                      json:"version_groups"`
}

// TableName specifies the table name for Pokedex
func (Pokedex) TableName() string {
	return "pokedexes"
}

// PokedexEntry binds a species to a numbered slot of a pokedex
type PokedexEntry struct {
	PokedexID   int    `gorm:"primaryKey;autoIncrement:false" json:"pokedex_id"`
	EntryNumber int    `gorm:"primaryKey;autoIncrement:false" json:"entry_number"`
	SpeciesID   int    `gorm:"index;not null"                 json:"species_id"`
	SpeciesName string `gorm:"not null"                       json:"species_name"`
}

// TableName specifies the table name for PokedexEntry
func (PokedexEntry) TableName() string {
	return "pokedex_entries"
}

// Metadata keys
const (
	MetaSchemaVersion = "schema_version"
	MetaLastMigration = "last_migration"
)

// Metadata stores key/value bookkeeping such as the schema version and the last migration report
type Metadata struct {
	Key       string    `gorm:"primaryKey"     json:"key"`
	Value     string    `gorm:"not null"       json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Metadata
func (Metadata) TableName() string {
	return "metadata"
}

// Statistics summarises row counts per table
type Statistics struct {
	Sets           int64 `json:"sets"`
	Cards          int64 `json:"cards"`
	Decks          int64 `json:"decks"`
	Types          int64 `json:"types"`
	Moves          int64 `json:"moves"`
	Abilities      int64 `json:"abilities"`
	Species        int64 `json:"species"`
	Pokedexes      int64 `json:"pokedexes"`
	PokedexEntries int64 `json:"pokedex_entries"`
}
