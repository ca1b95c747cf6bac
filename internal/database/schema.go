package database

const (
	// Schema version for migrations
	SchemaVersion = 1
)

// CreateTablesSQL contains all table creation statements.
// Nested structures live in TEXT columns holding JSON.
var CreateTablesSQL = []string{
	`CREATE TABLE IF NOT EXISTS sets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		series TEXT,
		printed_total INTEGER,
		total INTEGER,
		legalities TEXT NOT NULL DEFAULT '{}',
		ptcgo_code TEXT,
		release_date TEXT,
		updated_at TEXT,
		images TEXT NOT NULL DEFAULT '{}',
		year TEXT,
		extras TEXT NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		supertype TEXT,
		subtypes TEXT NOT NULL DEFAULT '[]',
		level TEXT,
		hp TEXT,
		types TEXT NOT NULL DEFAULT '[]',
		evolves_from TEXT,
		evolves_to TEXT NOT NULL DEFAULT '[]',
		abilities TEXT NOT NULL DEFAULT '[]',
		attacks TEXT NOT NULL DEFAULT '[]',
		weaknesses TEXT NOT NULL DEFAULT '[]',
		resistances TEXT NOT NULL DEFAULT '[]',
		retreat_cost TEXT NOT NULL DEFAULT '[]',
		converted_retreat_cost INTEGER,
		number TEXT,
		artist TEXT,
		rarity TEXT,
		flavor_text TEXT,
		national_pokedex_numbers TEXT NOT NULL DEFAULT '[]',
		legalities TEXT NOT NULL DEFAULT '{}',
		images TEXT NOT NULL DEFAULT '{}',
		rules TEXT NOT NULL DEFAULT '[]',
		regulation_mark TEXT,
		set_id TEXT NOT NULL,
		extras TEXT NOT NULL DEFAULT '{}',
		FOREIGN KEY (set_id) REFERENCES sets(id)
	)`,

	`CREATE TABLE IF NOT EXISTS decks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		types TEXT NOT NULL DEFAULT '[]',
		cards TEXT NOT NULL DEFAULT '[]',
		extras TEXT NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS pokemon_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		damage_taken TEXT NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS moves (
		id TEXT PRIMARY KEY,
		num INTEGER,
		name TEXT NOT NULL,
		type TEXT,
		category TEXT,
		power INTEGER,
		accuracy TEXT,
		pp INTEGER,
		priority INTEGER,
		target TEXT,
		description TEXT,
		short_description TEXT,
		flags TEXT NOT NULL DEFAULT '{}',
		is_z INTEGER NOT NULL DEFAULT 0,
		is_gmax INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS abilities (
		id TEXT PRIMARY KEY,
		num INTEGER,
		name TEXT NOT NULL,
		rating REAL,
		description TEXT,
		short_description TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS species (
		id TEXT PRIMARY KEY,
		num INTEGER,
		name TEXT NOT NULL,
		types TEXT NOT NULL DEFAULT '[]',
		base_stats TEXT NOT NULL DEFAULT '{}',
		abilities TEXT NOT NULL DEFAULT '{}',
		height_m REAL,
		weight_kg REAL,
		color TEXT,
		generation INTEGER,
		prevo TEXT,
		evos TEXT NOT NULL DEFAULT '[]',
		forme TEXT,
		base_species TEXT,
		is_canonical INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS pokedexes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		is_main_series INTEGER NOT NULL DEFAULT 0,
		region TEXT,
		descriptions TEXT NOT NULL DEFAULT '[]',
		names TEXT NOT NULL DEFAULT '[]',
		version_groups TEXT NOT NULL DEFAULT '[]'
	)`,

	`CREATE TABLE IF NOT EXISTS pokedex_entries (
		pokedex_id INTEGER NOT NULL,
		entry_number INTEGER NOT NULL,
		species_id INTEGER NOT NULL,
		species_name TEXT NOT NULL,
		PRIMARY KEY (pokedex_id, entry_number),
		FOREIGN KEY (pokedex_id) REFERENCES pokedexes(id)
	)`,

	`CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// CreateIndexesSQL contains all index creation statements
var CreateIndexesSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_cards_set ON cards(set_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards(rarity)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name)`,
	`CREATE INDEX IF NOT EXISTS idx_sets_year ON sets(year)`,
	`CREATE INDEX IF NOT EXISTS idx_sets_release_date ON sets(release_date)`,
	`CREATE INDEX IF NOT EXISTS idx_pokedex_entries_species ON pokedex_entries(species_id)`,
}

// EntityTables lists every table filled by a migration, in dependency order.
var EntityTables = []string{
	"sets",
	"cards",
	"decks",
	"pokemon_types",
	"moves",
	"abilities",
	"species",
	"pokedexes",
	"pokedex_entries",
}
