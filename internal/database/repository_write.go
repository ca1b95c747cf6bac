package database

import (
	"context"
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/palemoky/pokemon-data-api/internal/logger"
)

// Write operations for migrations

const defaultBatchSize = 200

// WriteOptions tunes a bulk upsert.
type WriteOptions struct {
	BatchSize int
	Progress  *mpb.Progress // Optional; a bar is added per upsert when set
}

func (o WriteOptions) batchSize() int {
	if o.BatchSize <= 0 {
		return defaultBatchSize
	}
	return o.BatchSize
}

// newBar adds a progress bar sized to total rows, or returns nil when progress is disabled.
func (o WriteOptions) newBar(name string, total int) *mpb.Bar {
	if o.Progress == nil {
		return nil
	}
	return o.Progress.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name+": ", decor.WC{W: 18, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
			decor.Name(" | "),
			decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}),
		),
		mpb.BarRemoveOnComplete(),
	)
}

// upsertRows writes rows in batches inside tx. A conflicting primary key
// overwrites every column of the existing row; rows are never deleted.
func upsertRows[T any](tx *gorm.DB, rows []T, pk []string, batchSize int, bar *mpb.Bar) error {
	columns := make([]clause.Column, len(pk))
	for i, name := range pk {
		columns[i] = clause.Column{Name: name}
	}

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		batch := rows[i:end]

		err := tx.Clauses(clause.OnConflict{
			Columns:   columns,
			UpdateAll: true,
		}).Create(&batch).Error
		if err != nil {
			return fmt.Errorf("rows %d-%d: %w", i, end, err)
		}

		if bar != nil {
			bar.IncrBy(len(batch))
		}
	}
	return nil
}

// upsertKind upserts one entity kind as a single transaction.
func upsertKind[T any](ctx context.Context, db *DB, kind string, rows []T, opts WriteOptions) error {
	if len(rows) == 0 {
		return nil
	}

	bar := opts.newBar(kind, len(rows))
	if bar != nil {
		defer bar.Abort(false)
	}

	logger.Debug("Upserting rows",
		zap.String("kind", kind),
		zap.Int("rows", len(rows)),
		zap.Int("batch_size", opts.batchSize()),
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertRows(tx, rows, []string{"id"}, opts.batchSize(), bar)
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", kind, err)
	}
	return nil
}

// UpsertSets writes all sets in one transaction
func (r *Repository) UpsertSets(ctx context.Context, sets []Set, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "sets", sets, opts)
}

// UpsertCards writes all cards in one transaction
func (r *Repository) UpsertCards(ctx context.Context, cards []Card, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "cards", cards, opts)
}

// UpsertDecks writes all decks in one transaction
func (r *Repository) UpsertDecks(ctx context.Context, decks []Deck, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "decks", decks, opts)
}

// UpsertTypes writes all pokemon types in one transaction
func (r *Repository) UpsertTypes(ctx context.Context, types []PokemonType, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "types", types, opts)
}

// UpsertMoves writes all moves in one transaction
func (r *Repository) UpsertMoves(ctx context.Context, moves []Move, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "moves", moves, opts)
}

// UpsertAbilities writes all abilities in one transaction
func (r *Repository) UpsertAbilities(ctx context.Context, abilities []Ability, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "abilities", abilities, opts)
}

// UpsertSpecies writes all species in one transaction
func (r *Repository) UpsertSpecies(ctx context.Context, species []Species, opts WriteOptions) error {
	return upsertKind(ctx, r.db, "species", species, opts)
}

// UpsertPokedexes writes pokedexes and their entries together in one transaction.
func (r *Repository) UpsertPokedexes(ctx context.Context, pokedexes []Pokedex, entries []PokedexEntry, opts WriteOptions) error {
	if len(pokedexes) == 0 && len(entries) == 0 {
		return nil
	}

	bar := opts.newBar("pokedexes", len(pokedexes)+len(entries))
	if bar != nil {
		defer bar.Abort(false)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertRows(tx, pokedexes, []string{"id"}, opts.batchSize(), bar); err != nil {
			return fmt.Errorf("pokedexes: %w", err)
		}
		if err := upsertRows(tx, entries, []string{"pokedex_id", "entry_number"}, opts.batchSize(), bar); err != nil {
			return fmt.Errorf("pokedex entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert pokedexes: %w", err)
	}
	return nil
}

// SetMetadata stores a metadata value, overwriting any previous one.
func (r *Repository) SetMetadata(ctx context.Context, key, value string) error {
	meta := Metadata{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}
