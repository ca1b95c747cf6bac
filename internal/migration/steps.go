package migration

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/palemoky/pokemon-data-api/internal/database"
	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/logger"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// Step names in run order
const (
	StepSchema    = "schema"
	StepSets      = "sets"
	StepCards     = "cards"
	StepDecks     = "decks"
	StepTypes     = "types"
	StepMoves     = "moves"
	StepAbilities = "abilities"
	StepSpecies   = "species"
	StepPokedexes = "pokedexes"
)

// Step is one unit of a migration. A fatal step aborts the run when it
// fails; any other failure is recorded and the run moves on.
type Step struct {
	Name   string
	Fatal  bool
	Remote bool // Reads from an external API
	Run    func(ctx context.Context) (StepStats, error)
}

// Steps returns the fixed migration plan. Sets precede cards; the reference
// kinds are independent of each other and of the card data.
func (o *Orchestrator) Steps() []Step {
	return []Step{
		{Name: StepSchema, Fatal: true, Run: o.migrateSchema},
		{Name: StepSets, Fatal: true, Run: o.migrateSets},
		{Name: StepCards, Fatal: true, Run: o.migrateCards},
		{Name: StepDecks, Run: o.migrateDecks},
		{Name: StepTypes, Remote: true, Run: referenceStep(o, "types", record.NormalizeType, o.repo.UpsertTypes)},
		{Name: StepMoves, Remote: true, Run: referenceStep(o, "moves", record.NormalizeMove, o.repo.UpsertMoves)},
		{Name: StepAbilities, Remote: true, Run: referenceStep(o, "abilities", record.NormalizeAbility, o.repo.UpsertAbilities)},
		{Name: StepSpecies, Remote: true, Run: referenceStep(o, "species", record.NormalizeSpecies, o.repo.UpsertSpecies)},
		{Name: StepPokedexes, Remote: true, Run: o.migratePokedexes},
	}
}

func (o *Orchestrator) migrateSchema(ctx context.Context) (StepStats, error) {
	if err := o.repo.DB().Migrate(); err != nil {
		return StepStats{}, err
	}
	return StepStats{}, nil
}

// loadRequired loads an authoritative dataset. Sets and cards replace the
// whole catalogue, so an empty match fails the step instead of passing silently.
func (o *Orchestrator) loadRequired(pattern string) ([]record.Raw, error) {
	raws, err := o.local.Load(pattern)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, &apperrors.LoadError{Path: pattern, Err: apperrors.ErrNoRecords}
	}
	return raws, nil
}

func (o *Orchestrator) migrateSets(ctx context.Context) (StepStats, error) {
	raws, err := o.loadRequired(o.opts.SetsPattern)
	if err != nil {
		return StepStats{}, err
	}
	sets := record.NormalizeSets(raws)
	if err := o.repo.UpsertSets(ctx, sets, o.writeOptions()); err != nil {
		return StepStats{}, err
	}
	return StepStats{Rows: len(sets), Skipped: len(raws) - len(sets)}, nil
}

func (o *Orchestrator) migrateCards(ctx context.Context) (StepStats, error) {
	raws, err := o.loadRequired(o.opts.CardsPattern)
	if err != nil {
		return StepStats{}, err
	}
	cards := record.NormalizeCards(raws)
	if err := o.repo.UpsertCards(ctx, cards, o.writeOptions()); err != nil {
		return StepStats{}, err
	}
	return StepStats{Rows: len(cards), Skipped: len(raws) - len(cards)}, nil
}

// migrateDecks is optional data: a dataset without deck files migrates zero rows.
func (o *Orchestrator) migrateDecks(ctx context.Context) (StepStats, error) {
	if o.opts.DecksPattern == "" {
		return StepStats{}, nil
	}
	raws, err := o.local.Load(o.opts.DecksPattern)
	if err != nil {
		return StepStats{}, err
	}
	decks := record.NormalizeDecks(raws)
	if err := o.repo.UpsertDecks(ctx, decks, o.writeOptions()); err != nil {
		return StepStats{}, err
	}
	return StepStats{Rows: len(decks), Skipped: len(raws) - len(decks)}, nil
}

// referenceRow is any reference model keyed by a string id.
type referenceRow interface {
	database.PokemonType | database.Move | database.Ability | database.Species
}

func rowID[T referenceRow](row T) string {
	switch v := any(row).(type) {
	case database.PokemonType:
		return v.ID
	case database.Move:
		return v.ID
	case database.Ability:
		return v.ID
	case database.Species:
		return v.ID
	}
	return ""
}

// referenceStep builds the step for one wholesale reference dataset.
func referenceStep[T referenceRow](
	o *Orchestrator,
	kind string,
	normalize func(record.Raw) T,
	upsert func(context.Context, []T, database.WriteOptions) error,
) func(context.Context) (StepStats, error) {
	return func(ctx context.Context) (StepStats, error) {
		raws, err := o.remote.FetchReference(ctx, kind)
		if err != nil {
			return StepStats{}, err
		}

		rows := make([]T, 0, len(raws))
		for _, raw := range raws {
			row := normalize(raw)
			if rowID(row) == "" {
				continue
			}
			rows = append(rows, row)
		}

		if err := upsert(ctx, rows, o.writeOptions()); err != nil {
			return StepStats{}, err
		}
		return StepStats{Rows: len(rows), Skipped: len(raws) - len(rows)}, nil
	}
}

// migratePokedexes walks the paginated index and fetches every pokedex one by
// one. A failed fetch or a malformed entry is logged and skipped; only a
// failed index fetch, or every pokedex failing, fails the step.
func (o *Orchestrator) migratePokedexes(ctx context.Context) (StepStats, error) {
	pointers, err := o.remote.FetchPokedexIndex(ctx)
	if err != nil {
		return StepStats{}, err
	}

	var (
		pokedexes []database.Pokedex
		entries   []database.PokedexEntry
		stats     StepStats
		lastErr   error
	)

	for _, ptr := range pointers {
		raw, err := o.remote.FetchResource(ctx, ptr.URL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			logger.Warn("Skipping pokedex",
				zap.String("pokedex", ptr.Name),
				zap.Error(err),
			)
			stats.Skipped++
			lastErr = err
			continue
		}

		pokedex, pokedexEntries, errs := record.NormalizePokedex(raw)
		if pokedex.ID == 0 {
			logger.Warn("Skipping pokedex without id", zap.String("pokedex", ptr.Name))
			stats.Skipped++
			lastErr = fmt.Errorf("pokedex %s has no id", ptr.Name)
			continue
		}
		for _, e := range errs {
			logger.Warn("Skipping pokedex entry",
				zap.String("pokedex", pokedex.Name),
				zap.Error(e),
			)
		}

		stats.Skipped += len(errs)
		pokedexes = append(pokedexes, pokedex)
		entries = append(entries, pokedexEntries...)
	}

	if len(pointers) > 0 && len(pokedexes) == 0 {
		return stats, fmt.Errorf("all %d pokedexes failed: %w", len(pointers), lastErr)
	}

	if err := o.repo.UpsertPokedexes(ctx, pokedexes, entries, o.writeOptions()); err != nil {
		return stats, err
	}
	stats.Rows = len(pokedexes) + len(entries)
	return stats, nil
}
