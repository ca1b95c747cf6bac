// Package migration drives the ingestion of local and remote datasets into the store.
package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vbauerster/mpb/v8"
	"go.uber.org/zap"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/loader"
	"github.com/palemoky/pokemon-data-api/internal/logger"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

var errAborted = errors.New("aborted by an earlier fatal step")

// LocalSource reads the authoritative datasets from disk.
type LocalSource interface {
	Load(pattern string) ([]record.Raw, error)
}

// RemoteSource reads the reference datasets from external APIs.
type RemoteSource interface {
	FetchReference(ctx context.Context, kind string) ([]record.Raw, error)
	FetchPokedexIndex(ctx context.Context) ([]loader.ResourcePointer, error)
	FetchResource(ctx context.Context, url string) (record.Raw, error)
}

// Options configures a migration run.
type Options struct {
	SetsPattern  string
	CardsPattern string
	DecksPattern string // Empty disables decks
	BatchSize    int
	SkipRemote   bool // Leave the external reference steps out
	Progress     bool // Render progress bars on stderr
}

// Orchestrator runs the migration steps in order against one store.
type Orchestrator struct {
	repo   *database.Repository
	local  LocalSource
	remote RemoteSource
	opts   Options

	progress *mpb.Progress
}

// NewOrchestrator creates an orchestrator. remote may be nil when opts.SkipRemote is set.
func NewOrchestrator(repo *database.Repository, local LocalSource, remote RemoteSource, opts Options) *Orchestrator {
	if remote == nil {
		opts.SkipRemote = true
	}
	return &Orchestrator{
		repo:   repo,
		local:  local,
		remote: remote,
		opts:   opts,
	}
}

func (o *Orchestrator) writeOptions() database.WriteOptions {
	return database.WriteOptions{
		BatchSize: o.opts.BatchSize,
		Progress:  o.progress,
	}
}

// MigrateAll runs every step in order and returns the run report. Best-effort
// step failures are recorded in the report only. A fatal failure stops the
// run, marks the remaining steps skipped and is returned as the error.
func (o *Orchestrator) MigrateAll(ctx context.Context) (*Report, error) {
	report := newReport()
	log := logger.Named("migration").With(zap.String("run_id", report.RunID))

	if o.opts.Progress {
		o.progress = mpb.NewWithContext(ctx,
			mpb.WithWidth(60),
			mpb.WithRefreshRate(100*time.Millisecond),
		)
		defer func() {
			o.progress.Wait()
			o.progress = nil
		}()
	}

	log.Info("Starting migration", zap.Bool("skip_remote", o.opts.SkipRemote))

	var runErr error
	for _, step := range o.Steps() {
		result := StepResult{Name: step.Name, Fatal: step.Fatal}

		switch {
		case runErr != nil:
			result.Status = StatusSkipped
			result.Error = errAborted.Error()
			report.add(result)
			continue
		case step.Remote && o.opts.SkipRemote:
			result.Status = StatusSkipped
			report.add(result)
			continue
		}

		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("migration cancelled before %s: %w", step.Name, err)
			result.Status = StatusSkipped
			result.Error = err.Error()
			report.add(result)
			continue
		}

		start := time.Now()
		stats, err := step.Run(ctx)
		result.Duration = time.Since(start)
		result.Rows = stats.Rows
		result.Skipped = stats.Skipped

		fields := []zap.Field{
			zap.String("step", step.Name),
			zap.Int("rows", stats.Rows),
			zap.Int("skipped", stats.Skipped),
			zap.Duration("duration", result.Duration),
		}

		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			if step.Fatal {
				log.Error("Migration step failed", append(fields, zap.Error(err))...)
				runErr = fmt.Errorf("migration step %s: %w", step.Name, err)
			} else {
				log.Warn("Migration step failed, continuing", append(fields, zap.Error(err))...)
			}
		} else {
			result.Status = StatusOK
			log.Info("Migration step done", fields...)
		}
		report.add(result)
	}

	report.finish()
	o.saveReport(ctx, report)

	if runErr != nil {
		return report, runErr
	}

	log.Info("Migration complete",
		zap.Duration("duration", report.Duration()),
		zap.Int("failed_steps", len(report.Failed())),
	)
	return report, nil
}

// saveReport stores the report as metadata. It is bookkeeping only, so a failure is logged.
func (o *Orchestrator) saveReport(ctx context.Context, report *Report) {
	if s := report.Step(StepSchema); s == nil || s.Status != StatusOK {
		return
	}

	value, err := report.JSON()
	if err == nil {
		err = o.repo.SetMetadata(context.WithoutCancel(ctx), database.MetaLastMigration, value)
	}
	if err != nil {
		logger.Warn("Failed to save migration report", zap.Error(err))
	}
}
