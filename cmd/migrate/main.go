package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/pokemon-data-api/internal/config"
	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/logger"
	"github.com/palemoky/pokemon-data-api/internal/migration"
)

var (
	configPath string
	dbPath     string
	dataDir    string
	skipRemote bool
	progress   bool
)

func main() {
	// Always debug mode for the migration tool
	logger.Init(true)
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Pokemon data migration",
		Long:  "Load the card datasets from disk and the reference datasets from the remote APIs into the SQLite store",
		RunE:  run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVarP(&dbPath, "db", "o", "", "SQLite database path (overrides config)")
	rootCmd.Flags().StringVarP(&dataDir, "data-dir", "i", "", "Directory holding the sets, cards and decks datasets (overrides config)")
	rootCmd.Flags().BoolVar(&skipRemote, "skip-remote", false, "Only load the local datasets")
	rootCmd.Flags().BoolVar(&progress, "progress", true, "Show progress bars")

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Command execution failed", zap.Error(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if dataDir != "" {
		cfg.Sources.DataDir = dataDir
	}
	if skipRemote {
		cfg.Migration.SkipRemote = true
	}

	logger.Info("Migrating",
		zap.String("database", cfg.Database.Path),
		zap.String("data_dir", cfg.Sources.DataDir),
		zap.Bool("skip_remote", cfg.Migration.SkipRemote),
	)

	// Single connection is enough for a sequential load
	db, err := database.Open(cfg.Database.Path, 1, 1)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := migration.OptionsFromConfig(cfg)
	opts.Progress = progress

	repo := database.NewRepository(db)
	report, runErr := migration.NewFromConfig(cfg, repo, opts).MigrateAll(ctx)
	if report != nil {
		if err := printReport(cmd.OutOrStdout(), report); err != nil {
			logger.Warn("Failed to print report", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := printStatistics(ctx, cmd.OutOrStdout(), repo); err != nil {
		logger.Warn("Failed to print statistics", zap.Error(err))
	}
	return nil
}

func printReport(w io.Writer, report *migration.Report) error {
	fmt.Fprintf(w, "\n=== Migration %s ===\n", report.RunID)

	table := tablewriter.NewWriter(w)
	table.Header("Step", "Status", "Rows", "Skipped", "Duration", "Error")
	for _, s := range report.Steps {
		if err := table.Append(
			s.Name,
			string(s.Status),
			s.Rows,
			s.Skipped,
			s.Duration.Round(time.Millisecond).String(),
			s.Error,
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func printStatistics(ctx context.Context, w io.Writer, repo *database.Repository) error {
	stats, err := repo.GetStatistics(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\n=== Database Statistics ===")

	table := tablewriter.NewWriter(w)
	table.Header("Table", "Rows")
	rows := [][]any{
		{"sets", stats.Sets},
		{"cards", stats.Cards},
		{"decks", stats.Decks},
		{"pokemon_types", stats.Types},
		{"moves", stats.Moves},
		{"abilities", stats.Abilities},
		{"species", stats.Species},
		{"pokedexes", stats.Pokedexes},
		{"pokedex_entries", stats.PokedexEntries},
	}
	for _, row := range rows {
		if err := table.Append(row...); err != nil {
			return err
		}
	}
	return table.Render()
}
