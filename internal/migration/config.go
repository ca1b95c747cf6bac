package migration

import (
	"github.com/palemoky/pokemon-data-api/internal/config"
	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/helpers"
	"github.com/palemoky/pokemon-data-api/internal/loader"
)

// OptionsFromConfig builds run options from the configured sources, with the
// {lang} placeholder of every pattern replaced by the configured language.
func OptionsFromConfig(cfg *config.Config) Options {
	src := cfg.Sources
	return Options{
		SetsPattern:  helpers.ExpandLang(src.SetsPattern, src.Language),
		CardsPattern: helpers.ExpandLang(src.CardsPattern, src.Language),
		DecksPattern: helpers.ExpandLang(src.DecksPattern, src.Language),
		BatchSize:    cfg.Migration.BatchSize,
		SkipRemote:   cfg.Migration.SkipRemote,
	}
}

// NewFromConfig wires an orchestrator to the configured local data directory
// and remote APIs. The remote client is left out when remote steps are skipped.
func NewFromConfig(cfg *config.Config, repo *database.Repository, opts Options) *Orchestrator {
	local := loader.NewLocalLoader(cfg.Sources.DataDir)

	var remote RemoteSource
	if !opts.SkipRemote {
		remote = loader.NewClient(loader.ClientConfig{
			ReferenceURL: cfg.Sources.ReferenceURL,
			PokedexURL:   cfg.Sources.PokedexURL,
			Timeout:      cfg.Sources.RequestTimeout,
			RequestDelay: cfg.Sources.RequestDelay,
		})
	}

	return NewOrchestrator(repo, local, remote, opts)
}
