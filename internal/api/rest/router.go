package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/pokemon-data-api/internal/api/middleware"
	"github.com/palemoky/pokemon-data-api/internal/api/rest/handler"
	"github.com/palemoky/pokemon-data-api/internal/config"
	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/search"
)

// SetupRouter sets up the Gin router with all routes
func SetupRouter(cfg *config.Config, db *database.DB) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(middleware.Logging())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware())
	}

	repo := database.NewRepository(db)
	engine := search.NewEngine(db)

	router.GET("/health", handler.HealthHandler(db, repo))

	v2 := router.Group("/v2")
	{
		v2.GET("/stats", handler.StatsHandler(repo))

		// Card routes
		cardHandler := handler.NewCardHandler(engine)
		v2.GET("/cards", cardHandler.ListCards)
		v2.GET("/cards/filter", cardHandler.FilterCards)

		v2.GET("/sets", handler.NewSetHandler(repo).ListSets)
		v2.GET("/decks", handler.NewDeckHandler(repo).ListDecks)

		// Grouping and reference datasets
		pokemonHandler := handler.NewPokemonHandler(engine, repo)
		v2.GET("/pokemon", pokemonHandler.GroupCards)
		v2.GET("/pokemon/types", pokemonHandler.ListTypes)
		v2.GET("/pokemon/moves", pokemonHandler.ListMoves)
		v2.GET("/pokemon/abilities", pokemonHandler.ListAbilities)
		v2.GET("/pokemon/species", pokemonHandler.ListSpecies)

		// Pokedex routes
		pokedexHandler := handler.NewPokedexHandler(repo)
		v2.GET("/pokedexes", pokedexHandler.ListPokedexes)
		v2.GET("/pokedexes/:id", pokedexHandler.GetPokedex)
		v2.GET("/pokedexes/:id/entries", pokedexHandler.ListEntries)
	}

	return router
}
