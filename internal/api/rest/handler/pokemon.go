package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/search"
)

// PokemonHandler serves the pokedex number grouping and the reference datasets
type PokemonHandler struct {
	engine *search.Engine
	repo   *database.Repository
}

// NewPokemonHandler creates a new pokemon handler
func NewPokemonHandler(engine *search.Engine, repo *database.Repository) *PokemonHandler {
	return &PokemonHandler{engine: engine, repo: repo}
}

// GroupCards returns the cards grouped by national pokedex number
func (h *PokemonHandler) GroupCards(c *gin.Context) {
	groups, err := h.engine.GroupCardsByReferenceNumber(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, "pokemon", groups)
}

// ListTypes returns the elemental types
func (h *PokemonHandler) ListTypes(c *gin.Context) {
	types, err := h.repo.ListTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "types", types)
}

// ListMoves returns the battle moves
func (h *PokemonHandler) ListMoves(c *gin.Context) {
	moves, err := h.repo.ListMoves(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "moves", moves)
}

// ListAbilities returns the abilities
func (h *PokemonHandler) ListAbilities(c *gin.Context) {
	abilities, err := h.repo.ListAbilities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "abilities", abilities)
}

// ListSpecies returns the species
func (h *PokemonHandler) ListSpecies(c *gin.Context) {
	species, err := h.repo.ListSpecies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "species", species)
}
