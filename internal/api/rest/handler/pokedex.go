package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/palemoky/pokemon-data-api/internal/database"
	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// PokedexHandler handles pokedex requests
type PokedexHandler struct {
	repo *database.Repository
}

// NewPokedexHandler creates a new pokedex handler
func NewPokedexHandler(repo *database.Repository) *PokedexHandler {
	return &PokedexHandler{repo: repo}
}

// ListPokedexes returns all pokedexes
func (h *PokedexHandler) ListPokedexes(c *gin.Context) {
	pokedexes, err := h.repo.ListPokedexes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, "pokedexes", pokedexes)
}

// GetPokedex returns one pokedex with its decoded descriptions and names and its ordered entries
func (h *PokedexHandler) GetPokedex(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	pokedex, err := h.repo.GetPokedex(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, apperrors.NotFound("Pokedex"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.repo.ListPokedexEntries(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record.PokedexFromRow(*pokedex, entries))
}

// ListEntries returns the entries of a pokedex ordered by entry number.
// An unknown pokedex has no entries.
func (h *PokedexHandler) ListEntries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.repo.ListPokedexEntries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":   entries,
		"count":     len(entries),
		"pokedexId": id,
	})
}
