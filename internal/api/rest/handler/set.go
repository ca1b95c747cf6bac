package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// SetHandler handles set requests
type SetHandler struct {
	repo *database.Repository
}

// NewSetHandler creates a new set handler
func NewSetHandler(repo *database.Repository) *SetHandler {
	return &SetHandler{repo: repo}
}

// ListSets returns all sets ordered by release date
func (h *SetHandler) ListSets(c *gin.Context) {
	sets, err := h.repo.ListSets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sets": record.SetsFromRows(sets)})
}
