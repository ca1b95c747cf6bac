package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/palemoky/pokemon-data-api/internal/database"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

// DeckHandler handles theme deck requests
type DeckHandler struct {
	repo *database.Repository
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(repo *database.Repository) *DeckHandler {
	return &DeckHandler{repo: repo}
}

// ListDecks returns all theme decks
func (h *DeckHandler) ListDecks(c *gin.Context) {
	decks, err := h.repo.ListDecks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, "decks", record.DecksFromRows(decks))
}
