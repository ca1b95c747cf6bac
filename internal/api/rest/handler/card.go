package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/helpers"
	"github.com/palemoky/pokemon-data-api/internal/search"
)

// CardHandler handles card listing and filtering
type CardHandler struct {
	engine *search.Engine
}

// NewCardHandler creates a new card handler
func NewCardHandler(engine *search.Engine) *CardHandler {
	return &CardHandler{engine: engine}
}

// ListCards returns every card enriched with its set
func (h *CardHandler) ListCards(c *gin.Context) {
	cards, err := h.engine.ListCards(c.Request.Context(), search.Filter{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// maxFilterValues caps each comma-separated filter group.
const maxFilterValues = 100

// FilterCards returns the cards matching the query filters.
// Each of ?types=&subtypes=&years=&sets=&rarities= takes a comma-separated list.
func (h *CardHandler) FilterCards(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	cards, err := h.engine.ListCards(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cards":   cards,
		"count":   len(cards),
		"filters": filter,
	})
}

func parseFilter(c *gin.Context) (search.Filter, error) {
	groups := map[string][]string{}
	for _, name := range []string{"types", "subtypes", "years", "sets", "rarities"} {
		values := helpers.ParseList(c.Query(name))
		if len(values) > maxFilterValues {
			return search.Filter{}, apperrors.InvalidRequest("Too many %s: at most %d values are allowed", name, maxFilterValues)
		}
		groups[name] = values
	}

	return search.Filter{
		Types:    groups["types"],
		Subtypes: groups["subtypes"],
		Years:    groups["years"],
		Sets:     groups["sets"],
		Rarities: groups["rarities"],
	}, nil
}
