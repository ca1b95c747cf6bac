package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/palemoky/pokemon-data-api/internal/database"
	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/logger"
)

// HealthHandler checks the store and reports the card count. An unreachable
// store is answered with 503 and an UNAVAILABLE error next to the status fields.
func HealthHandler(db *database.DB, repo *database.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			unhealthy(c, "disconnected", err)
			return
		}

		cards, err := repo.CountCards(c.Request.Context())
		if err != nil {
			unhealthy(c, "error", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
			"cards":    cards,
		})
	}
}

func unhealthy(c *gin.Context, state string, err error) {
	logger.Warn("Health check failed", zap.String("database", state), zap.Error(err))

	apiErr := apperrors.ErrUnavailable
	c.AbortWithStatusJSON(apiErr.Status(), gin.H{
		"status":   "unhealthy",
		"database": state,
		"cards":    0,
		"error":    apiErr,
	})
}

// StatsHandler returns the row count of every table
func StatsHandler(repo *database.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.GetStatistics(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
