package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/helpers"
	"github.com/palemoky/pokemon-data-api/internal/logger"
)

// parseID extracts a non-negative integer ID from a URL parameter.
// On failure it sends a 400 response and returns false.
func parseID(c *gin.Context, param string) (int, bool) {
	id, err := helpers.ParseID(c.Param(param))
	if err != nil {
		respondError(c, apperrors.InvalidID(param))
		return 0, false
	}
	return id, true
}

// respondError sends err as {"error": {code, message}}. Errors that are not
// an APIError are logged and reported as internal errors without their cause.
func respondError(c *gin.Context, err error) {
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) {
		logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		_ = c.Error(err)
		apiErr = apperrors.ErrInternal
	}
	c.AbortWithStatusJSON(apiErr.Status(), gin.H{"error": apiErr})
}

// respondList sends rows under key together with their count
func respondList[T any](c *gin.Context, key string, rows []T) {
	if rows == nil {
		rows = []T{}
	}
	c.JSON(http.StatusOK, gin.H{key: rows, "count": len(rows)})
}
