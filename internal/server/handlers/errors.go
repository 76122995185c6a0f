package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/domain/models"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *models.ValidationError
		stockErr      *models.InsufficientStockError
		notFoundErr   *models.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"field":   validationErr.Field,
			"reason":  validationErr.Reason,
			"message": validationErr.Error(),
		})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient_stock",
			"kind":      stockErr.Kind,
			"key":       stockErr.Key,
			"required":  stockErr.Required,
			"available": stockErr.Available,
			"shortfall": stockErr.Shortfall(),
			"message":   stockErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"entity":  notFoundErr.Entity,
			"id":      notFoundErr.ID,
			"message": notFoundErr.Error(),
		})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "internal error"})
	}
}

// bindJSON decodes the body and answers 400 when it cannot.
func bindJSON(c *gin.Context, logger *zap.Logger, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return false
	}
	return true
}

// roleParam parses the :role path segment.
func roleParam(c *gin.Context) (models.Role, bool) {
	role, err := models.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "entity": "role", "id": c.Param("role"), "message": err.Error()})
		return "", false
	}
	return role, true
}
