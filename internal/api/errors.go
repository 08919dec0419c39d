package api

import (
	"errors"
	"net/http"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps service errors onto status codes and the
// {error, message} body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case audit.IsInputError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid input", "message": err.Error()})
	case errors.Is(err, repository.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found", "message": "unknown or expired session id"})
	case errors.Is(err, repository.ErrSessionLimit):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session limit reached", "message": err.Error()})
	case errors.Is(err, audit.ErrInvalidCategory), errors.Is(err, audit.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter event", "message": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "message": "request could not be completed"})
	}
}
