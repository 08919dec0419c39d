package api

import (
	"net/http"

	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/service"
	"github.com/account-compliance-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FilterHandler handles filter state transitions
type FilterHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewFilterHandler creates a new FilterHandler
func NewFilterHandler(services *service.Services, v *validation.Validator, log zerolog.Logger) *FilterHandler {
	return &FilterHandler{
		services:  services,
		validator: v,
		log:       log.With().Str("handler", "filter").Logger(),
	}
}

// ApplyFilter handles POST /v1/audits/:id/filter
func (h *FilterHandler) ApplyFilter(c *gin.Context) {
	var event models.FilterEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	if errs := h.validator.Validate(event); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid filter event",
			"message": validation.Summarize(errs),
			"details": errs,
		})
		return
	}

	report, err := h.services.Filter.ApplyEvent(c.Request.Context(), c.Param("id"), event)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
