package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// Export handles GET /v1/audits/:id/export?format=csv|xlsx
// Writes the rows visible under the session's current filter
func (h *ExportHandler) Export(c *gin.Context) {
	id := c.Param("id")

	format := c.Query("format")
	if format == "" {
		format = audit.FormatCSV
	}
	if format != audit.FormatCSV && format != audit.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format", "message": "format must be one of: csv, xlsx"})
		return
	}

	// Buffered so a missing session still gets a JSON error
	var buf bytes.Buffer
	if err := h.services.Export.Export(c.Request.Context(), id, &buf, format); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=cuentas_%s.%s", id, format))
	c.Data(http.StatusOK, audit.ContentType(format), buf.Bytes())
}
