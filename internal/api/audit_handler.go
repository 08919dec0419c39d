package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/account-compliance-api/internal/config"
	"github.com/account-compliance-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditHandler handles upload and report endpoints
type AuditHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "audit").Logger(),
	}
}

// CreateAudit handles POST /v1/audits
// Accepts a multipart upload of the directory export in field "file"
func (h *AuditHandler) CreateAudit(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file upload is required", "message": "send the export as multipart field 'file'"})
		return
	}
	defer file.Close()

	// Validate file size
	if header.Size > h.cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "file too large",
			"message": fmt.Sprintf("max size is %d MB", h.cfg.Upload.MaxUploadSize/(1024*1024)),
		})
		return
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type", "message": "upload a .json export"})
		return
	}

	report, err := h.services.Audit.CreateSession(ctx, file, header.Filename)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("session_id", report.SessionID).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Upload accepted")

	c.JSON(http.StatusCreated, report)
}

// GetReport handles GET /v1/audits/:id
func (h *AuditHandler) GetReport(c *gin.Context) {
	report, err := h.services.Audit.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteAudit handles DELETE /v1/audits/:id
func (h *AuditHandler) DeleteAudit(c *gin.Context) {
	if err := h.services.Audit.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAnomalies handles GET /v1/audits/:id/anomalies
func (h *AuditHandler) GetAnomalies(c *gin.Context) {
	id := c.Param("id")

	anomalies, err := h.services.Audit.GetAnomalies(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// Determine format from query param
	format := c.Query("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "json":
		c.JSON(http.StatusOK, gin.H{
			"session_id":    id,
			"anomaly_count": len(anomalies),
			"anomalies":     anomalies,
		})
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=anomalies_%s.csv", id))
		writer := csv.NewWriter(c.Writer)
		writer.Write([]string{"record", "field", "message", "value"})
		for _, a := range anomalies {
			value := ""
			if a.Value != nil {
				value = fmt.Sprintf("%v", a.Value)
			}
			writer.Write([]string{strconv.Itoa(a.Index), a.Field, a.Message, value})
		}
		writer.Flush()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format", "message": "format must be one of: json, csv"})
	}
}
