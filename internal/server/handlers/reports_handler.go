package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/service/reporting"
)

// ReportsHandler serves summaries and triggers exports.
type ReportsHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportsHandler constructs the HTTP handler adapter.
func NewReportsHandler(svc *reporting.Service, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{svc: svc, logger: logger}
}

// Summary returns the current summary as JSON, or as text with ?format=text.
func (h *ReportsHandler) Summary(c *gin.Context) {
	sum := h.svc.Summary()
	if c.Query("format") == "text" {
		c.String(http.StatusOK, reporting.SummaryText(sum))
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Audit lists stock rows the warehouse log does not explain.
func (h *ReportsHandler) Audit(c *gin.Context) {
	discrepancies := h.svc.Audit()
	if discrepancies == nil {
		discrepancies = []ledger.Discrepancy{}
	}
	c.JSON(http.StatusOK, gin.H{"ok": len(discrepancies) == 0, "discrepancies": discrepancies})
}

// Export runs the daily spreadsheet export now.
func (h *ReportsHandler) Export(c *gin.Context) {
	exported, err := h.svc.ExportDaily(c.Request.Context())
	if errors.Is(err, reporting.ErrExportDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export_disabled", "message": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "export_failed", "message": "unable to write the spreadsheet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": exported})
}
