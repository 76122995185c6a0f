package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/service/factory"
)

// FactoryHandler exposes the factory records over JSON.
type FactoryHandler struct {
	svc    *factory.Service
	logger *zap.Logger
}

// NewFactoryHandler constructs the HTTP handler adapter.
func NewFactoryHandler(svc *factory.Service, logger *zap.Logger) *FactoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FactoryHandler{svc: svc, logger: logger}
}

// Stocks lists the raw stock table.
func (h *FactoryHandler) Stocks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stocks())
}

// ReceiveStock books delivered bags.
func (h *FactoryHandler) ReceiveStock(c *gin.Context) {
	var d factory.StockReceiptDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	entry, err := h.svc.ReceiveStock(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// SetStockCount reconciles a stock row with a physical count.
func (h *FactoryHandler) SetStockCount(c *gin.Context) {
	var d factory.StockCountDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	entry, logged, err := h.svc.SetStockCount(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !logged {
		c.JSON(http.StatusOK, gin.H{"logged": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged": true, "log": entry})
}

// WarehouseLogs lists the stock change log.
func (h *FactoryHandler) WarehouseLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.WarehouseLogs())
}

// DeleteWarehouseLog removes a log entry.
func (h *FactoryHandler) DeleteWarehouseLog(c *gin.Context) {
	if err := h.svc.DeleteWarehouseLog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Models lists the catalogue.
func (h *FactoryHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Models())
}

// Model returns one model.
func (h *FactoryHandler) Model(c *gin.Context) {
	m, err := h.svc.Model(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// CreateModel adds a model.
func (h *FactoryHandler) CreateModel(c *gin.Context) {
	var d factory.ModelDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	m, err := h.svc.CreateModel(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateModel edits a model.
func (h *FactoryHandler) UpdateModel(c *gin.Context) {
	var d factory.ModelDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	m, err := h.svc.UpdateModel(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteModel removes an unused model.
func (h *FactoryHandler) DeleteModel(c *gin.Context) {
	if err := h.svc.DeleteModel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ModelHistory lists the production of one model.
func (h *FactoryHandler) ModelHistory(c *gin.Context) {
	history, err := h.svc.ModelHistory(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// SalesAvailability lists sellable units per machine and model.
func (h *FactoryHandler) SalesAvailability(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.SalesAvailability())
}
