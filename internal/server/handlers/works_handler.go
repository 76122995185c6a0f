package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/factory/internal/ledger"
	"github.com/mamadbah2/factory/internal/service/factory"
)

// clampsBody reports a committed edit or delete with any counters that were
// stopped at zero.
func clampsBody(key string, value any, clamps []ledger.Clamp) gin.H {
	if clamps == nil {
		clamps = []ledger.Clamp{}
	}
	return gin.H{key: value, "clamps": clamps}
}

// MachineWorks lists production runs.
func (h *FactoryHandler) MachineWorks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.MachineWorks())
}

// MachineWork returns one production run.
func (h *FactoryHandler) MachineWork(c *gin.Context) {
	w, err := h.svc.MachineWork(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// CreateMachineWork books a production run.
func (h *FactoryHandler) CreateMachineWork(c *gin.Context) {
	var d factory.MachineWorkDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	w, err := h.svc.CreateMachineWork(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// UpdateMachineWork replaces a production run.
func (h *FactoryHandler) UpdateMachineWork(c *gin.Context) {
	var d factory.MachineWorkDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	w, clamps, err := h.svc.UpdateMachineWork(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("machineWork", w, clamps))
}

// DeleteMachineWork removes a production run.
func (h *FactoryHandler) DeleteMachineWork(c *gin.Context) {
	clamps, err := h.svc.DeleteMachineWork(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", c.Param("id"), clamps))
}

// DeleteMachineWorks removes several production runs.
func (h *FactoryHandler) DeleteMachineWorks(c *gin.Context) {
	var body factory.IDList
	if !bindJSON(c, h.logger, &body) {
		return
	}
	clamps, err := h.svc.DeleteMachineWorks(c.Request.Context(), body.IDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", body.IDs, clamps))
}

// ProcessingWorks lists finishing batches.
func (h *FactoryHandler) ProcessingWorks(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ProcessingWorks())
}

// ProcessingWork returns one finishing batch.
func (h *FactoryHandler) ProcessingWork(c *gin.Context) {
	w, err := h.svc.ProcessingWork(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// CreateProcessingWork books a finishing batch.
func (h *FactoryHandler) CreateProcessingWork(c *gin.Context) {
	var d factory.ProcessingWorkDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	w, err := h.svc.CreateProcessingWork(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// UpdateProcessingWork replaces a finishing batch.
func (h *FactoryHandler) UpdateProcessingWork(c *gin.Context) {
	var d factory.ProcessingWorkDraft
	if !bindJSON(c, h.logger, &d) {
		return
	}
	w, clamps, err := h.svc.UpdateProcessingWork(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("processingWork", w, clamps))
}

// DeleteProcessingWork removes a finishing batch.
func (h *FactoryHandler) DeleteProcessingWork(c *gin.Context) {
	clamps, err := h.svc.DeleteProcessingWork(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, clampsBody("deleted", c.Param("id"), clamps))
}
