package handler

import (
	"net/http"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves operator overrides for stuck transactions
type AdminHandler struct {
	finalizer *reconcile.AdminFinalizer
	logger    coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(finalizer *reconcile.AdminFinalizer, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{finalizer: finalizer, logger: logger}
}

// PatchStatus handles the PATCH /admin/transactions/:reference/status endpoint
func (h *AdminHandler) PatchStatus(c *gin.Context) {
	reference := c.Param("reference")

	var req dto.AdminStatusPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.finalizer.PatchStatus(c.Request.Context(), reference, entity.TransactionStatus(req.Status), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference": reference,
		"status":    req.Status,
	})
}
