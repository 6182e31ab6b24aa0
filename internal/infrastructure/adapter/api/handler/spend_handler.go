package handler

import (
	"net/http"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
)

// SpendHandler serves every spend product through the reconciliation engine
type SpendHandler struct {
	engine *reconcile.Engine
	logger coreport.Logger
}

// NewSpendHandler creates a new spend handler instance
func NewSpendHandler(engine *reconcile.Engine, logger coreport.Logger) *SpendHandler {
	return &SpendHandler{engine: engine, logger: logger}
}

// Spend returns the handler for one spend product line
func (h *SpendHandler) Spend(product entity.TransactionType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SpendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		userID := middleware.AuthenticatedUserID(c)
		result, err := h.engine.Spend(c.Request.Context(), userID, reconcile.SpendRequest{
			Product:     product,
			Recipient:   req.Recipient,
			Network:     req.Network,
			PlanCode:    req.PlanCode,
			Amount:      req.Amount,
			Message:     req.Message,
			Reference:   req.Reference,
			Description: req.Description,
		})
		if err != nil && result == nil {
			respondError(c, err)
			return
		}

		// A rejected purchase still answers 200: the refund already happened
		// and the body carries the terminal state.
		metrics.PurchasesTotal.WithLabelValues(string(product), string(result.Status)).Inc()
		if result.Status == entity.StatusFailed {
			metrics.RefundsTotal.Inc()
		}

		c.JSON(http.StatusOK, dto.SpendResponse{
			Reference:   result.Reference,
			Status:      string(result.Status),
			Balance:     result.Balance,
			Message:     result.Message,
			AlreadySeen: result.AlreadySeen,
		})
	}
}
