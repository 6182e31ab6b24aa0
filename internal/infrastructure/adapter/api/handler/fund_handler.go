package handler

import (
	"net/http"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// FundHandler serves wallet funding and withdrawal requests
type FundHandler struct {
	funding *reconcile.FundingEngine
	logger  coreport.Logger
}

// NewFundHandler creates a new fund handler instance
func NewFundHandler(funding *reconcile.FundingEngine, logger coreport.Logger) *FundHandler {
	return &FundHandler{funding: funding, logger: logger}
}

// Initialize handles the POST /fund endpoint
func (h *FundHandler) Initialize(c *gin.Context) {
	var req dto.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	result, err := h.funding.Initialize(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FundResponse{
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
	})
}

// Callback handles the GET /fund/callback endpoint the payment page returns
// to. The reference alone identifies the transaction; the status is fetched
// from the provider, never trusted from the query string.
func (h *FundHandler) Callback(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		reference = c.Query("trxref")
	}

	result, err := h.funding.Verify(c.Request.Context(), reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Reference: result.Reference,
		Status:    string(result.Status),
		Balance:   result.Balance,
	})
}

// Withdraw handles the POST /withdraw endpoint
func (h *FundHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	txn, err := h.funding.RequestWithdraw(c.Request.Context(), userID, req.Amount, req.Destination)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.WithdrawResponse{
		Reference: txn.Reference,
		Status:    string(txn.Status),
		Amount:    entity.KoboToString(txn.AmountKobo),
	})
}
