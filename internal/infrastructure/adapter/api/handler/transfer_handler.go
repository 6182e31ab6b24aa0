package handler

import (
	"net/http"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/giftcard"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/transfer"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TransferHandler serves internal balance moves and gift card redemption
type TransferHandler struct {
	transfers *transfer.Engine
	redeemer  *giftcard.Redeemer
	logger    coreport.Logger
}

// NewTransferHandler creates a new transfer handler instance
func NewTransferHandler(transfers *transfer.Engine, redeemer *giftcard.Redeemer, logger coreport.Logger) *TransferHandler {
	return &TransferHandler{transfers: transfers, redeemer: redeemer, logger: logger}
}

// RewardToWallet handles the POST /transfer/reward-to-wallet endpoint
func (h *TransferHandler) RewardToWallet(c *gin.Context) {
	var req dto.RewardToWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	result, err := h.transfers.RewardToWallet(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Reference: result.Reference,
		Balance:   result.Balance,
		Reward:    result.Reward,
	})
}

// WalletToWallet handles the POST /transfer/wallet-to-wallet endpoint
func (h *TransferHandler) WalletToWallet(c *gin.Context) {
	var req dto.WalletToWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	result, err := h.transfers.WalletToWallet(c.Request.Context(), userID, req.RecipientEmail, req.RecipientName, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Reference: result.Reference,
		Balance:   result.Balance,
	})
}

// RedeemGiftCard handles the POST /giftcard/redeem endpoint
func (h *TransferHandler) RedeemGiftCard(c *gin.Context) {
	var req dto.GiftCardRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := middleware.AuthenticatedUserID(c)
	result, err := h.redeemer.Redeem(c.Request.Context(), userID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GiftCardRedeemResponse{
		Reference: result.Reference,
		Amount:    result.Amount,
		Balance:   result.Balance,
	})
}
