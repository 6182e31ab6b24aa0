package handler

import (
	"net/http"
	"strconv"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's wallet views
type UserHandler struct {
	ledger       persistence.LedgerRepository
	transactions persistence.TransactionRepository
	logger       coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	ledger persistence.LedgerRepository,
	transactions persistence.TransactionRepository,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{ledger: ledger, transactions: transactions, logger: logger}
}

// GetBalance handles the GET /user/balance endpoint
func (h *UserHandler) GetBalance(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	user, err := h.ledger.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting user balance", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  user.ID,
		Balance: user.Balance(),
		Reward:  user.Reward(),
	})
}

// ListTransactions handles the GET /transactions endpoint
func (h *UserHandler) ListTransactions(c *gin.Context) {
	userID := middleware.AuthenticatedUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactions.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.TransactionItem, 0, len(txns))
	for i := range txns {
		items = append(items, dto.NewTransactionItem(&txns[i]))
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: items,
		Limit:        limit,
		Offset:       offset,
	})
}
