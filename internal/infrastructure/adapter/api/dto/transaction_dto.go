package dto

import (
	"time"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
)

// TransactionItem is one entry in a user's transaction history
type TransactionItem struct {
	Reference   string     `json:"reference"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Amount      string     `json:"amount"`
	Description string     `json:"description,omitempty"`
	Network     string     `json:"network,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// TransactionListResponse is a page of transaction history
type TransactionListResponse struct {
	Transactions []TransactionItem `json:"transactions"`
	Limit        int               `json:"limit"`
	Offset       int               `json:"offset"`
}

// NewTransactionItem maps a domain transaction into its API shape
func NewTransactionItem(txn *entity.Transaction) TransactionItem {
	return TransactionItem{
		Reference:   txn.Reference,
		Type:        string(txn.Type),
		Status:      string(txn.Status),
		Amount:      entity.KoboToString(txn.AmountKobo),
		Description: txn.Description,
		Network:     txn.Network,
		Phone:       txn.Phone,
		CreatedAt:   txn.CreatedAt,
		ProcessedAt: txn.ProcessedAt,
	}
}

// AdminStatusPatchRequest is an operator override for a stuck transaction
type AdminStatusPatchRequest struct {
	Status string `json:"status" binding:"required,oneof=success failed"`
	Note   string `json:"note"`
}
