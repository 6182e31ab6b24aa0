package entity

import (
	"fmt"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
)

// TransactionType categorizes what a ledger movement paid for.
type TransactionType string

// Transaction types
const (
	TypeFund           TransactionType = "fund"
	TypeAirtime        TransactionType = "airtime"
	TypeData           TransactionType = "data"
	TypeCableTV        TransactionType = "cabletv"
	TypeElectricity    TransactionType = "electricity"
	TypeBetting        TransactionType = "betting"
	TypeSMS            TransactionType = "sms"
	TypeWithdraw       TransactionType = "withdraw"
	TypeRewardToWallet TransactionType = "reward-to-wallet"
	TypeWalletTransfer TransactionType = "wallet-transfer"
	TypeGiftCard       TransactionType = "giftcard"
)

// TransactionStatus defines possible status values for a transaction.
// Once a transaction reaches success or failed it never changes again.
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending TransactionStatus = "pending"
	StatusSuccess TransactionStatus = "success"
	StatusFailed  TransactionStatus = "failed"
)

// Transaction represents a ledger movement correlated with an external
// provider operation by its Reference. BalanceBefore/BalanceAfter snapshot the
// ledger state immediately bracketing this transaction's effect.
type Transaction struct {
	ID             uint64
	Reference      string // unique idempotency/correlation key
	UserID         uint64
	CounterpartyID *uint64 // set for wallet-to-wallet transfers
	Type           TransactionType
	Status         TransactionStatus
	AmountKobo     int64  // what the user is charged or credited
	APIAmountKobo  *int64 // what the provider actually billed, audit only
	BalanceBefore  int64
	BalanceAfter   int64
	Description    string
	Network        string
	Plan           string
	Phone          string
	ProviderRef    string
	APIResponse    string // opaque provider payload kept for audit
	ErrorMessage   string
	CreatedAt      time.Time
	ProcessedAt    *time.Time
}

// NewTransaction creates a pending transaction with basic validation.
func NewTransaction(
	userID uint64,
	reference string,
	txType TransactionType,
	amountKobo int64,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if reference == "" {
		return nil, errs.ErrInvalidReference
	}
	if !isValidType(txType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}
	if amountKobo <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		UserID:     userID,
		Reference:  reference,
		Type:       txType,
		Status:     StatusPending,
		AmountKobo: amountKobo,
		CreatedAt:  timeProvider.Now(),
	}, nil
}

// IsTerminal reports whether the transaction has reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusSuccess || t.Status == StatusFailed
}

// IsDebit reports whether this transaction type removes spendable balance
// up-front. Fund and withdraw transactions move money only on confirmed
// success, every spend type debits before the provider call.
func (t *Transaction) IsDebit() bool {
	switch t.Type {
	case TypeFund, TypeWithdraw, TypeGiftCard:
		return false
	default:
		return true
	}
}

func isValidType(tt TransactionType) bool {
	switch tt {
	case TypeFund, TypeAirtime, TypeData, TypeCableTV, TypeElectricity,
		TypeBetting, TypeSMS, TypeWithdraw, TypeRewardToWallet,
		TypeWalletTransfer, TypeGiftCard:
		return true
	}
	return false
}
