package persistence

import (
	"context"
	"time"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
)

// Finalization carries the fields written when a pending transaction reaches
// a terminal state.
type Finalization struct {
	Status        entity.TransactionStatus
	ProviderRef   string
	APIAmountKobo *int64
	APIResponse   string
	ErrorMessage  string
	ProcessedAt   time.Time
}

// TransactionRepository stores transaction records. References are unique;
// terminal transitions are conditional updates (WHERE status = 'pending') so
// that concurrent finalizers for the same reference are mutually exclusive:
// whichever wins applies, the loser's update is a no-op.
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrDuplicateReference: a transaction with the same reference exists
	// - ErrUserNotFound: the referenced user does not exist
	// - ErrDatabase
	Create(ctx context.Context, txn *entity.Transaction) error

	// GetByReference retrieves a transaction by its correlation reference
	//
	// Possible errors:
	// - ErrTransactionNotFound, ErrDatabase
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// Finalize applies fin to the referenced transaction only if it is still
	// pending. Returns won=false when the transaction was already terminal.
	// Once terminal, status, balance_before and balance_after never change.
	//
	// Possible errors:
	// - ErrTransactionNotFound, ErrDatabase
	Finalize(ctx context.Context, reference string, fin Finalization) (won bool, err error)

	// AttachProviderInfo records the provider reference and raw payload on a
	// transaction that is still pending, so an asynchronous callback can be
	// correlated later. A no-op on terminal transactions.
	//
	// Possible errors:
	// - ErrDatabase
	AttachProviderInfo(ctx context.Context, reference, providerRef, apiResponse string) error

	// ListByUser returns a page of the user's transactions, newest first
	//
	// Possible errors:
	// - ErrDatabase
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]entity.Transaction, error)
}

// CallbackEventRepository persists every received provider callback payload
// for audit, regardless of whether it parses or matches a transaction.
type CallbackEventRepository interface {
	Append(ctx context.Context, provider, reference string, payload []byte) error
}
