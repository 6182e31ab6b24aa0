package persistence

import (
	"context"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
)

// LedgerRepository is the durable record of user balances. Every balance
// mutation is a single conditional atomic update at the store level, never an
// application-side read-modify-write: two concurrent debits for the same user
// must be arbitrated by the database, with the loser seeing
// ErrInsufficientFunds and no side effects.
type LedgerRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: if no user with the given ID exists
	// - ErrDatabase: if the store operation fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a user by email (lowercased)
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabase
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrConstraintViolation: if the email is already taken
	// - ErrDatabase
	Create(ctx context.Context, user *entity.User) error

	// SpendAndRecord applies a conditional debit of txn.AmountKobo to
	// txn.UserID and inserts txn as a pending row, all in one database
	// transaction so a concurrent read can never observe the debit without
	// the matching transaction row or vice versa. On success txn.ID,
	// txn.BalanceBefore and txn.BalanceAfter are filled in.
	//
	// Possible errors:
	// - ErrInsufficientFunds: the sufficiency guard failed (or lost the race)
	// - ErrUserNotFound, ErrDuplicateReference, ErrDatabase
	SpendAndRecord(ctx context.Context, txn *entity.Transaction) error

	// Record inserts txn without touching any balance. Used for fund and
	// withdraw requests, which move money only on confirmed success.
	// txn.BalanceBefore/BalanceAfter are snapshotted from the current balance.
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDuplicateReference, ErrDatabase
	Record(ctx context.Context, txn *entity.Transaction) error

	// RefundAndFinalize flips the referenced transaction pending -> failed and,
	// only when that conditional update wins, credits amountKobo back to the
	// user in the same database transaction. Returns won=false (and no balance
	// change) when the transaction was already terminal, which makes retried
	// compensation a no-op.
	//
	// Possible errors:
	// - ErrTransactionNotFound, ErrDatabase
	RefundAndFinalize(ctx context.Context, reference string, amountKobo int64, fin Finalization) (won bool, err error)

	// CreditAndFinalize flips the referenced transaction pending -> success
	// and, only when that conditional update wins, credits amountKobo to the
	// user in the same database transaction. Duplicate invocations for the
	// same reference credit at most once.
	//
	// Possible errors:
	// - ErrTransactionNotFound, ErrDatabase
	CreditAndFinalize(ctx context.Context, reference string, amountKobo int64, fin Finalization) (won bool, err error)

	// DebitAndFinalize flips the referenced transaction pending -> success and,
	// only when that wins, applies a conditional debit of amountKobo. Used when
	// an operator approves a withdraw, whose debit is deferred to success.
	//
	// Possible errors:
	// - ErrInsufficientFunds: guard failed, the transaction is left pending
	// - ErrTransactionNotFound, ErrDatabase
	DebitAndFinalize(ctx context.Context, reference string, amountKobo int64, fin Finalization) (won bool, err error)

	// ConvertReward atomically moves amountKobo from the user's reward bucket
	// to the spendable balance, guarded by reward >= amount, and records txn
	// (status success, sender == receiver) in the same database transaction.
	//
	// Possible errors:
	// - ErrInsufficientReward, ErrUserNotFound, ErrDuplicateReference, ErrDatabase
	ConvertReward(ctx context.Context, txn *entity.Transaction) error

	// TransferWallet atomically debits txn.AmountKobo from txn.UserID (guarded
	// by balance >= amount) and credits it to *txn.CounterpartyID, recording
	// txn with status success. Both legs are local and unconditional once the
	// guard passes, so there is no pending state.
	//
	// Possible errors:
	// - ErrInsufficientFunds, ErrUserNotFound, ErrDuplicateReference, ErrDatabase
	TransferWallet(ctx context.Context, txn *entity.Transaction) error
}
