package reconcile

import (
	"context"
	"fmt"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
)

// AdminFinalizer lets an operator override a stuck pending transaction. The
// ledger effect depends on when the transaction type moves money:
//
//   - fund pending -> success: additive credit (the mirror of compensation)
//   - withdraw pending -> success: the deferred debit is applied, guarded
//   - withdraw/fund pending -> failed: no money had moved, no compensation
//   - spend pending -> failed: compensate the up-front debit
//   - spend pending -> success: the debit stands, status only
type AdminFinalizer struct {
	ledger       persistence.LedgerRepository
	transactions persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAdminFinalizer creates an admin finalizer.
func NewAdminFinalizer(
	ledger persistence.LedgerRepository,
	transactions persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *AdminFinalizer {
	return &AdminFinalizer{
		ledger:       ledger,
		transactions: transactions,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// PatchStatus flips a pending transaction to the given terminal status with
// the matching ledger effect. Idempotent: a transaction that is already
// terminal returns ErrTerminalTransaction and nothing changes.
func (a *AdminFinalizer) PatchStatus(ctx context.Context, reference string, target entity.TransactionStatus, note string) error {
	if target != entity.StatusSuccess && target != entity.StatusFailed {
		return fmt.Errorf("%w: target status must be terminal, got %q", errs.ErrValidation, target)
	}

	txn, err := a.transactions.GetByReference(ctx, reference)
	if err != nil {
		return err
	}
	if txn.IsTerminal() {
		return errs.ErrTerminalTransaction
	}

	fin := persistence.Finalization{
		Status:       target,
		ErrorMessage: note,
		ProcessedAt:  a.timeProvider.Now(),
	}

	var won bool
	switch {
	case target == entity.StatusSuccess && txn.Type == entity.TypeFund:
		won, err = a.ledger.CreditAndFinalize(ctx, reference, txn.AmountKobo, fin)
	case target == entity.StatusSuccess && txn.Type == entity.TypeWithdraw:
		won, err = a.ledger.DebitAndFinalize(ctx, reference, txn.AmountKobo, fin)
	case target == entity.StatusFailed && txn.IsDebit():
		won, err = a.ledger.RefundAndFinalize(ctx, reference, txn.AmountKobo, fin)
	default:
		won, err = a.transactions.Finalize(ctx, reference, fin)
	}
	if err != nil {
		return err
	}
	if !won {
		return errs.ErrTerminalTransaction
	}

	a.logger.Info("Operator finalized transaction", map[string]any{
		"reference": reference,
		"type":      txn.Type,
		"status":    target,
		"note":      note,
	})
	return nil
}
