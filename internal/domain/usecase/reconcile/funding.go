package reconcile

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
)

// FundingEngine runs the credit-confirm cycle for wallet top-ups. Unlike
// spends there is no provisional balance change: the funding provider is
// trusted to report final state via verify/callback, and the credit applies
// only at confirmed success, using the provider-confirmed amount.
type FundingEngine struct {
	ledger       persistence.LedgerRepository
	transactions persistence.TransactionRepository
	funding      gateway.FundingGateway
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewFundingEngine creates a funding engine.
func NewFundingEngine(
	ledger persistence.LedgerRepository,
	transactions persistence.TransactionRepository,
	funding gateway.FundingGateway,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *FundingEngine {
	return &FundingEngine{
		ledger:       ledger,
		transactions: transactions,
		funding:      funding,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// FundInitResult is returned when a card funding flow is started.
type FundInitResult struct {
	Reference        string
	AuthorizationURL string
}

// Initialize starts a card funding flow: a pending fund transaction with no
// balance change, plus the provider's hosted authorization URL.
func (f *FundingEngine) Initialize(ctx context.Context, userID uint64, amount string) (*FundInitResult, error) {
	amountKobo, err := entity.ParseAmountToKobo(amount)
	if err != nil {
		return nil, err
	}
	if amountKobo == 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}

	user, err := f.ledger.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := NewReference()
	txn, err := entity.NewTransaction(userID, reference, entity.TypeFund, amountKobo, f.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.Description = "wallet funding via card"

	if err := f.ledger.Record(ctx, txn); err != nil {
		return nil, err
	}

	authURL, err := f.funding.InitializeCardFunding(ctx, user.Email, amountKobo, reference)
	if err != nil {
		// Nothing was charged yet; close the record so it cannot be verified
		// into a credit later.
		if _, ferr := f.transactions.Finalize(ctx, reference, persistence.Finalization{
			Status:       entity.StatusFailed,
			ErrorMessage: "funding initialization failed",
			ProcessedAt:  f.timeProvider.Now(),
		}); ferr != nil {
			f.logger.Error("Failed to close unstartable funding transaction", map[string]any{
				"reference": reference,
				"error":     ferr.Error(),
			})
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}

	f.logger.Info("Funding initialized", map[string]any{
		"reference":   reference,
		"user_id":     userID,
		"amount_kobo": amountKobo,
	})

	return &FundInitResult{Reference: reference, AuthorizationURL: authURL}, nil
}

// VerifyResult reports the reconciled state of a funding reference.
type VerifyResult struct {
	Reference string
	Status    entity.TransactionStatus
	Balance   string // set when a credit was applied or already stood
}

// Verify fetches the authoritative provider status for a funding reference
// and reconciles the local transaction. Safe to call any number of times: the
// conditional pending -> success update guarantees at most one credit.
func (f *FundingEngine) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, errs.ErrInvalidReference
	}

	txn, err := f.transactions.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if txn.Type != entity.TypeFund {
		return nil, fmt.Errorf("%w: reference %s is not a funding transaction", errs.ErrValidation, reference)
	}
	if txn.IsTerminal() {
		// Duplicate verification: report the recorded outcome, touch nothing.
		return &VerifyResult{Reference: reference, Status: txn.Status, Balance: entity.KoboToString(txn.BalanceAfter)}, nil
	}

	verification, err := f.funding.VerifyCardFunding(ctx, reference)
	if err != nil {
		// Outcome unknown; stay pending and let a later verify resolve it.
		return nil, fmt.Errorf("%w: %s", errs.ErrGatewayUnavailable, err.Error())
	}

	switch verification.Status {
	case gateway.VerifySuccess:
		// Credit the provider-confirmed amount, not the requested one, so
		// partial or adjusted payments reconcile correctly.
		won, err := f.ledger.CreditAndFinalize(ctx, reference, verification.AmountKobo, persistence.Finalization{
			Status:      entity.StatusSuccess,
			APIResponse: verification.Raw,
			ProcessedAt: f.timeProvider.Now(),
		})
		if err != nil {
			return nil, err
		}
		if won {
			f.logger.Info("Funding credited", map[string]any{
				"reference":   reference,
				"user_id":     txn.UserID,
				"amount_kobo": verification.AmountKobo,
			})
		}
		updated, err := f.transactions.GetByReference(ctx, reference)
		if err != nil {
			return nil, err
		}
		return &VerifyResult{Reference: reference, Status: updated.Status, Balance: entity.KoboToString(updated.BalanceAfter)}, nil

	case gateway.VerifyFailed:
		if _, err := f.transactions.Finalize(ctx, reference, persistence.Finalization{
			Status:       entity.StatusFailed,
			APIResponse:  verification.Raw,
			ErrorMessage: "payment failed",
			ProcessedAt:  f.timeProvider.Now(),
		}); err != nil {
			return nil, err
		}
		return &VerifyResult{Reference: reference, Status: entity.StatusFailed}, nil

	default:
		return &VerifyResult{Reference: reference, Status: entity.StatusPending}, nil
	}
}

// RequestWithdraw records a withdrawal request. The debit is deferred until an
// operator approves it: a pending withdraw holds no funds, so flipping it to
// failed later needs no compensation.
func (f *FundingEngine) RequestWithdraw(ctx context.Context, userID uint64, amount, destination string) (*entity.Transaction, error) {
	amountKobo, err := entity.ParseAmountToKobo(amount)
	if err != nil {
		return nil, err
	}
	if amountKobo == 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}

	user, err := f.ledger.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Early sufficiency check for a clear error; the binding guard runs at
	// approval time inside the conditional debit.
	if !user.CanSpend(amountKobo) {
		return nil, errs.NewInsufficientFundsError(userID, amountKobo, user.BalanceKobo)
	}

	txn, err := entity.NewTransaction(userID, NewReference(), entity.TypeWithdraw, amountKobo, f.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.Description = "withdrawal to " + destination

	if err := f.ledger.Record(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}
