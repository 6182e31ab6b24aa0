package transfer

import (
	"context"
	"fmt"
	"strings"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
)

// Engine handles purely internal balance moves. No provider gateway is
// involved, so both legs commit atomically and the transaction is recorded as
// success immediately: there is no pending state to reconcile.
type Engine struct {
	ledger       persistence.LedgerRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewEngine creates a transfer engine.
func NewEngine(ledger persistence.LedgerRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Engine {
	return &Engine{ledger: ledger, timeProvider: timeProvider, logger: logger}
}

// Result reports a completed internal transfer.
type Result struct {
	Reference string
	Balance   string // sender's spendable balance after the move
	Reward    string // sender's reward balance after the move, reward conversions only
}

// RewardToWallet converts reward balance into spendable balance for the same
// user, guarded by reward >= amount.
func (e *Engine) RewardToWallet(ctx context.Context, userID uint64, amount string) (*Result, error) {
	amountKobo, err := entity.ParseAmountToKobo(amount)
	if err != nil {
		return nil, err
	}
	if amountKobo == 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}

	txn, err := entity.NewTransaction(userID, reconcile.NewReference(), entity.TypeRewardToWallet, amountKobo, e.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.CounterpartyID = &userID // sender == receiver by definition
	txn.Description = "reward converted to wallet balance"

	if err := e.ledger.ConvertReward(ctx, txn); err != nil {
		return nil, err
	}

	user, err := e.ledger.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Reward converted", map[string]any{
		"reference":   txn.Reference,
		"user_id":     userID,
		"amount_kobo": amountKobo,
	})

	return &Result{Reference: txn.Reference, Balance: user.Balance(), Reward: user.Reward()}, nil
}

// WalletToWallet moves spendable balance to another user resolved by email.
// The supplied recipient name must match the stored name (case and whitespace
// insensitive) so a typoed email cannot silently pay a stranger.
func (e *Engine) WalletToWallet(ctx context.Context, senderID uint64, recipientEmail, recipientName, amount string) (*Result, error) {
	amountKobo, err := entity.ParseAmountToKobo(amount)
	if err != nil {
		return nil, err
	}
	if amountKobo == 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}

	recipient, err := e.ledger.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(recipientEmail)))
	if err != nil {
		return nil, err
	}
	if !recipient.NameMatches(recipientName) {
		return nil, errs.ErrRecipientMismatch
	}
	if recipient.ID == senderID {
		return nil, fmt.Errorf("%w: cannot transfer to yourself", errs.ErrValidation)
	}

	txn, err := entity.NewTransaction(senderID, reconcile.NewReference(), entity.TypeWalletTransfer, amountKobo, e.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.CounterpartyID = &recipient.ID
	txn.Description = "wallet transfer to " + recipient.Email

	if err := e.ledger.TransferWallet(ctx, txn); err != nil {
		return nil, err
	}

	sender, err := e.ledger.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Wallet transfer completed", map[string]any{
		"reference":    txn.Reference,
		"sender_id":    senderID,
		"recipient_id": recipient.ID,
		"amount_kobo":  amountKobo,
	})

	return &Result{Reference: txn.Reference, Balance: sender.Balance()}, nil
}
