package giftcard

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

// Redeemer credits gift card codes into wallets. A code redeems at most once,
// arbitrated by the store's conditional update, and only before its expiry.
type Redeemer struct {
	cards        persistence.GiftCardRepository
	ledger       persistence.LedgerRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewRedeemer creates a gift card redeemer.
func NewRedeemer(
	cards persistence.GiftCardRepository,
	ledger persistence.LedgerRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Redeemer {
	return &Redeemer{cards: cards, ledger: ledger, timeProvider: timeProvider, logger: logger}
}

// Result reports a successful redemption.
type Result struct {
	Reference string
	Amount    string
	Balance   string
}

// Redeem credits the card's amount to the user. Concurrent redemptions of the
// same code resolve to exactly one winner.
func (r *Redeemer) Redeem(ctx context.Context, userID uint64, code string) (*Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: gift card code is required", errs.ErrValidation)
	}

	card, err := r.cards.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	if card.IsRedeemed {
		return nil, errs.ErrGiftCardRedeemed
	}
	if card.Expired(now) {
		return nil, errs.ErrGiftCardExpired
	}

	txn, err := entity.NewTransaction(userID, reconcile.NewReference(), entity.TypeGiftCard, card.AmountKobo, r.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.Description = "gift card redemption"

	// The conditional redeem inside the store is the binding check; the reads
	// above only produce friendlier errors.
	if err := r.cards.RedeemAndCredit(ctx, code, now, txn); err != nil {
		return nil, err
	}

	user, err := r.ledger.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Gift card redeemed", map[string]any{
		"code":        code,
		"user_id":     userID,
		"amount_kobo": card.AmountKobo,
	})

	return &Result{
		Reference: txn.Reference,
		Amount:    entity.KoboToString(card.AmountKobo),
		Balance:   user.Balance(),
	}, nil
}
