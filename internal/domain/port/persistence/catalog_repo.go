package persistence

import (
	"context"
	"time"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
)

// PlanRepository resolves product plan codes to selling prices.
type PlanRepository interface {
	// GetActiveByCode returns the active plan for a product line and code
	//
	// Possible errors:
	// - ErrPlanNotFound: the code is unknown or the plan is inactive
	// - ErrDatabase
	GetActiveByCode(ctx context.Context, product entity.TransactionType, code string) (*entity.Plan, error)
}

// GiftCardRepository stores prepaid credit codes.
type GiftCardRepository interface {
	// GetByCode retrieves a gift card by its code
	//
	// Possible errors:
	// - ErrGiftCardNotFound, ErrDatabase
	GetByCode(ctx context.Context, code string) (*entity.GiftCard, error)

	// RedeemAndCredit marks the card redeemed (only while unredeemed and
	// unexpired), credits its amount to the user and records txn, all in one
	// database transaction. Losing the redeem race returns ErrGiftCardRedeemed
	// with no balance change.
	//
	// Possible errors:
	// - ErrGiftCardNotFound, ErrGiftCardRedeemed, ErrGiftCardExpired,
	//   ErrUserNotFound, ErrDuplicateReference, ErrDatabase
	RedeemAndCredit(ctx context.Context, code string, now time.Time, txn *entity.Transaction) error
}
