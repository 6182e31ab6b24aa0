package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/model"
)

// PlanRepository implements persistence.PlanRepository using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository instance
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetActiveByCode returns the active plan for a product line and code
func (r *PlanRepository) GetActiveByCode(ctx context.Context, product entity.TransactionType, code string) (*entity.Plan, error) {
	var planModel model.Plan
	err := r.db.WithContext(ctx).
		Where("product = ? AND code = ? AND active = ?", string(product), code, true).
		First(&planModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPlanNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	return planToEntity(&planModel), nil
}

// GiftCardRepository implements persistence.GiftCardRepository using GORM
type GiftCardRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewGiftCardRepository creates a new GiftCardRepository instance
func NewGiftCardRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *GiftCardRepository {
	return &GiftCardRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// GetByCode retrieves a gift card by its code
func (r *GiftCardRepository) GetByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	var cardModel model.GiftCard
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&cardModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrGiftCardNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	return giftCardToEntity(&cardModel), nil
}

// RedeemAndCredit marks the card redeemed, credits the user and records the
// transaction in one database transaction. The conditional UPDATE on
// is_redeemed = false arbitrates concurrent redemptions.
func (r *GiftCardRepository) RedeemAndCredit(ctx context.Context, code string, now time.Time, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.GiftCard{}).
			Where("code = ? AND is_redeemed = ? AND expires_at > ?", code, false, now).
			Updates(map[string]any{
				"is_redeemed": true,
				"redeemed_by": txn.UserID,
				"redeemed_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabase, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			var cardModel model.GiftCard
			if err := tx.Where("code = ?", code).First(&cardModel).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.ErrGiftCardNotFound
				}
				return fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
			}
			if cardModel.IsRedeemed {
				return errs.ErrGiftCardRedeemed
			}
			return errs.ErrGiftCardExpired
		}

		var newBalance int64
		credit := tx.Raw(
			`UPDATE users SET balance_kobo = balance_kobo + ?, updated_at = ? WHERE id = ? RETURNING balance_kobo`,
			txn.AmountKobo, now, txn.UserID,
		).Scan(&newBalance)
		if credit.Error != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabase, credit.Error.Error())
		}
		if credit.RowsAffected == 0 {
			return errs.ErrUserNotFound
		}

		txn.Status = entity.StatusSuccess
		txn.BalanceBefore = newBalance - txn.AmountKobo
		txn.BalanceAfter = newBalance
		processed := now
		txn.ProcessedAt = &processed

		txnModel := transactionToModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			if r.errorClassifier.IsDuplicateKeyError(err) {
				return errs.ErrDuplicateReference
			}
			return fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
		}
		txn.ID = txnModel.ID
		return nil
	})
}

// CallbackEventRepository implements persistence.CallbackEventRepository using GORM
type CallbackEventRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
}

// NewCallbackEventRepository creates a new CallbackEventRepository instance
func NewCallbackEventRepository(db *gorm.DB, timeProvider coreport.TimeProvider) *CallbackEventRepository {
	return &CallbackEventRepository{db: db, timeProvider: timeProvider}
}

// Append persists a raw callback payload for audit
func (r *CallbackEventRepository) Append(ctx context.Context, provider, reference string, payload []byte) error {
	event := model.CallbackEvent{
		Provider:  provider,
		Reference: reference,
		Payload:   string(payload),
		CreatedAt: r.timeProvider.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	return nil
}
