package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/database"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/model"
)

// LedgerRepository implements persistence.LedgerRepository using GORM.
// Every balance mutation is a single conditional UPDATE with the sufficiency
// guard in the WHERE clause; the affected-row count detects lost races. No
// method reads a balance and writes it back across two round trips.
type LedgerRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	retry           database.RetryConfig
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		retry:           database.DefaultRetryConfig(),
	}
}

// GetByID retrieves a user by ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.classify("getting user", err, errs.ErrUserNotFound)
	}
	return userToEntity(&userModel), nil
}

// GetByEmail retrieves a user by email
func (r *LedgerRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, r.classify("getting user by email", err, errs.ErrUserNotFound)
	}
	return userToEntity(&userModel), nil
}

// Create creates a new user
func (r *LedgerRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Email:       user.Email,
		Name:        user.Name,
		BalanceKobo: user.BalanceKobo,
		RewardKobo:  user.RewardKobo,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrConstraintViolation
		}
		return r.classify("creating user", err, errs.ErrUserNotFound)
	}
	user.ID = userModel.ID
	return nil
}

// SpendAndRecord applies the conditional debit and inserts the pending row in
// one database transaction. Transient failures retry; a retry that lands
// after an ambiguous commit fails the unique reference and stops.
func (r *LedgerRepository) SpendAndRecord(ctx context.Context, txn *entity.Transaction) error {
	now := r.timeProvider.Now()

	return database.RetryOnTransientError(ctx, r.retry, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			newBalance, err := r.conditionalDebit(tx, txn.UserID, txn.AmountKobo, now)
			if err != nil {
				return err
			}

			txn.BalanceBefore = newBalance + txn.AmountKobo
			txn.BalanceAfter = newBalance

			txnModel := transactionToModel(txn)
			if err := tx.Create(txnModel).Error; err != nil {
				return r.classify("inserting transaction", err, errs.ErrTransactionNotFound)
			}
			txn.ID = txnModel.ID
			return nil
		})
	}, r.logger)
}

// Record inserts a transaction without moving any balance.
func (r *LedgerRepository) Record(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userModel model.User
		if err := tx.First(&userModel, txn.UserID).Error; err != nil {
			return r.classify("getting user", err, errs.ErrUserNotFound)
		}

		txn.BalanceBefore = userModel.BalanceKobo
		txn.BalanceAfter = userModel.BalanceKobo

		txnModel := transactionToModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			return r.classify("inserting transaction", err, errs.ErrTransactionNotFound)
		}
		txn.ID = txnModel.ID
		return nil
	})
}

// RefundAndFinalize flips pending -> failed and credits the refund only when
// the conditional update wins. The original balance snapshots stay untouched:
// they bracket the provisional debit this refund reverses.
func (r *LedgerRepository) RefundAndFinalize(ctx context.Context, reference string, amountKobo int64, fin persistence.Finalization) (bool, error) {
	won := false
	err := database.RetryOnTransientError(ctx, r.retry, func() error {
		won = false
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txnModel model.Transaction
			if err := tx.Where("reference = ?", reference).First(&txnModel).Error; err != nil {
				return r.classify("getting transaction", err, errs.ErrTransactionNotFound)
			}

			w, err := r.finalizeInTx(tx, reference, fin)
			if err != nil {
				return err
			}
			if !w {
				return nil
			}

			if err := r.unconditionalCredit(tx, "balance_kobo", txnModel.UserID, amountKobo); err != nil {
				return err
			}
			won = true
			return nil
		})
	}, r.logger)
	return won, err
}

// CreditAndFinalize flips pending -> success and credits amountKobo in the
// same database transaction, updating the row's balance snapshots to bracket
// the credit.
func (r *LedgerRepository) CreditAndFinalize(ctx context.Context, reference string, amountKobo int64, fin persistence.Finalization) (bool, error) {
	won := false
	err := database.RetryOnTransientError(ctx, r.retry, func() error {
		won = false
		return r.creditAndFinalizeOnce(ctx, reference, amountKobo, fin, &won)
	}, r.logger)
	return won, err
}

func (r *LedgerRepository) creditAndFinalizeOnce(ctx context.Context, reference string, amountKobo int64, fin persistence.Finalization, won *bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txnModel model.Transaction
		if err := tx.Where("reference = ?", reference).First(&txnModel).Error; err != nil {
			return r.classify("getting transaction", err, errs.ErrTransactionNotFound)
		}

		w, err := r.finalizeInTx(tx, reference, fin)
		if err != nil {
			return err
		}
		if !w {
			return nil
		}

		var newBalance int64
		res := tx.Raw(
			`UPDATE users SET balance_kobo = balance_kobo + ?, updated_at = ? WHERE id = ? RETURNING balance_kobo`,
			amountKobo, r.timeProvider.Now(), txnModel.UserID,
		).Scan(&newBalance)
		if res.Error != nil {
			return r.classify("crediting balance", res.Error, errs.ErrUserNotFound)
		}
		if res.RowsAffected == 0 {
			return errs.ErrUserNotFound
		}

		if err := tx.Model(&model.Transaction{}).Where("reference = ?", reference).
			Updates(map[string]any{
				"amount_kobo":    amountKobo,
				"balance_before": newBalance - amountKobo,
				"balance_after":  newBalance,
			}).Error; err != nil {
			return r.classify("updating transaction snapshots", err, errs.ErrTransactionNotFound)
		}
		*won = true
		return nil
	})
}

// DebitAndFinalize flips pending -> success and applies the deferred debit,
// guarded by sufficiency. A failed guard rolls the whole thing back and the
// transaction stays pending.
func (r *LedgerRepository) DebitAndFinalize(ctx context.Context, reference string, amountKobo int64, fin persistence.Finalization) (bool, error) {
	won := false
	err := database.RetryOnTransientError(ctx, r.retry, func() error {
		won = false
		return r.debitAndFinalizeOnce(ctx, reference, amountKobo, fin, &won)
	}, r.logger)
	return won, err
}

func (r *LedgerRepository) debitAndFinalizeOnce(ctx context.Context, reference string, amountKobo int64, fin persistence.Finalization, won *bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txnModel model.Transaction
		if err := tx.Where("reference = ?", reference).First(&txnModel).Error; err != nil {
			return r.classify("getting transaction", err, errs.ErrTransactionNotFound)
		}

		w, err := r.finalizeInTx(tx, reference, fin)
		if err != nil {
			return err
		}
		if !w {
			return nil
		}

		newBalance, err := r.conditionalDebit(tx, txnModel.UserID, amountKobo, r.timeProvider.Now())
		if err != nil {
			return err // rolls back the status flip too
		}

		if err := tx.Model(&model.Transaction{}).Where("reference = ?", reference).
			Updates(map[string]any{
				"balance_before": newBalance + amountKobo,
				"balance_after":  newBalance,
			}).Error; err != nil {
			return r.classify("updating transaction snapshots", err, errs.ErrTransactionNotFound)
		}
		*won = true
		return nil
	})
}

// ConvertReward atomically moves amountKobo from reward to balance and
// records the conversion.
func (r *LedgerRepository) ConvertReward(ctx context.Context, txn *entity.Transaction) error {
	now := r.timeProvider.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		type balances struct {
			RewardKobo  int64
			BalanceKobo int64
		}
		var after balances
		res := tx.Raw(
			`UPDATE users SET reward_kobo = reward_kobo - ?, balance_kobo = balance_kobo + ?, updated_at = ?
			 WHERE id = ? AND reward_kobo >= ?
			 RETURNING reward_kobo, balance_kobo`,
			txn.AmountKobo, txn.AmountKobo, now, txn.UserID, txn.AmountKobo,
		).Scan(&after)
		if res.Error != nil {
			return r.classify("converting reward", res.Error, errs.ErrUserNotFound)
		}
		if res.RowsAffected == 0 {
			if err := r.mustExist(tx, txn.UserID); err != nil {
				return err
			}
			return errs.ErrInsufficientReward
		}

		txn.Status = entity.StatusSuccess
		txn.BalanceBefore = after.BalanceKobo - txn.AmountKobo
		txn.BalanceAfter = after.BalanceKobo
		processed := now
		txn.ProcessedAt = &processed

		txnModel := transactionToModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			return r.classify("inserting transaction", err, errs.ErrTransactionNotFound)
		}
		txn.ID = txnModel.ID
		return nil
	})
}

// TransferWallet atomically debits the sender, credits the counterparty and
// records one success row carrying both identities.
func (r *LedgerRepository) TransferWallet(ctx context.Context, txn *entity.Transaction) error {
	if txn.CounterpartyID == nil {
		return fmt.Errorf("%w: transfer requires a counterparty", errs.ErrValidation)
	}
	now := r.timeProvider.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		senderBalance, err := r.conditionalDebit(tx, txn.UserID, txn.AmountKobo, now)
		if err != nil {
			return err
		}

		if err := r.unconditionalCredit(tx, "balance_kobo", *txn.CounterpartyID, txn.AmountKobo); err != nil {
			return err
		}

		txn.Status = entity.StatusSuccess
		txn.BalanceBefore = senderBalance + txn.AmountKobo
		txn.BalanceAfter = senderBalance
		processed := now
		txn.ProcessedAt = &processed

		txnModel := transactionToModel(txn)
		if err := tx.Create(txnModel).Error; err != nil {
			return r.classify("inserting transaction", err, errs.ErrTransactionNotFound)
		}
		txn.ID = txnModel.ID
		return nil
	})
}

// conditionalDebit is the single arbitration point for every debit: the guard
// lives in the WHERE clause and the affected-row count is the race detector.
func (r *LedgerRepository) conditionalDebit(tx *gorm.DB, userID uint64, amountKobo int64, now any) (int64, error) {
	var newBalance int64
	res := tx.Raw(
		`UPDATE users SET balance_kobo = balance_kobo - ?, updated_at = ? WHERE id = ? AND balance_kobo >= ? RETURNING balance_kobo`,
		amountKobo, now, userID, amountKobo,
	).Scan(&newBalance)
	if res.Error != nil {
		return 0, r.classify("debiting balance", res.Error, errs.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		if err := r.mustExist(tx, userID); err != nil {
			return 0, err
		}
		var current int64
		if err := tx.Model(&model.User{}).Where("id = ?", userID).Pluck("balance_kobo", &current).Error; err == nil {
			return 0, errs.NewInsufficientFundsError(userID, amountKobo, current)
		}
		return 0, errs.ErrInsufficientFunds
	}
	return newBalance, nil
}

func (r *LedgerRepository) unconditionalCredit(tx *gorm.DB, column string, userID uint64, amountKobo int64) error {
	res := tx.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", amountKobo),
			"updated_at": r.timeProvider.Now(),
		})
	if res.Error != nil {
		return r.classify("crediting balance", res.Error, errs.ErrUserNotFound)
	}
	if res.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// finalizeInTx applies the conditional pending -> terminal update inside an
// open database transaction and reports whether it won.
func (r *LedgerRepository) finalizeInTx(tx *gorm.DB, reference string, fin persistence.Finalization) (bool, error) {
	updates := finalizationUpdates(fin)
	res := tx.Model(&model.Transaction{}).
		Where("reference = ? AND status = ?", reference, string(entity.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return false, r.classify("finalizing transaction", res.Error, errs.ErrTransactionNotFound)
	}
	return res.RowsAffected > 0, nil
}

func (r *LedgerRepository) mustExist(tx *gorm.DB, userID uint64) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return r.classify("checking user existence", err, errs.ErrUserNotFound)
	}
	if count == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// classify standardizes database error handling the same way across methods.
func (r *LedgerRepository) classify(operation string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateReference
	}
	if r.errorClassifier.IsConstraintError(err) {
		return errs.ErrConstraintViolation
	}
	r.logger.Error("Database error", map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s: %s", errs.ErrDatabase, operation, err.Error())
}
