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
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM.
// Finalize is a conditional UPDATE on status = 'pending'; the affected-row
// count is the arbitration between concurrent finalizers for one reference.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnModel := transactionToModel(txn)
	if err := r.db.WithContext(ctx).Create(txnModel).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateReference
		}
		if r.errorClassifier.IsConstraintError(err) {
			return errs.ErrConstraintViolation
		}
		r.logger.Error("Failed to insert transaction", map[string]any{
			"reference": txn.Reference,
			"error":     err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	txn.ID = txnModel.ID
	return nil
}

// GetByReference retrieves a transaction by its correlation reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var txnModel model.Transaction
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&txnModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	return transactionToEntity(&txnModel), nil
}

// Finalize applies fin only while the transaction is still pending
func (r *TransactionRepository) Finalize(ctx context.Context, reference string, fin persistence.Finalization) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status = ?", reference, string(entity.StatusPending)).
		Updates(finalizationUpdates(fin))
	if res.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabase, res.Error.Error())
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Distinguish "lost the race" from "no such transaction".
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ?", reference).Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}
	if count == 0 {
		return false, errs.ErrTransactionNotFound
	}
	return false, nil
}

// AttachProviderInfo records the provider correlation data on a pending transaction
func (r *TransactionRepository) AttachProviderInfo(ctx context.Context, reference, providerRef, apiResponse string) error {
	updates := map[string]any{}
	if providerRef != "" {
		updates["provider_ref"] = providerRef
	}
	if apiResponse != "" {
		updates["api_response"] = apiResponse
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status = ?", reference, string(entity.StatusPending)).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabase, res.Error.Error())
	}
	return nil
}

// ListByUser returns a page of the user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]entity.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var models []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR counterparty_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabase, err.Error())
	}

	txns := make([]entity.Transaction, 0, len(models))
	for i := range models {
		txns = append(txns, *transactionToEntity(&models[i]))
	}
	return txns, nil
}

// finalizationUpdates builds the column set written by a terminal transition.
func finalizationUpdates(fin persistence.Finalization) map[string]any {
	updates := map[string]any{
		"status":       string(fin.Status),
		"processed_at": fin.ProcessedAt,
	}
	if fin.ProviderRef != "" {
		updates["provider_ref"] = fin.ProviderRef
	}
	if fin.APIAmountKobo != nil {
		updates["api_amount_kobo"] = *fin.APIAmountKobo
	}
	if fin.APIResponse != "" {
		updates["api_response"] = fin.APIResponse
	}
	if fin.ErrorMessage != "" {
		updates["error_message"] = fin.ErrorMessage
	}
	return updates
}
