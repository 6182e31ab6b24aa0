package apperror

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation         = 4000
	CodeInsufficientFunds  = 4001
	CodeInsufficientReward = 4002
	CodeInvalidAmount      = 4003
	CodeDuplicateReference = 4004
	CodeConstraintViolation = 4005
	CodeRecipientMismatch  = 4006
	CodeGiftCardRedeemed   = 4007
	CodeGiftCardExpired    = 4008
	CodeUserNotFound       = 4040
	CodeTransactionNotFound = 4041
	CodePlanNotFound       = 4042
	CodeGiftCardNotFound   = 4043
	CodeProviderRejected   = 4220

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayUnavailable = 5020
)

// Base error types
var (
	// ErrValidation is returned for missing or malformed request fields
	ErrValidation = errors.New("invalid request")

	// ErrInvalidAmount is returned when an amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidEmail is returned when an email address is empty or malformed
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidReference is returned when the transaction reference is empty
	ErrInvalidReference = errors.New("transaction reference cannot be empty")

	// ErrInvalidTransactionType is returned for unknown transaction types
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInsufficientFunds is returned when the spendable balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientReward is returned when the reward balance cannot cover a conversion
	ErrInsufficientReward = errors.New("insufficient reward balance")

	// ErrDuplicateReference is returned when a transaction with the same reference exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrConstraintViolation is returned when a database uniqueness invariant is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPlanNotFound is returned when a plan code is missing or inactive
	ErrPlanNotFound = errors.New("plan not found or inactive")

	// ErrGiftCardNotFound is returned when a gift card code doesn't exist
	ErrGiftCardNotFound = errors.New("gift card not found")

	// ErrGiftCardRedeemed is returned when a gift card was already redeemed
	ErrGiftCardRedeemed = errors.New("gift card already redeemed")

	// ErrGiftCardExpired is returned when a gift card is past its expiry
	ErrGiftCardExpired = errors.New("gift card expired")

	// ErrRecipientMismatch is returned when the supplied recipient name does not
	// match the account resolved by email
	ErrRecipientMismatch = errors.New("recipient name does not match account")

	// ErrProviderRejected is returned when the provider synchronously refused the operation
	ErrProviderRejected = errors.New("provider rejected the request")

	// ErrGatewayUnavailable is returned for network/timeout/unparseable provider
	// responses. The outcome is unknown, never a confirmed rejection.
	ErrGatewayUnavailable = errors.New("provider gateway unavailable")

	// ErrTerminalTransaction is returned when a finalizer targets a transaction
	// that already reached success or failed
	ErrTerminalTransaction = errors.New("transaction already finalized")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabase is returned when a store operation fails
	ErrDatabase = errors.New("database error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidReference), errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidUserID), errors.Is(err, ErrNegativeAmount):
		return CodeValidation
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInsufficientReward):
		return CodeInsufficientReward
	case errors.Is(err, ErrDuplicateReference):
		return CodeDuplicateReference
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrRecipientMismatch):
		return CodeRecipientMismatch
	case errors.Is(err, ErrGiftCardRedeemed):
		return CodeGiftCardRedeemed
	case errors.Is(err, ErrGiftCardExpired):
		return CodeGiftCardExpired
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrPlanNotFound):
		return CodePlanNotFound
	case errors.Is(err, ErrGiftCardNotFound):
		return CodeGiftCardNotFound
	case errors.Is(err, ErrProviderRejected):
		return CodeProviderRejected
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for insufficient balance
type InsufficientFundsError struct {
	UserID      uint64
	AmountKobo  int64
	BalanceKobo int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: required %d kobo, available %d kobo",
		e.UserID, e.AmountKobo, e.BalanceKobo)
}

// Is checks if the target error is ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "insufficient_funds",
		"user_id":      e.UserID,
		"amount_kobo":  e.AmountKobo,
		"balance_kobo": e.BalanceKobo,
		"error_code":   CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, amountKobo, balanceKobo int64) error {
	return &InsufficientFundsError{UserID: userID, AmountKobo: amountKobo, BalanceKobo: balanceKobo}
}

// ProviderError represents a provider-side failure during reconciliation
type ProviderError struct {
	Reference string
	Provider  string
	Operation string
	Reason    string
	Err       error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed on %s (reference %s): %s - %v",
		e.Provider, e.Operation, e.Reference, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "provider_error",
		"reference":  e.Reference,
		"provider":   e.Provider,
		"operation":  e.Operation,
		"reason":     e.Reason,
		"error_code": ErrorCode(e.Err),
	}
}

// NewProviderError creates a detailed provider error wrapping cause
func NewProviderError(reference, provider, operation, reason string, cause error) error {
	return &ProviderError{Reference: reference, Provider: provider, Operation: operation, Reason: reason, Err: cause}
}

// IsInsufficientFundsError checks if the error is related to insufficient balance
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrGiftCardNotFound)
}

// IsDuplicateReferenceError checks if the error is a duplicate reference error
func IsDuplicateReferenceError(err error) bool {
	return errors.Is(err, ErrDuplicateReference)
}

// IsGatewayError checks whether the error means the provider outcome is unknown
func IsGatewayError(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}
