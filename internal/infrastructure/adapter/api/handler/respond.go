package handler

import (
	"errors"
	"net/http"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// httpStatus maps domain errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errs.IsInsufficientFundsError(err),
		errors.Is(err, errs.ErrInsufficientFunds),
		errors.Is(err, errs.ErrInsufficientReward):
		// A balance shortfall is a client problem, same bucket as validation.
		return http.StatusBadRequest
	case errs.IsDuplicateReferenceError(err),
		errors.Is(err, errs.ErrTerminalTransaction),
		errors.Is(err, errs.ErrGiftCardRedeemed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrGiftCardExpired):
		return http.StatusGone
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInvalidAmount),
		errors.Is(err, errs.ErrNegativeAmount),
		errors.Is(err, errs.ErrInvalidUserID),
		errors.Is(err, errs.ErrInvalidEmail),
		errors.Is(err, errs.ErrInvalidReference),
		errors.Is(err, errs.ErrInvalidTransactionType),
		errors.Is(err, errs.ErrRecipientMismatch):
		return http.StatusBadRequest
	case errs.IsGatewayError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error response for a domain error.
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak internals to the client.
		message = "Internal server error"
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrValidation),
		Message: "Invalid request format: " + err.Error(),
	})
}
