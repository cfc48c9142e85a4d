package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
)

// APIResponse is the standard envelope for all API responses. The four
// legacy client routes (auth, list, create, update) keep their historical
// ad-hoc shapes; everything added since goes through this envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// HandleError maps a domain error to an HTTP response. Internal errors are
// logged with the request id and surfaced as an opaque 500.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrEmailNotRegistered):
		return http.StatusUnauthorized, "EMAIL_NOT_REGISTERED", "email not registered"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusUnauthorized, "INCORRECT_PASSWORD", "incorrect password"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already registered"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrInvalidPaymentStatus):
		return http.StatusBadRequest, "INVALID_PAYMENT_STATUS", "invalid payment status; allowed: paid, partially_paid, to_be_paid"
	case errors.Is(err, domain.ErrAmountExceedsTotal):
		return http.StatusBadRequest, "AMOUNT_EXCEEDS_TOTAL", "amount paid cannot exceed the grand total"
	case errors.Is(err, domain.ErrAmountPaidDecreased):
		return http.StatusBadRequest, "AMOUNT_PAID_DECREASED", "amount paid cannot be reduced"
	case errors.Is(err, domain.ErrPaidInvoiceImmutable):
		return http.StatusBadRequest, "PAID_INVOICE_IMMUTABLE", "a paid invoice cannot be modified"
	case errors.Is(err, domain.ErrStatusNotAllowed):
		return http.StatusBadRequest, "STATUS_NOT_ALLOWED", "payment status is inconsistent with the current balance"
	case errors.Is(err, domain.ErrDueDateRequired):
		return http.StatusBadRequest, "DUE_DATE_REQUIRED", "a valid due date is required for unpaid invoices"
	case errors.Is(err, domain.ErrRecipientRequired):
		return http.StatusBadRequest, "RECIPIENT_REQUIRED", "recipient email is required"
	case errors.Is(err, domain.ErrDeliveryNotConfigured):
		return http.StatusServiceUnavailable, "DELIVERY_NOT_CONFIGURED", "invoice delivery is not configured"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}
