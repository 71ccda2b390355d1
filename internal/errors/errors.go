package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrInvalidState     = new(ErrCodeInvalidState, "invalid state transition")
	ErrInvalidDate      = new(ErrCodeInvalidDate, "invalid date")
	ErrInvalidPlan      = new(ErrCodeInvalidPlan, "invalid plan")
	ErrScheduling       = new(ErrCodeScheduling, "scheduling error")
	ErrPaymentFailed    = new(ErrCodePaymentFailed, "payment failed")
	ErrRefundFailed     = new(ErrCodeRefundFailed, "refund failed")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrInvalidState:     http.StatusConflict,
		ErrInvalidDate:      http.StatusBadRequest,
		ErrInvalidPlan:      http.StatusBadRequest,
		ErrScheduling:       http.StatusUnprocessableEntity,
		ErrPaymentFailed:    http.StatusPaymentRequired,
		ErrRefundFailed:     http.StatusBadGateway,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeInvalidState     = "invalid_state"
	ErrCodeInvalidDate      = "invalid_date"
	ErrCodeInvalidPlan      = "invalid_plan"
	ErrCodeScheduling       = "scheduling_error"
	ErrCodePaymentFailed    = "payment_failed"
	ErrCodeRefundFailed     = "refund_failed"
	ErrCodeDatabase         = "database_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsInvalidState checks if an error is an invalid state transition error
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsInvalidDate checks if an error is an invalid pickup date error
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

// IsInvalidPlan checks if an error is an invalid plan error
func IsInvalidPlan(err error) bool {
	return errors.Is(err, ErrInvalidPlan)
}

// IsPaymentFailed checks if an error is a payment gateway failure
func IsPaymentFailed(err error) bool {
	return errors.Is(err, ErrPaymentFailed)
}

// IsRefundFailed checks if an error is a refund gateway failure
func IsRefundFailed(err error) bool {
	return errors.Is(err, ErrRefundFailed)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
