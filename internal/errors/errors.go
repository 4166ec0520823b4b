package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuth indicates a missing or invalid session (token or tenant id).
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodePermission indicates an action attempted without the capability for it.
	ErrCodePermission ErrorCode = "permission"
	// ErrCodeTransport indicates the backend could not be reached or answered garbage.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeRejected indicates the backend refused a request (4xx or success=false).
	ErrCodeRejected ErrorCode = "rejected"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// Sanitized messages shown to end users. Transport and server details never reach them.
const (
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgUnreachable    = "Unable to reach the server. Please try again."
	MsgRejected       = "The server could not process the request."
	MsgNotFound       = "The record no longer exists."
	MsgTimeout        = "The request took too long. Please try again."
	MsgFixBelow       = "Please fix the errors below."
	MsgNoPermission   = "You do not have permission to perform this action."
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Status is the backend HTTP status, when the error came from a response (optional)
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Auth creates a new Auth error.
func Auth(message string) *AppError {
	return &AppError{Code: ErrCodeAuth, Message: message}
}

// Permission creates a new Permission error.
func Permission(message string) *AppError {
	return &AppError{Code: ErrCodePermission, Message: message}
}

// Permissionf creates a new Permission error with formatted message.
func Permissionf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodePermission, Message: fmt.Sprintf(format, args...)}
}

// Transport wraps a network or decoding failure.
func Transport(err error, message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message, Cause: err}
}

// Rejected creates an error for a request the backend refused.
// message should be the server-provided text, or empty when none was given.
func Rejected(status int, message string) *AppError {
	return &AppError{Code: ErrCodeRejected, Message: message, Status: status}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuth checks if an error is an Auth error.
func IsAuth(err error) bool { return isCode(err, ErrCodeAuth) }

// IsPermission checks if an error is a Permission error.
func IsPermission(err error) bool { return isCode(err, ErrCodePermission) }

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool { return isCode(err, ErrCodeTransport) }

// IsRejected checks if an error is a Rejected error.
func IsRejected(err error) bool { return isCode(err, ErrCodeRejected) }

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// UserMessage returns the text that may be shown to an end user for err.
// Only validation, permission and server-rejection messages pass through;
// everything else collapses to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return MsgUnreachable
	}

	switch appErr.Code {
	case ErrCodeValidation:
		return fallback(appErr.Message, MsgFixBelow)
	case ErrCodePermission:
		return fallback(appErr.Message, MsgNoPermission)
	case ErrCodeRejected:
		return fallback(appErr.Message, MsgRejected)
	case ErrCodeAuth:
		return MsgSessionExpired
	case ErrCodeNotFound:
		return MsgNotFound
	case ErrCodeTimeout, ErrCodeCanceled:
		return MsgTimeout
	default:
		return MsgUnreachable
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
