package errors

import (
	"fmt"
	"time"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"

	// Authentication errors
	ErrCodeInvalidInitData ErrorCode = "INVALID_INIT_DATA"
	ErrCodeMissingInitData ErrorCode = "MISSING_INIT_DATA"

	// User errors
	ErrCodeUserNotFound  ErrorCode = "USER_NOT_FOUND"
	ErrCodeInvalidWallet ErrorCode = "INVALID_WALLET_ADDRESS"

	// Infrastructure errors
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeCacheError    ErrorCode = "CACHE_ERROR"
	ErrCodeConfigError   ErrorCode = "CONFIGURATION_ERROR"
)

// AppError is a typed application error carrying a stable code for the API
// boundary and an optional cause for logs. Internal details never reach the
// caller: handlers serialize Code and Message only.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsInternal reports whether the error is a server-side failure, as opposed
// to a client authentication or validation problem. Callers use this to tell
// "you are not authenticated" apart from "the server is broken".
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal ||
		e.Code == ErrCodeDatabaseError ||
		e.Code == ErrCodeCacheError ||
		e.Code == ErrCodeConfigError
}

// IsUnauthorized reports whether the error represents failed authentication.
func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeInvalidInitData || e.Code == ErrCodeForbidden
}

// WithDetail attaches structured detail to the error. Details are logged
// server-side, not returned to callers.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRequestID tags the error with the originating request.
func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap attaches a cause to a new AppError.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// NewInvalidInitDataError creates the 401-class error for a failed
// verification verdict. The reason is a machine-readable verdict tag.
func NewInvalidInitDataError(reason string) *AppError {
	return New(ErrCodeInvalidInitData, "Invalid init data").
		WithDetail("reason", reason)
}

// NewUserNotFoundError creates the "user not found" error.
func NewUserNotFoundError(userID string) *AppError {
	return New(ErrCodeUserNotFound, "User not found").
		WithDetail("user_id", userID)
}

// NewDatabaseError wraps a store failure. The operation name is for logs;
// callers see a generic message.
func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, "Storage operation failed").
		WithDetail("operation", operation)
}

// NewConfigError signals missing or invalid server configuration.
func NewConfigError(message string) *AppError {
	return New(ErrCodeConfigError, message)
}

// AsAppError extracts an AppError from err, if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
