package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for RepForge errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Store error codes
const (
	STORE_OPEN_FAILED    ErrorCode = "STORE_OPEN_FAILED"
	STORE_QUERY_FAILED   ErrorCode = "STORE_QUERY_FAILED"
	STORE_WRITE_FAILED   ErrorCode = "STORE_WRITE_FAILED"
	STORE_TX_FAILED      ErrorCode = "STORE_TX_FAILED"
	CATALOG_EMPTY        ErrorCode = "CATALOG_EMPTY"
	PROGRAM_NOT_FOUND    ErrorCode = "PROGRAM_NOT_FOUND"
	EXERCISE_NOT_FOUND   ErrorCode = "EXERCISE_NOT_FOUND"
	EXERCISE_NOT_ACTIVE  ErrorCode = "EXERCISE_NOT_ACTIVE"
	ASSIGNMENT_SLOT_MISS ErrorCode = "ASSIGNMENT_SLOT_MISS"
)

// Pipeline error codes
const (
	PIPELINE_STAGE_FAILED   ErrorCode = "PIPELINE_STAGE_FAILED"
	PIPELINE_TIMEOUT        ErrorCode = "PIPELINE_TIMEOUT"
	PIPELINE_PERSIST_FAILED ErrorCode = "PIPELINE_PERSIST_FAILED"
	INTAKE_INVALID          ErrorCode = "INTAKE_INVALID"
)

// ForgeError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type ForgeError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *ForgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *ForgeError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *ForgeError) Is(target error) bool {
	var forgeErr *ForgeError
	if errors.As(target, &forgeErr) {
		return e.Code == forgeErr.Code
	}
	return false
}

// NewError creates a new non-retryable ForgeError with the given code and message.
func NewError(code ErrorCode, message string) *ForgeError {
	return &ForgeError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     nil,
	}
}

// NewRetryableError creates a new retryable ForgeError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., rate limits).
func NewRetryableError(code ErrorCode, message string) *ForgeError {
	return &ForgeError{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     nil,
	}
}

// WrapError creates a new non-retryable ForgeError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *ForgeError {
	return &ForgeError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Cause:     cause,
	}
}
