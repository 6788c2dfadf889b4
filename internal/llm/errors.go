package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/repforge/repforge/internal/types"
)

// LLM error codes follow the RepForge error pattern
const (
	// Provider errors
	ErrProviderInitFailed   types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	ErrProviderServerError  types.ErrorCode = "LLM_PROVIDER_SERVER_ERROR"

	// Request errors
	ErrInvalidRequest types.ErrorCode = "LLM_INVALID_REQUEST"

	// Completion errors
	ErrCompletionFailed    types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrStreamingFailed     types.ErrorCode = "LLM_STREAMING_FAILED"
	ErrResponseParseFailed types.ErrorCode = "LLM_RESPONSE_PARSE_FAILED"
	ErrSchemaViolation     types.ErrorCode = "LLM_SCHEMA_VIOLATION"
	ErrContextCanceled     types.ErrorCode = "LLM_CONTEXT_CANCELED"
)

// transientMarkers are substrings that identify a rate-limit or server-side
// failure inside a stringified error message. Callers between us and the
// provider sometimes flatten structured status into text; matching these
// keeps classification working across that boundary.
var transientMarkers = []string{
	"rate limit",
	"rate_limit",
	"too many requests",
	"429",
	"500",
	"502",
	"503",
	"529",
	"overloaded",
	"internal server error",
	"service unavailable",
	"bad gateway",
}

// IsTransient reports whether an error is a transient provider failure:
// a rate-limit response, a server-side (5xx) response, or an error whose
// stringified message embeds those codes. Only transient errors are
// eligible for retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var forgeErr *types.ForgeError
	if errors.As(err, &forgeErr) {
		if forgeErr.Retryable {
			return true
		}
		switch forgeErr.Code {
		case ErrProviderRateLimited, ErrProviderServerError, ErrProviderUnavailable:
			return true
		case ErrContextCanceled, ErrProviderUnauthorized, ErrInvalidRequest,
			ErrResponseParseFailed, ErrSchemaViolation:
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// NewRateLimitError creates a retryable error for rate limiting
func NewRateLimitError(providerName string) *types.ForgeError {
	return &types.ForgeError{
		Code:      ErrProviderRateLimited,
		Message:   "rate limit exceeded for provider: " + providerName,
		Retryable: true,
	}
}

// NewServerError creates a retryable error for server-side provider failures
func NewServerError(providerName string, cause error) *types.ForgeError {
	return &types.ForgeError{
		Code:      ErrProviderServerError,
		Message:   "server error from provider: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewAuthError creates a non-retryable authentication error
func NewAuthError(providerName string, cause error) *types.ForgeError {
	return &types.ForgeError{
		Code:    ErrProviderUnauthorized,
		Message: fmt.Sprintf("provider '%s' authentication failed", providerName),
		Cause:   cause,
	}
}

// NewParseError creates a non-retryable error for responses that fail to
// parse against the requested schema. Structural failures are surfaced
// immediately rather than retried blindly.
func NewParseError(providerName string, raw string, cause error) *types.ForgeError {
	preview := raw
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return &types.ForgeError{
		Code:    ErrResponseParseFailed,
		Message: fmt.Sprintf("provider '%s' returned unparseable structured output: %s", providerName, preview),
		Cause:   cause,
	}
}

// NewCompletionError creates an error for completion failures
func NewCompletionError(message string, cause error) *types.ForgeError {
	return types.WrapError(ErrCompletionFailed, message, cause)
}

// TranslateError converts raw provider errors into classified ForgeErrors
// based on message content. Errors that are already ForgeErrors pass through.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var forgeErr *types.ForgeError
	if errors.As(err, &forgeErr) {
		return err
	}

	lowerMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "api key"):
		return NewAuthError(provider, err)
	case strings.Contains(lowerMsg, "rate limit") ||
		strings.Contains(lowerMsg, "too many requests") ||
		strings.Contains(lowerMsg, "429"):
		return NewRateLimitError(provider)
	case strings.Contains(lowerMsg, "500") ||
		strings.Contains(lowerMsg, "502") ||
		strings.Contains(lowerMsg, "503") ||
		strings.Contains(lowerMsg, "529") ||
		strings.Contains(lowerMsg, "overloaded") ||
		strings.Contains(lowerMsg, "internal server error"):
		return NewServerError(provider, err)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return types.WrapError(ErrContextCanceled, "request canceled", err)
	default:
		return types.WrapError(ErrCompletionFailed, "provider request failed: "+provider, err)
	}
}
