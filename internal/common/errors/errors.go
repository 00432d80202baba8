// Package errors provides standardized error handling for the dashboard service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Rendering pipeline errors. These never propagate past the router,
	// which substitutes a fallback tree instead.
	ErrCodeSyntaxInvalid    ErrorCode = "SYNTAX_INVALID"
	ErrCodeRuntimeFailure   ErrorCode = "RUNTIME_FAILURE"
	ErrCodeUnrecognizedType ErrorCode = "UNRECOGNIZED_TYPE"

	// Agent errors.
	ErrCodeAgentDisabled             ErrorCode = "AGENT_DISABLED"
	ErrCodeToolCallLimitExceeded     ErrorCode = "TOOL_CALL_LIMIT_EXCEEDED"
	ErrCodeComponentValidationFailed ErrorCode = "COMPONENT_VALIDATION_FAILED"

	// Request errors.
	ErrCodeRequestInvalid ErrorCode = "REQUEST_INVALID"
	ErrCodeQueryEmpty     ErrorCode = "QUERY_EMPTY"

	// Cache / history errors.
	ErrCodeCacheConnectionFailed ErrorCode = "CACHE_CONNECTION_FAILED"
	ErrCodeCacheOperationFailed  ErrorCode = "CACHE_OPERATION_FAILED"
	ErrCodeHistoryUnavailable    ErrorCode = "HISTORY_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSyntaxInvalidError marks component code that failed the call-tree parse.
func NewSyntaxInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSyntaxInvalid,
		Message:   "Component code is not a well-formed call tree",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRuntimeFailureError marks evaluation that aborted mid-tree.
func NewRuntimeFailureError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRuntimeFailure,
		Message:   "Component evaluation aborted",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnrecognizedTypeError marks a declared component type with no alias entry.
func NewUnrecognizedTypeError(componentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnrecognizedType,
		Message:   "Component type has no registered renderer",
		Details:   fmt.Sprintf("componentType: %s", componentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAgentDisabledError marks a routed request to an agent disabled by config.
func NewAgentDisabledError(agentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAgentDisabled,
		Message:   "Agent is disabled",
		Details:   fmt.Sprintf("agent: %s", agentName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewToolCallLimitExceededError marks a tripped tool-call breaker.
func NewToolCallLimitExceededError(toolName string, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolCallLimitExceeded,
		Message:   "Tool call limit exceeded within window",
		Details:   fmt.Sprintf("tool: %s, limit: %d", toolName, limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewComponentValidationFailedError marks an agent output that failed schema validation.
func NewComponentValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeComponentValidationFailed,
		Message:   "Generated component failed envelope validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError marks a malformed analyze request body.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Request body is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryEmptyError marks a request whose query is blank after trimming.
func NewQueryEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryEmpty,
		Message:   "Query must not be empty",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheConnectionFailedError creates a retryable cache connection error.
func NewCacheConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheConnectionFailed,
		Message:   "Cache connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheOperationFailedError creates a retryable cache operation error.
func NewCacheOperationFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheOperationFailed,
		Message:   "Cache operation error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryUnavailableError marks a history read with no reachable store.
func NewHistoryUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryUnavailable,
		Message:   "Query history store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Retry Policy
// ==========================

// GetRetryCount returns the recommended retry count for an error code.
// Rendering and agent errors are terminal: the router substitutes a
// fallback tree, it never re-runs the pipeline.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCacheConnectionFailed,
		ErrCodeCacheOperationFailed:
		return 3

	case ErrCodeHistoryUnavailable:
		return 1

	default:
		return 0
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SYNTAX") || strings.Contains(codeStr, "RUNTIME") || strings.Contains(codeStr, "UNRECOGNIZED"):
		return "RENDER"
	case strings.Contains(codeStr, "AGENT") || strings.Contains(codeStr, "TOOL"):
		return "AGENT"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "HISTORY"):
		return "CACHE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "EMPTY"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
