package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeExecution  ErrorType = "execution"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// ScaffError is a structured error type with context.
type ScaffError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Tier        string
	Path        string
	Recoverable bool
}

// Error implements the error interface.
func (e *ScaffError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Tier != "" {
		parts = append(parts, "tier:"+e.Tier)
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ScaffError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *ScaffError) Is(target error) bool {
	var t *ScaffError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *ScaffError) WithContext(key string, value interface{}) *ScaffError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithTier adds tier context.
func (e *ScaffError) WithTier(tier string) *ScaffError {
	e.Tier = tier

	return e
}

// WithPath adds file path context.
func (e *ScaffError) WithPath(path string) *ScaffError {
	e.Path = path

	return e
}

// Error creation functions

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeSecurity,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(code, message string) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeNotFound,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewExecutionError creates an execution error.
func NewExecutionError(code, message string, cause error) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeExecution,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *ScaffError {
	return &ScaffError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// Error recovery and handling utilities

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var se *ScaffError
	if errors.As(err, &se) {
		return se.Recoverable
	}

	return false
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var se *ScaffError
	if errors.As(err, &se) {
		return se.Type == ErrorTypeNotFound
	}

	return false
}

// IsSecurityError checks if an error is security-related.
func IsSecurityError(err error) bool {
	var se *ScaffError
	if errors.As(err, &se) {
		return se.Type == ErrorTypeSecurity
	}

	return false
}

// IsExecutionError checks if an error is execution-related.
func IsExecutionError(err error) bool {
	var se *ScaffError
	if errors.As(err, &se) {
		return se.Type == ErrorTypeExecution
	}

	return false
}

// Common error codes.
const (
	ErrCodeTierNotFound     = "ERR_TIER_NOT_FOUND"
	ErrCodeDocumentNotFound = "ERR_DOCUMENT_NOT_FOUND"
	ErrCodeDocumentInvalid  = "ERR_DOCUMENT_INVALID"
	ErrCodeDocumentFormat   = "ERR_DOCUMENT_FORMAT"
	ErrCodeOutputFormat     = "ERR_OUTPUT_FORMAT"
	ErrCodeOutputWrite      = "ERR_OUTPUT_WRITE"
	ErrCodeInvalidInput     = "ERR_INVALID_INPUT"
	ErrCodeExecutorFailed   = "ERR_EXECUTOR_FAILED"
	ErrCodeCommandInjection = "ERR_COMMAND_INJECTION"
	ErrCodePathTraversal    = "ERR_PATH_TRAVERSAL"
	ErrCodeInvalidOrigin    = "ERR_INVALID_ORIGIN"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeServerStart      = "ERR_SERVER_START"
	ErrCodeInternalError    = "ERR_INTERNAL"
)

// Helper functions for common errors

// ErrTierNotFound creates a tier not found error.
func ErrTierNotFound(name string) *ScaffError {
	return NewNotFoundError(
		ErrCodeTierNotFound,
		fmt.Sprintf("tier '%s' not found", name),
	).WithTier(name)
}

// ErrDocumentNotFound creates a document not found error.
func ErrDocumentNotFound(path string) *ScaffError {
	return NewNotFoundError(
		ErrCodeDocumentNotFound,
		"scaffold document not found",
	).WithPath(path)
}

// ErrCommandInjection creates a command injection security error.
func ErrCommandInjection(command string) *ScaffError {
	return NewSecurityError(
		ErrCodeCommandInjection,
		"command injection attempt: "+command,
	)
}

// ErrPathTraversal creates a path traversal security error.
func ErrPathTraversal(path string) *ScaffError {
	return NewSecurityError(ErrCodePathTraversal, "path traversal attempt: "+path)
}

// ErrInvalidOrigin creates an invalid origin security error.
func ErrInvalidOrigin(origin string) *ScaffError {
	return NewSecurityError(ErrCodeInvalidOrigin, "invalid origin: "+origin)
}
