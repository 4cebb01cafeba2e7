package errors

import (
	"fmt"
	"strings"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainBusinessRuleError indicates a business rule violation
	DomainBusinessRuleError DomainErrorType = "BUSINESS_RULE_ERROR"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type    DomainErrorType        `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// ValidationErrors aggregates multiple field-level validation failures so a graph
// can be rejected with every problem reported at once
type ValidationErrors struct {
	errors []*DomainError
}

// NewValidationErrors creates an empty validation error collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records a field-level validation failure
func (v *ValidationErrors) Add(field, message string) {
	v.errors = append(v.errors,
		NewDomainError(DomainValidationError, "FIELD_INVALID", message).WithDetail("field", field))
}

// AddError records an existing domain error
func (v *ValidationErrors) AddError(err *DomainError) {
	v.errors = append(v.errors, err)
}

// HasErrors reports whether any failures were recorded
func (v *ValidationErrors) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the recorded failures
func (v *ValidationErrors) Errors() []*DomainError {
	return v.errors
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.errors) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(v.errors))
	for _, e := range v.errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
