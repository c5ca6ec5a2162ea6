package users

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for user directory operations

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	UserID  int64
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s] for user %d: %s (caused by: %v)", e.Type, e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s] for user %d: %s", e.Type, e.UserID, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeNotFound         = "not_found"
	UserErrorTypeInvalidRequest   = "invalid_request"
	UserErrorTypeValidationFailed = "validation_failed"
)

// NewUserNotFoundError creates an error for when a user is not found
func NewUserNotFoundError(userID int64) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  userID,
		Message: "user not found",
	}
}

// NewUserInvalidRequestError creates an error for malformed user requests
func NewUserInvalidRequestError(message string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeInvalidRequest,
		Message: message,
		Cause:   cause,
	}
}

// IsNotFound reports whether err signals an absent user. Absence is an
// expected outcome, not a generic failure.
func IsNotFound(err error) bool {
	var uerr *UserError
	return errors.As(err, &uerr) && uerr.Type == UserErrorTypeNotFound
}

// ValidationError represents a rejected create request and carries every
// violated field
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// NewValidationError creates a validation error from the collected violations
func NewValidationError(violations []FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// AsValidationError extracts a ValidationError from err, if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
