package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound   = errors.New("resource not found")
	ErrEnrollmentNotFound = errors.New("enrollment record not found")
	ErrOfferingNotFound   = errors.New("course offering not found")
	ErrProposalNotFound   = errors.New("offering proposal not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrTermNotFound       = errors.New("academic term not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrSlotNotFound       = errors.New("slot not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidGrade     = errors.New("invalid grade letter")

	// Workflow errors
	ErrScheduleConflict    = errors.New("schedule conflict")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrNotPermitted        = errors.New("action not permitted")
	ErrAlreadyProcessed    = errors.New("record already processed")
	ErrDuplicateEnrollment = errors.New("enrollment already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a validation failure with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewScheduleConflictError reports a timeslot clash between the candidate
// course and an already-enrolled one. The clashing course and slot label are
// carried as details so the caller can render a precise message.
func NewScheduleConflictError(candidateCourse, clashingCourse, slotLabel string) error {
	return &CustomError{
		Err: ErrScheduleConflict,
		Message: fmt.Sprintf("cannot enroll in %s: slot %s clashes with %s",
			candidateCourse, slotLabel, clashingCourse),
		Details: map[string]interface{}{
			"candidateCourse": candidateCourse,
			"clashingCourse":  clashingCourse,
			"slot":            slotLabel,
		},
	}
}

// NewCreditLimitError reports a credit-ceiling violation with the totals the
// caller needs to explain the rejection.
func NewCreditLimitError(current, attempted, ceiling float64) error {
	return &CustomError{
		Err: ErrCreditLimitExceeded,
		Message: fmt.Sprintf("credit limit exceeded: %.1f enrolled, %.1f after enrollment, ceiling is %.1f",
			current, attempted, ceiling),
		Details: map[string]interface{}{
			"currentCredits":   current,
			"attemptedCredits": attempted,
			"creditCeiling":    ceiling,
		},
	}
}

// NewStateError reports an action attempted against a record that is not in
// the state the actor expects. The record's current status is part of the
// error so the caller can explain "already processed at a different stage"
// instead of a generic denial.
func NewStateError(currentStatus, message string) error {
	return &CustomError{
		Err:     ErrNotPermitted,
		Message: message,
		Details: map[string]interface{}{
			"currentStatus": currentStatus,
		},
	}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrNotPermitted,
		Message: message,
	}
}

// NewAlreadyProcessedError reports a decision attempted on a record that has
// left its pending state.
func NewAlreadyProcessedError(currentStatus string) error {
	return &CustomError{
		Err:     ErrAlreadyProcessed,
		Message: fmt.Sprintf("already processed: current status is %s", currentStatus),
		Details: map[string]interface{}{
			"currentStatus": currentStatus,
		},
	}
}

// Details extracts the detail map from an error, if it carries one.
func Details(err error) map[string]interface{} {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return nil
}
