package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not valid for the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrInsufficientBalance indicates that a debit would drive a page balance below zero.
var ErrInsufficientBalance = errors.New("insufficient page balance")

// ErrCapabilityMismatch indicates that a printer cannot satisfy the requested print options.
var ErrCapabilityMismatch = errors.New("printer capability mismatch")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure, usually in storage.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and message.
// Storage adapters return it for failures that are fatal to a single operation.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped error. An AppError without a cause unwraps to ErrInternal.
func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CapabilityMismatchError names the request and printer feature that could not be satisfied.
type CapabilityMismatchError struct {
	RequestIndex int
	PrinterID    string
	Feature      string
}

func (e *CapabilityMismatchError) Error() string {
	return fmt.Sprintf("request %d: printer %s does not support %s", e.RequestIndex, e.PrinterID, e.Feature)
}

func (e *CapabilityMismatchError) Unwrap() error { return ErrCapabilityMismatch }

// InsufficientBalanceError carries the current balance and the amount that was required,
// so callers can offer a top-up.
type InsufficientBalanceError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient page balance: have %d, need %d", e.Balance, e.Required)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// NotFoundError names the missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports an operation that is invalid for the resource's current state.
type ConflictError struct {
	Reason string
}

// NewConflictError creates a ConflictError.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string { return "conflict: " + e.Reason }

func (e *ConflictError) Unwrap() error { return ErrConflict }
