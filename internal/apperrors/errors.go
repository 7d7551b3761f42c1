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

// ErrInvalidState indicates an operation on an entity whose lifecycle status
// forbids it, such as overriding or re-posting an already-posted classification.
// Callers must not retry; the state will not change on its own.
var ErrInvalidState = errors.New("entity is not in a valid state for this operation")

// ErrPosting indicates that posting preconditions were not met (inactive or
// missing account, already-posted classification). Callers must re-verify
// current state before any retry: blindly retrying a successful post would
// duplicate the entry.
var ErrPosting = errors.New("posting preconditions not met")

// ErrConsistency indicates a ledger imbalance. It always points at a defect in
// the posting path and is surfaced, never absorbed.
var ErrConsistency = errors.New("ledger consistency violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// RuleValidationError reports a single malformed classification rule. One
// invalid rule never blocks loading of the rest of the set, so loaders return
// a slice of these alongside the valid rules.
type RuleValidationError struct {
	RuleName string
	Reason   string
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("invalid rule %q: %s", e.RuleName, e.Reason)
}

func (e *RuleValidationError) Unwrap() error {
	return ErrValidation
}

// PostingError carries diagnostic context for a failed posting attempt.
type PostingError struct {
	ClassificationID string
	AccountID        string
	Reason           string
}

func (e *PostingError) Error() string {
	if e.AccountID != "" {
		return fmt.Sprintf("cannot post classification %s: %s (account %s)", e.ClassificationID, e.Reason, e.AccountID)
	}
	return fmt.Sprintf("cannot post classification %s: %s", e.ClassificationID, e.Reason)
}

func (e *PostingError) Unwrap() error {
	return ErrPosting
}

// AppError wraps a lower-level error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
