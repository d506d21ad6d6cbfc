package finance

import (
	"errors"
	"fmt"
)

// Validation sentinels. They are reported wrapped in a *ValidationError that
// names the offending field.
var (
	ErrEmptyName            = errors.New("name is required")
	ErrNameTooLong          = errors.New("name too long (max 200 characters)")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrInvalidTarget        = errors.New("target amount must be a positive number")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrCurrentExceedsTarget = errors.New("current amount cannot be greater than target amount")
	ErrInvalidDate          = errors.New("a valid date is required")
	ErrDuplicateID          = errors.New("duplicate identifier")
	ErrMissingID            = errors.New("identifier is required")
)

// Command sentinels.
var (
	ErrExpenseNotFound           = errors.New("expense not found")
	ErrGoalNotFound              = errors.New("saving goal not found")
	ErrGoalNotFunded             = errors.New("saving goal is not fully funded")
	ErrContributionExceedsTarget = errors.New("contribution would exceed the goal target")
	ErrTargetBelowCurrent        = errors.New("target amount cannot be lower than the amount already saved")
)

// ErrPersistence wraps every failure reported by a Store.
// The in-memory state is unchanged when it is returned.
var ErrPersistence = errors.New("persistence failure")

// ErrImportFormat is returned for malformed import documents.
var ErrImportFormat = errors.New("invalid import format")

// ValidationError reports an invalid field of an input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
