package store

import (
	"errors"
	"fmt"
)

// ErrConstraintViolation is returned when a write would break a schema
// constraint: a missing required field, an over-long value, a dangling
// reference or a duplicate membership edge.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrNotFound is returned when an operation targets an identifier that does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrTransactionFailure is returned when the storage engine could not commit
// a transaction. Nothing of the failed operation is persisted.
var ErrTransactionFailure = errors.New("transaction failure")

// ErrDuplicateLink is returned by Link when the pair is already a member. It
// is always wrapped in a ConstraintError.
var ErrDuplicateLink = errors.New("duplicate link")

// ConstraintError describes which table and field a constraint violation
// concerns. It matches ErrConstraintViolation with errors.Is.
type ConstraintError struct {
	Table  string
	Field  string
	Reason string
	Cause  error
}

func (e *ConstraintError) Error() string {
	msg := "constraint violation on " + e.Table
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func (e *ConstraintError) Unwrap() error {
	return e.Cause
}

// NotFoundError wraps ErrNotFound with the table and identifier looked up.
func NotFoundError(table string, id int64) error {
	return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
}

// TransactionError wraps ErrTransactionFailure around the engine error.
func TransactionError(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransactionFailure, cause)
}
