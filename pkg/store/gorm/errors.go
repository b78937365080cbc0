package gorm

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// SQLSTATE codes treated as constraint violations outside class 23.
const stringDataRightTruncation = "22001"

// classify maps an error raised inside a write transaction onto the store
// error kinds. Errors that are already classified pass through unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrConstraintViolation) ||
		errors.Is(err, store.ErrNotFound) ||
		errors.Is(err, store.ErrTransactionFailure) {
		return err
	}
	if ce, ok := constraintError(err); ok {
		return ce
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, store.ErrNotFound)
	}
	return store.TransactionError(op, err)
}

// constraintError recognises constraint violations reported by the database.
func constraintError(err error) (*store.ConstraintError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && isConstraintCode(pgErr.Code) {
		return &store.ConstraintError{
			Table:  pgErr.TableName,
			Field:  firstNonEmpty(pgErr.ColumnName, pgErr.ConstraintName),
			Reason: pgErr.Message,
			Cause:  err,
		}, true
	}

	// Registries opened over a lib/pq database/sql handle report *pq.Error.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && isConstraintCode(string(pqErr.Code)) {
		return &store.ConstraintError{
			Table:  pqErr.Table,
			Field:  firstNonEmpty(pqErr.Column, pqErr.Constraint),
			Reason: pqErr.Message,
			Cause:  err,
		}, true
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &store.ConstraintError{Cause: err}, true
	}
	return nil, false
}

func isConstraintCode(code string) bool {
	return len(code) == 5 && (code[:2] == "23" || code == stringDataRightTruncation)
}

// isDuplicate reports whether err is a unique or primary key violation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// validationError turns the first failed field check into a ConstraintError.
func validationError(table string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &store.ConstraintError{Table: table, Cause: err}
	}

	fe := fieldErrs[0]
	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "max":
		reason = fmt.Sprintf("exceeds %s characters", fe.Param())
	}
	return &store.ConstraintError{Table: table, Field: fe.Field(), Reason: reason}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
