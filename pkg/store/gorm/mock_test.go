package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = mockDB.Close()
	})
	return NewStore(gormDB, nil), mock
}

func expectEmptyComplexCascade(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "complex"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM "objects"`).
		WillReturnRows(sqlmock.NewRows([]string{"object_id"}))
}

func TestDeleteCommitFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	expectEmptyComplexCascade(mock)
	mock.ExpectExec(`DELETE FROM "complex"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset by peer"))

	report, err := s.Delete(context.Background(), model.KindComplex, 1)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, store.ErrTransactionFailure)
}

func TestDeleteSerializationFailure(t *testing.T) {
	s, mock := setupMockStore(t)

	expectEmptyComplexCascade(mock)
	mock.ExpectExec(`DELETE FROM "complex"`).
		WillReturnError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
	mock.ExpectRollback()

	_, err := s.Complexes().Delete(context.Background(), 1)
	require.ErrorIs(t, err, store.ErrTransactionFailure)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "40001", pgErr.Code)
}

func TestDeleteForeignKeySafetyNet(t *testing.T) {
	s, mock := setupMockStore(t)

	expectEmptyComplexCascade(mock)
	mock.ExpectExec(`DELETE FROM "complex"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			TableName:      "objects",
			ConstraintName: "objects_complex_id_fkey",
			Message:        "update or delete on table \"complex\" violates foreign key constraint",
		})
	mock.ExpectRollback()

	_, err := s.Complexes().Delete(context.Background(), 1)
	require.ErrorIs(t, err, store.ErrConstraintViolation)

	var ce *store.ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "objects", ce.Table)
	assert.Equal(t, "objects_complex_id_fkey", ce.Field)
}

func TestCreateUniqueViolationFromDatabase(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "employee"`).
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "employee", ConstraintName: "employee_pkey"})
	mock.ExpectRollback()

	e := model.Employee{Name: "A. Ivanov"}
	err := s.Employees().Create(context.Background(), &e)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestCreateValidationSendsNoStatement(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	c := model.Complex{}
	err := s.Complexes().Create(context.Background(), &c)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestLinkConcurrentDuplicate(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "employee"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_employee"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "trip_employee"`).
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "trip_employee"})
	mock.ExpectRollback()

	err := s.Links().Link(context.Background(), model.TripEmployees, 1, 2)
	assert.ErrorIs(t, err, store.ErrConstraintViolation)
	assert.ErrorIs(t, err, store.ErrDuplicateLink)
}

func TestCheckConnectivity(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectExec(`SELECT 1`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Health().CheckConnectivity(context.Background()))
}
