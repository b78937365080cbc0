package gorm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/schema"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// Ensure Store implements store.Registry
var _ store.Registry = (*Store)(nil)

// Store implements store.Registry using GORM
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a new Store
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Complexes() store.Repository[model.Complex] {
	return newRepository[model.Complex](s)
}

func (s *Store) Steps() store.Repository[model.Step] {
	return newRepository[model.Step](s)
}

func (s *Store) Specifications() store.Repository[model.Specification] {
	return newRepository[model.Specification](s)
}

func (s *Store) Objects() store.Repository[model.Object] {
	return newRepository[model.Object](s)
}

func (s *Store) Comments() store.Repository[model.Comment] {
	return newRepository[model.Comment](s)
}

func (s *Store) Employees() store.Repository[model.Employee] {
	return newRepository[model.Employee](s)
}

func (s *Store) Trips() store.Repository[model.Trip] {
	return newRepository[model.Trip](s)
}

func (s *Store) PermitTypes() store.Repository[model.PermitType] {
	return newRepository[model.PermitType](s)
}

func (s *Store) Permits() store.Repository[model.Permit] {
	return newRepository[model.Permit](s)
}

func (s *Store) Links() store.LinkStore {
	return &LinkStore{store: s}
}

func (s *Store) Relations() store.RelationStore {
	return &RelationStore{db: s.db}
}

func (s *Store) Health() store.HealthStore {
	return NewHealthStore(s.db)
}

// Exists reports whether a row of kind with the given id exists.
func (s *Store) Exists(ctx context.Context, kind model.Kind, id int64) (bool, error) {
	if !kind.IsAKind() {
		return false, unknownKind(kind)
	}
	return exists(s.db.WithContext(ctx), kind, id)
}

// Delete removes the row and, depth first, every row depending on it in one
// transaction.
func (s *Store) Delete(ctx context.Context, kind model.Kind, id int64) (store.Report, error) {
	if !kind.IsAKind() {
		return nil, unknownKind(kind)
	}
	table := kind.Table()

	var report store.Report
	err := s.write(ctx, fmt.Sprintf("delete %s %d", kind, id), func(tx *gorm.DB) error {
		found, err := exists(tx, kind, id)
		if err != nil {
			return err
		}
		if !found {
			return store.NotFoundError(table.Name, id)
		}

		report, err = schema.Cascade(ctx, executor{tx: tx}, kind, []int64{id})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cascade delete",
		zap.Stringer("kind", kind),
		zap.Int64("id", id),
		zap.Stringer("removed", report),
	)
	return report, nil
}

// Transaction runs fn against a Store bound to a single transaction.
func (s *Store) Transaction(ctx context.Context, fn func(store.Registry) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, logger: s.logger})
	})
	return classify("transaction", err)
}

func unknownKind(kind model.Kind) error {
	return fmt.Errorf("unknown kind %d", int(kind))
}

// write runs fn in a transaction and classifies its error.
func (s *Store) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return classify(op, s.db.WithContext(ctx).Transaction(fn))
}

func exists(db *gorm.DB, kind model.Kind, id int64) (bool, error) {
	table := kind.Table()

	var count int64
	err := db.Table(table.Name).
		Where("? = ?", clause.Column{Name: table.PrimaryKey}, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// executor runs cascade statements on a transaction.
type executor struct {
	tx *gorm.DB
}

func (e executor) Keys(ctx context.Context, table model.Table, column string, ids []int64) ([]int64, error) {
	var keys []int64
	err := e.tx.WithContext(ctx).Table(table.Name).
		Where("? IN ?", clause.Column{Name: column}, ids).
		Order(clause.OrderByColumn{Column: clause.Column{Name: table.PrimaryKey}}).
		Pluck(table.PrimaryKey, &keys).Error
	return keys, err
}

func (e executor) Remove(ctx context.Context, table model.Table, column string, ids []int64) (int64, error) {
	result := e.tx.WithContext(ctx).Exec(
		"DELETE FROM ? WHERE ? IN ?",
		clause.Table{Name: table.Name}, clause.Column{Name: column}, ids,
	)
	return result.RowsAffected, result.Error
}
