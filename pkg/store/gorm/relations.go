package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// Ensure RelationStore implements store.RelationStore
var _ store.RelationStore = (*RelationStore)(nil)

// RelationStore implements store.RelationStore using GORM
type RelationStore struct {
	db *gorm.DB
}

// NewRelationStore creates a new RelationStore
func NewRelationStore(db *gorm.DB) *RelationStore {
	return &RelationStore{db: db}
}

func (s *RelationStore) ObjectsOfComplex(ctx context.Context, complexID int64) ([]model.Object, error) {
	return referencing[model.Object](ctx, s.db, "complex_id", complexID)
}

func (s *RelationStore) ObjectsOfStep(ctx context.Context, stepID int64) ([]model.Object, error) {
	return referencing[model.Object](ctx, s.db, "step_id", stepID)
}

func (s *RelationStore) ObjectOfSpecification(ctx context.Context, specificationID int64) (*model.Object, error) {
	var object model.Object
	err := s.db.WithContext(ctx).Where("specification_id = ?", specificationID).Take(&object).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("object of specification %d: %w", specificationID, store.ErrNotFound)
		}
		return nil, err
	}
	return &object, nil
}

func (s *RelationStore) CommentsOf(ctx context.Context, objectID int64) ([]model.Comment, error) {
	return referencing[model.Comment](ctx, s.db, "object_id", objectID)
}

func (s *RelationStore) PermitsOfObject(ctx context.Context, objectID int64) ([]model.Permit, error) {
	return referencing[model.Permit](ctx, s.db, "object_id", objectID)
}

func (s *RelationStore) PermitsOfSupervisor(ctx context.Context, employeeID int64) ([]model.Permit, error) {
	return referencing[model.Permit](ctx, s.db, "supervisor_id", employeeID)
}

func (s *RelationStore) PermitsOfType(ctx context.Context, typeID int64) ([]model.Permit, error) {
	return referencing[model.Permit](ctx, s.db, "type_id", typeID)
}

func (s *RelationStore) EmployeesOfObject(ctx context.Context, objectID int64) ([]model.Employee, error) {
	return members[model.Employee](ctx, s.db, model.ObjectEmployees, model.ObjectEmployees.LeftColumn, objectID)
}

func (s *RelationStore) ObjectsOfEmployee(ctx context.Context, employeeID int64) ([]model.Object, error) {
	return members[model.Object](ctx, s.db, model.ObjectEmployees, model.ObjectEmployees.RightColumn, employeeID)
}

func (s *RelationStore) TripsOfObject(ctx context.Context, objectID int64) ([]model.Trip, error) {
	return members[model.Trip](ctx, s.db, model.TripObjects, model.TripObjects.RightColumn, objectID)
}

func (s *RelationStore) ObjectsOfTrip(ctx context.Context, tripID int64) ([]model.Object, error) {
	return members[model.Object](ctx, s.db, model.TripObjects, model.TripObjects.LeftColumn, tripID)
}

func (s *RelationStore) EmployeesOfTrip(ctx context.Context, tripID int64) ([]model.Employee, error) {
	return members[model.Employee](ctx, s.db, model.TripEmployees, model.TripEmployees.LeftColumn, tripID)
}

func (s *RelationStore) TripsOfEmployee(ctx context.Context, employeeID int64) ([]model.Trip, error) {
	return members[model.Trip](ctx, s.db, model.TripEmployees, model.TripEmployees.RightColumn, employeeID)
}

// referencing returns rows of T whose column holds id.
func referencing[T model.Entity](ctx context.Context, db *gorm.DB, column string, id int64) ([]T, error) {
	var zero T
	table := zero.Kind().Table()

	rows := make([]T, 0)
	err := db.WithContext(ctx).
		Where("? = ?", clause.Column{Name: column}, id).
		Order(clause.OrderByColumn{Column: clause.Column{Name: table.PrimaryKey}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", table.Name, column, err)
	}
	return rows, nil
}

// members returns rows of T joined through a membership table, where the
// from column of the membership row holds id.
func members[T model.Entity](ctx context.Context, db *gorm.DB, a model.Association, from string, id int64) ([]T, error) {
	var zero T
	table := zero.Kind().Table()

	to := a.RightColumn
	if from == a.RightColumn {
		to = a.LeftColumn
	}

	rows := make([]T, 0)
	err := db.WithContext(ctx).
		Select(table.Name+".*").
		Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.%s", a.Table.Name, a.Table.Name, to, table.Name, table.PrimaryKey)).
		Where(fmt.Sprintf("%s.%s = ?", a.Table.Name, from), id).
		Order(table.Name + "." + table.PrimaryKey).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s of %s: %w", table.Name, a, err)
	}
	return rows, nil
}
