package store

import (
	"context"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
)

// Repository abstracts create/read/update/delete of one entity kind.
type Repository[T model.Entity] interface {
	// Create inserts the row and sets its identifier.
	// Returns ErrConstraintViolation for invalid fields or dangling references.
	Create(ctx context.Context, row *T) error

	// Read returns the row with the given identifier.
	// Returns ErrNotFound if it doesn't exist.
	Read(ctx context.Context, id int64) (*T, error)

	// Update loads the row, applies fn and writes the result in one
	// transaction. The identifier cannot be changed.
	Update(ctx context.Context, id int64, fn func(*T) error) (*T, error)

	// Delete removes the row and every row depending on it.
	// Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id int64) (Report, error)

	// List returns all rows ordered by identifier.
	List(ctx context.Context) ([]T, error)
}

// LinkStore manages rows of the membership tables.
type LinkStore interface {
	// Link adds the (left, right) pair. A pair that is already present fails
	// with ErrConstraintViolation wrapping ErrDuplicateLink.
	Link(ctx context.Context, a model.Association, left, right int64) error

	// Unlink removes the pair. Removing an absent pair is not an error.
	Unlink(ctx context.Context, a model.Association, left, right int64) error

	// Rights returns the right-hand ids linked to left.
	Rights(ctx context.Context, a model.Association, left int64) ([]int64, error)

	// Lefts returns the left-hand ids linked to right.
	Lefts(ctx context.Context, a model.Association, right int64) ([]int64, error)
}

// RelationStore navigates relationships from either side.
type RelationStore interface {
	ObjectsOfComplex(ctx context.Context, complexID int64) ([]model.Object, error)
	ObjectsOfStep(ctx context.Context, stepID int64) ([]model.Object, error)

	// ObjectOfSpecification returns the object bound to the specification.
	// Returns ErrNotFound if the specification is unbound.
	ObjectOfSpecification(ctx context.Context, specificationID int64) (*model.Object, error)

	CommentsOf(ctx context.Context, objectID int64) ([]model.Comment, error)
	PermitsOfObject(ctx context.Context, objectID int64) ([]model.Permit, error)
	PermitsOfSupervisor(ctx context.Context, employeeID int64) ([]model.Permit, error)
	PermitsOfType(ctx context.Context, typeID int64) ([]model.Permit, error)

	EmployeesOfObject(ctx context.Context, objectID int64) ([]model.Employee, error)
	ObjectsOfEmployee(ctx context.Context, employeeID int64) ([]model.Object, error)
	TripsOfObject(ctx context.Context, objectID int64) ([]model.Trip, error)
	ObjectsOfTrip(ctx context.Context, tripID int64) ([]model.Object, error)
	EmployeesOfTrip(ctx context.Context, tripID int64) ([]model.Employee, error)
	TripsOfEmployee(ctx context.Context, employeeID int64) ([]model.Trip, error)
}

// Registry is the entry point to the whole schema.
type Registry interface {
	Complexes() Repository[model.Complex]
	Steps() Repository[model.Step]
	Specifications() Repository[model.Specification]
	Objects() Repository[model.Object]
	Comments() Repository[model.Comment]
	Employees() Repository[model.Employee]
	Trips() Repository[model.Trip]
	PermitTypes() Repository[model.PermitType]
	Permits() Repository[model.Permit]

	Links() LinkStore
	Relations() RelationStore

	// Exists reports whether a row of kind with the given id exists.
	Exists(ctx context.Context, kind model.Kind, id int64) (bool, error)

	// Delete removes a row of the given kind with its dependents.
	Delete(ctx context.Context, kind model.Kind, id int64) (Report, error)

	// Transaction runs fn against a registry bound to one transaction.
	// If fn returns an error, the transaction is rolled back.
	Transaction(ctx context.Context, fn func(Registry) error) error
}
