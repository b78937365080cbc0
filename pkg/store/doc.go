// Package store provides storage abstractions for the site registry.
//
// This package defines the interfaces consumers use to create, read, update
// and delete rows of the schema, manage membership links, and navigate
// relationships, so that callers are decoupled from the GORM implementation
// in the gorm subpackage.
//
// # Available Stores
//
//   - Repository: per-kind CRUD with cascading delete
//   - LinkStore: object_employee, trip_object and trip_employee membership
//   - RelationStore: accessors such as ObjectsOfComplex and CommentsOf
//   - Registry: all of the above plus transactions
//   - HealthStore: connectivity check
//
// # Errors
//
//	_, err := registry.Objects().Read(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // Handle not found
//	}
//
// ErrConstraintViolation, ErrNotFound and ErrTransactionFailure are the only
// error kinds callers need to distinguish.
package store
