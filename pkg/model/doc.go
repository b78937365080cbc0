// Package model defines the database models of the site registry.
//
// Every entity is a GORM model with a synthetic integer key assigned on
// insert. Models carry no association fields: relationships are declared as
// References (outgoing foreign keys) and Associations (membership tables),
// and are navigated through the store's accessor operations.
//
// # Entities
//
//   - Complex: a group of objects (complex)
//   - Step: a lifecycle phase (step)
//   - Specification: descriptive record bound to at most one object (specification)
//   - Object: a tracked site or unit (objects)
//   - Comment: dated note on an object (comment)
//   - Employee: a staff member (employee)
//   - Trip: a business trip (trip)
//   - PermitType: permit classification (permit_type)
//   - Permit: an authorization document (permit)
//
// # Membership tables
//
//   - object_employee: objects to employees
//   - trip_object: trips to objects
//   - trip_employee: trips to employees
//
// Dates are calendar dates stored in date columns. Field limits are declared
// with validate tags and checked by Validate before any write.
package model
