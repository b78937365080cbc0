package model

// Entity is implemented by every table with a synthetic integer key.
type Entity interface {
	Kind() Kind
	Key() int64
	References() []Reference
}

// Reference is an outgoing foreign key of a row. ID is nil when an optional
// key is unset. Unique references allow at most one referencing row per
// target (the Specification to Object binding).
type Reference struct {
	Column string
	Target Kind
	ID     *int64
	Unique bool
}

// All returns a zero value of every entity and association row type, leaves
// first, in the order tables have to be created.
func All() []interface{} {
	return []interface{}{
		&Complex{},
		&Step{},
		&Specification{},
		&Employee{},
		&PermitType{},
		&Object{},
		&Comment{},
		&Trip{},
		&Permit{},
		&ObjectEmployee{},
		&TripObject{},
		&TripEmployee{},
	}
}

func ref(column string, target Kind, id *int64) Reference {
	return Reference{Column: column, Target: target, ID: id}
}
