package model

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform snake -output kind.gen.go

// Kind identifies one of the entity tables of the schema.
type Kind int

const (
	KindComplex Kind = iota
	KindStep
	KindSpecification
	KindObject
	KindComment
	KindEmployee
	KindTrip
	KindPermitType
	KindPermit
)

// Table is a physical table. Association tables have a composite key and
// leave PrimaryKey empty.
type Table struct {
	Name       string
	PrimaryKey string
}

// IsAssociation reports whether the table is a membership table.
func (t Table) IsAssociation() bool {
	return t.PrimaryKey == ""
}

func (t Table) String() string {
	return t.Name
}

var kindTables = [...]Table{
	KindComplex:       {Name: "complex", PrimaryKey: "complex_id"},
	KindStep:          {Name: "step", PrimaryKey: "step_id"},
	KindSpecification: {Name: "specification", PrimaryKey: "specification_id"},
	KindObject:        {Name: "objects", PrimaryKey: "object_id"},
	KindComment:       {Name: "comment", PrimaryKey: "comment_id"},
	KindEmployee:      {Name: "employee", PrimaryKey: "employee_id"},
	KindTrip:          {Name: "trip", PrimaryKey: "trip_id"},
	KindPermitType:    {Name: "permit_type", PrimaryKey: "type_id"},
	KindPermit:        {Name: "permit", PrimaryKey: "permit_id"},
}

// Table returns the table backing the kind. It panics for values outside the
// enum; use IsAKind on untrusted input.
func (k Kind) Table() Table {
	return kindTables[k]
}
