package model

import "fmt"

// Association describes a many-to-many membership table whose two columns
// form the composite primary key.
type Association struct {
	Table       Table
	Left        Kind
	LeftColumn  string
	Right       Kind
	RightColumn string
}

func (a Association) String() string {
	return a.Table.Name
}

var (
	// ObjectEmployees assigns employees to objects.
	ObjectEmployees = Association{
		Table:       Table{Name: "object_employee"},
		Left:        KindObject,
		LeftColumn:  "object_id",
		Right:       KindEmployee,
		RightColumn: "employee_id",
	}

	// TripObjects lists the objects visited on a trip.
	TripObjects = Association{
		Table:       Table{Name: "trip_object"},
		Left:        KindTrip,
		LeftColumn:  "trip_id",
		Right:       KindObject,
		RightColumn: "object_id",
	}

	// TripEmployees lists the employees travelling on a trip.
	TripEmployees = Association{
		Table:       Table{Name: "trip_employee"},
		Left:        KindTrip,
		LeftColumn:  "trip_id",
		Right:       KindEmployee,
		RightColumn: "employee_id",
	}
)

// Associations returns every membership table of the schema.
func Associations() []Association {
	return []Association{ObjectEmployees, TripObjects, TripEmployees}
}

// AssociationByName looks an association up by its table name.
func AssociationByName(name string) (Association, error) {
	for _, a := range Associations() {
		if a.Table.Name == name {
			return a, nil
		}
	}
	return Association{}, fmt.Errorf("unknown association %q", name)
}

// ObjectEmployee is a row of object_employee.
type ObjectEmployee struct {
	ObjectID   int64 `gorm:"column:object_id;primaryKey;autoIncrement:false"`
	EmployeeID int64 `gorm:"column:employee_id;primaryKey;autoIncrement:false"`
}

func (ObjectEmployee) TableName() string {
	return ObjectEmployees.Table.Name
}

// TripObject is a row of trip_object.
type TripObject struct {
	TripID   int64 `gorm:"column:trip_id;primaryKey;autoIncrement:false"`
	ObjectID int64 `gorm:"column:object_id;primaryKey;autoIncrement:false"`
}

func (TripObject) TableName() string {
	return TripObjects.Table.Name
}

// TripEmployee is a row of trip_employee.
type TripEmployee struct {
	TripID     int64 `gorm:"column:trip_id;primaryKey;autoIncrement:false"`
	EmployeeID int64 `gorm:"column:employee_id;primaryKey;autoIncrement:false"`
}

func (TripEmployee) TableName() string {
	return TripEmployees.Table.Name
}
