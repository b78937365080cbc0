package model

// Employee is a staff member. Employees supervise permits and are assigned
// to objects and trips.
type Employee struct {
	ID   int64  `gorm:"column:employee_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"column:name;size:50" json:"name" yaml:"name" validate:"max=50"`
}

func (Employee) TableName() string {
	return KindEmployee.Table().Name
}

func (Employee) Kind() Kind {
	return KindEmployee
}

func (e Employee) Key() int64 {
	return e.ID
}

func (Employee) References() []Reference {
	return nil
}
