package model

import "gorm.io/datatypes"

// Object is a tracked physical site or unit.
type Object struct {
	ID              int64           `gorm:"column:object_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	ComplexID       int64           `gorm:"column:complex_id;not null;index" json:"complex_id" yaml:"complex_id" validate:"required"`
	StepID          int64           `gorm:"column:step_id;not null;index" json:"step_id" yaml:"step_id" validate:"required"`
	SpecificationID *int64          `gorm:"column:specification_id;index" json:"specification_id,omitempty" yaml:"specification_id,omitempty"`
	Name            string          `gorm:"column:name_object;size:100" json:"name_object" yaml:"name_object" validate:"max=100"`
	DateStart       *datatypes.Date `gorm:"column:date_start" json:"date_start,omitempty" yaml:"date_start,omitempty"`
	DateExpiration  *datatypes.Date `gorm:"column:date_expiration" json:"date_expiration,omitempty" yaml:"date_expiration,omitempty"`
	Cypher          string          `gorm:"column:cypher;size:50" json:"cypher" yaml:"cypher" validate:"max=50"`
	Phase           string          `gorm:"column:phase;size:20" json:"phase" yaml:"phase" validate:"max=20"`
}

func (Object) TableName() string {
	return KindObject.Table().Name
}

func (Object) Kind() Kind {
	return KindObject
}

func (o Object) Key() int64 {
	return o.ID
}

func (o Object) References() []Reference {
	spec := ref("specification_id", KindSpecification, o.SpecificationID)
	spec.Unique = true
	return []Reference{
		ref("complex_id", KindComplex, &o.ComplexID),
		ref("step_id", KindStep, &o.StepID),
		spec,
	}
}
