package model

import "gorm.io/datatypes"

// PermitType classifies permits. It has no attributes besides its key.
type PermitType struct {
	ID int64 `gorm:"column:type_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
}

func (PermitType) TableName() string {
	return KindPermitType.Table().Name
}

func (PermitType) Kind() Kind {
	return KindPermitType
}

func (p PermitType) Key() int64 {
	return p.ID
}

func (PermitType) References() []Reference {
	return nil
}

// Permit is an authorization document for an object, supervised by an
// employee.
type Permit struct {
	ID             int64          `gorm:"column:permit_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	PermitNum      string         `gorm:"column:permit_num;size:50" json:"permit_num" yaml:"permit_num" validate:"max=50"`
	ObjectID       *int64         `gorm:"column:object_id;index" json:"object_id,omitempty" yaml:"object_id,omitempty"`
	SupervisorID   *int64         `gorm:"column:supervisor_id;index" json:"supervisor_id,omitempty" yaml:"supervisor_id,omitempty"`
	DateIssue      datatypes.Date `gorm:"column:date_issue;not null" json:"date_issue" yaml:"date_issue" validate:"required"`
	DateExpiration datatypes.Date `gorm:"column:date_expiration;not null" json:"date_expiration" yaml:"date_expiration" validate:"required"`
	TypeID         *int64         `gorm:"column:type_id;index" json:"type_id,omitempty" yaml:"type_id,omitempty"`
}

func (Permit) TableName() string {
	return KindPermit.Table().Name
}

func (Permit) Kind() Kind {
	return KindPermit
}

func (p Permit) Key() int64 {
	return p.ID
}

func (p Permit) References() []Reference {
	return []Reference{
		ref("object_id", KindObject, p.ObjectID),
		ref("supervisor_id", KindEmployee, p.SupervisorID),
		ref("type_id", KindPermitType, p.TypeID),
	}
}
