package model

import "gorm.io/datatypes"

// Trip is a business trip over a date range.
type Trip struct {
	ID             int64          `gorm:"column:trip_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	DateIssue      datatypes.Date `gorm:"column:date_issue;not null" json:"date_issue" yaml:"date_issue" validate:"required"`
	DateExpiration datatypes.Date `gorm:"column:date_expiration;not null" json:"date_expiration" yaml:"date_expiration" validate:"required"`
	Description    string         `gorm:"column:description;size:500" json:"description" yaml:"description" validate:"max=500"`
}

func (Trip) TableName() string {
	return KindTrip.Table().Name
}

func (Trip) Kind() Kind {
	return KindTrip
}

func (t Trip) Key() int64 {
	return t.ID
}

func (Trip) References() []Reference {
	return nil
}
