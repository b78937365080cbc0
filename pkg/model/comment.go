package model

import "gorm.io/datatypes"

// Comment is a dated free-text annotation on an object.
type Comment struct {
	ID          int64          `gorm:"column:comment_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	ObjectID    *int64         `gorm:"column:object_id;index" json:"object_id,omitempty" yaml:"object_id,omitempty"`
	DateComment datatypes.Date `gorm:"column:date_comment;not null" json:"date_comment" yaml:"date_comment" validate:"required"`
	Description string         `gorm:"column:description;size:500" json:"description" yaml:"description" validate:"max=500"`
}

func (Comment) TableName() string {
	return KindComment.Table().Name
}

func (Comment) Kind() Kind {
	return KindComment
}

func (c Comment) Key() int64 {
	return c.ID
}

func (c Comment) References() []Reference {
	return []Reference{ref("object_id", KindObject, c.ObjectID)}
}
