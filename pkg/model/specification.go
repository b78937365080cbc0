package model

// Specification is the descriptive record bound to at most one object.
type Specification struct {
	ID          int64  `gorm:"column:specification_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Description string `gorm:"column:description;size:300" json:"description" yaml:"description" validate:"max=300"`
	Signature   *bool  `gorm:"column:signature" json:"signature,omitempty" yaml:"signature,omitempty"`
}

func (Specification) TableName() string {
	return KindSpecification.Table().Name
}

func (Specification) Kind() Kind {
	return KindSpecification
}

func (s Specification) Key() int64 {
	return s.ID
}

func (Specification) References() []Reference {
	return nil
}
