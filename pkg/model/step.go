package model

// Step is a lifecycle phase label assigned to objects.
type Step struct {
	ID   int64  `gorm:"column:step_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"column:name;size:50;not null" json:"name" yaml:"name" validate:"required,max=50"`
}

func (Step) TableName() string {
	return KindStep.Table().Name
}

func (Step) Kind() Kind {
	return KindStep
}

func (s Step) Key() int64 {
	return s.ID
}

func (Step) References() []Reference {
	return nil
}
