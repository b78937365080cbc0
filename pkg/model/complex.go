package model

// Complex groups objects that belong to one site cluster.
type Complex struct {
	ID   int64  `gorm:"column:complex_id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"column:name;size:100;not null" json:"name" yaml:"name" validate:"required,max=100"`
}

func (Complex) TableName() string {
	return KindComplex.Table().Name
}

func (Complex) Kind() Kind {
	return KindComplex
}

func (c Complex) Key() int64 {
	return c.ID
}

func (Complex) References() []Reference {
	return nil
}
