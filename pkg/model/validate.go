package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by column name so messages match the schema.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, part := range strings.Split(field.Tag.Get("gorm"), ";") {
			if name, ok := strings.CutPrefix(part, "column:"); ok {
				return name
			}
		}
		return field.Name
	})

	// A zero date is a missing date.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(datatypes.Date)
		if !ok || time.Time(d).IsZero() {
			return ""
		}
		return FormatDate(d)
	}, datatypes.Date{})

	return v
}

// Validate checks required fields and declared column lengths. Lengths are
// counted in characters. The returned error is a validator.ValidationErrors.
func Validate(e Entity) error {
	return validate.Struct(e)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a calendar date in YYYY-MM-DD form.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

// Date is shorthand for a calendar date at midnight UTC.
func Date(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}
