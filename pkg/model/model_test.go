package model

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindTables(t *testing.T) {
	tests := []struct {
		kind  Kind
		name  string
		table string
		pk    string
	}{
		{KindComplex, "complex", "complex", "complex_id"},
		{KindStep, "step", "step", "step_id"},
		{KindSpecification, "specification", "specification", "specification_id"},
		{KindObject, "object", "objects", "object_id"},
		{KindComment, "comment", "comment", "comment_id"},
		{KindEmployee, "employee", "employee", "employee_id"},
		{KindTrip, "trip", "trip", "trip_id"},
		{KindPermitType, "permit_type", "permit_type", "type_id"},
		{KindPermit, "permit", "permit", "permit_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.table, tt.kind.Table().Name)
			assert.Equal(t, tt.pk, tt.kind.Table().PrimaryKey)
			assert.False(t, tt.kind.Table().IsAssociation())

			parsed, err := KindString(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	assert.Len(t, KindValues(), len(tests))
	_, err := KindString("building")
	assert.Error(t, err)
	assert.False(t, Kind(42).IsAKind())
}

func TestModelTableNames(t *testing.T) {
	assert.Equal(t, "objects", Object{}.TableName())
	assert.Equal(t, "permit_type", PermitType{}.TableName())
	assert.Equal(t, "object_employee", ObjectEmployee{}.TableName())
	assert.Equal(t, "trip_object", TripObject{}.TableName())
	assert.Equal(t, "trip_employee", TripEmployee{}.TableName())
}

func TestAssociationByName(t *testing.T) {
	a, err := AssociationByName("trip_employee")
	require.NoError(t, err)
	assert.Equal(t, KindTrip, a.Left)
	assert.Equal(t, KindEmployee, a.Right)
	assert.True(t, a.Table.IsAssociation())

	_, err = AssociationByName("object_trip")
	assert.Error(t, err)
}

func TestObjectReferences(t *testing.T) {
	specID := int64(9)
	o := Object{ComplexID: 1, StepID: 2, SpecificationID: &specID}

	refs := o.References()
	require.Len(t, refs, 3)
	assert.Equal(t, KindComplex, refs[0].Target)
	assert.Equal(t, int64(1), *refs[0].ID)
	assert.Equal(t, KindStep, refs[1].Target)
	assert.Equal(t, int64(2), *refs[1].ID)
	assert.Equal(t, "specification_id", refs[2].Column)
	assert.True(t, refs[2].Unique)
	assert.Equal(t, int64(9), *refs[2].ID)

	o.SpecificationID = nil
	assert.Nil(t, o.References()[2].ID)
}

func TestPermitReferencesAreOptional(t *testing.T) {
	refs := Permit{}.References()
	require.Len(t, refs, 3)
	for _, r := range refs {
		assert.Nil(t, r.ID, r.Column)
		assert.False(t, r.Unique, r.Column)
	}
}

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return fields
}

func TestValidate(t *testing.T) {
	day := Date(2024, time.March, 1)

	tests := []struct {
		name   string
		entity Entity
		fails  []string
	}{
		{name: "complex ok", entity: Complex{Name: "Site-1"}},
		{name: "complex missing name", entity: Complex{}, fails: []string{"name:required"}},
		{name: "complex name too long", entity: Complex{Name: strings.Repeat("x", 101)}, fails: []string{"name:max"}},
		{name: "complex name counts characters", entity: Complex{Name: strings.Repeat("ж", 100)}},
		{name: "step name too long", entity: Step{Name: strings.Repeat("x", 51)}, fails: []string{"name:max"}},
		{name: "specification description", entity: Specification{Description: strings.Repeat("x", 301)}, fails: []string{"description:max"}},
		{name: "employee without name", entity: Employee{}},
		{name: "employee name too long", entity: Employee{Name: strings.Repeat("x", 51)}, fails: []string{"name:max"}},
		{name: "object ok", entity: Object{ComplexID: 1, StepID: 1, Name: "Unit-7", DateStart: &day}},
		{name: "object missing parents", entity: Object{}, fails: []string{"complex_id:required", "step_id:required"}},
		{name: "object phase too long", entity: Object{ComplexID: 1, StepID: 1, Phase: strings.Repeat("p", 21)}, fails: []string{"phase:max"}},
		{name: "object cypher too long", entity: Object{ComplexID: 1, StepID: 1, Cypher: strings.Repeat("c", 51)}, fails: []string{"cypher:max"}},
		{name: "comment missing date", entity: Comment{}, fails: []string{"date_comment:required"}},
		{name: "comment ok", entity: Comment{DateComment: day, Description: "checked"}},
		{name: "trip missing dates", entity: Trip{}, fails: []string{"date_issue:required", "date_expiration:required"}},
		{name: "trip ok", entity: Trip{DateIssue: day, DateExpiration: day}},
		{name: "permit missing dates", entity: Permit{PermitNum: "P-1"}, fails: []string{"date_issue:required", "date_expiration:required"}},
		{name: "permit number too long", entity: Permit{PermitNum: strings.Repeat("9", 51), DateIssue: day, DateExpiration: day}, fails: []string{"permit_num:max"}},
		{name: "permit type", entity: PermitType{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entity)
			if len(tt.fails) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.fails, failedFields(t, err))
		})
	}
}

func TestExpirationBeforeStartIsAccepted(t *testing.T) {
	trip := Trip{
		DateIssue:      Date(2024, time.May, 10),
		DateExpiration: Date(2024, time.May, 1),
	}
	assert.NoError(t, Validate(trip))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-11-05")
	require.NoError(t, err)
	assert.Equal(t, "2023-11-05", FormatDate(d))
	assert.Equal(t, Date(2023, time.November, 5), d)

	_, err = ParseDate("05.11.2023")
	assert.Error(t, err)
}
