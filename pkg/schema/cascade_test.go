package schema

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
)

type row struct {
	key  int64
	cols map[string]int64
}

// fakeExecutor keeps rows in memory and records every statement it runs.
type fakeExecutor struct {
	tables map[string][]row
	log    []string
	failOn string
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{tables: map[string][]row{}}
}

func (f *fakeExecutor) insert(table string, key int64, cols map[string]int64) {
	f.tables[table] = append(f.tables[table], row{key: key, cols: cols})
}

func (f *fakeExecutor) value(r row, table model.Table, column string) int64 {
	if column == table.PrimaryKey {
		return r.key
	}
	return r.cols[column]
}

func (f *fakeExecutor) Keys(_ context.Context, table model.Table, column string, ids []int64) ([]int64, error) {
	f.log = append(f.log, fmt.Sprintf("keys %s.%s %v", table.Name, column, ids))
	var out []int64
	for _, r := range f.tables[table.Name] {
		if contains(ids, f.value(r, table, column)) {
			out = append(out, r.key)
		}
	}
	return out, nil
}

func (f *fakeExecutor) Remove(_ context.Context, table model.Table, column string, ids []int64) (int64, error) {
	f.log = append(f.log, fmt.Sprintf("remove %s.%s %v", table.Name, column, ids))
	if table.Name == f.failOn {
		return 0, errors.New("boom")
	}
	var kept []row
	var n int64
	for _, r := range f.tables[table.Name] {
		if contains(ids, f.value(r, table, column)) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.tables[table.Name] = kept
	return n, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// seedComplex stores one complex with two objects, three comments on the
// first object, one permit each, and an employee linked to both objects.
func seedComplex(f *fakeExecutor) {
	f.insert("complex", 1, nil)
	f.insert("step", 1, nil)
	f.insert("employee", 1, nil)
	f.insert("objects", 10, map[string]int64{"complex_id": 1, "step_id": 1})
	f.insert("objects", 11, map[string]int64{"complex_id": 1, "step_id": 1})
	f.insert("comment", 100, map[string]int64{"object_id": 10})
	f.insert("comment", 101, map[string]int64{"object_id": 10})
	f.insert("comment", 102, map[string]int64{"object_id": 10})
	f.insert("permit", 200, map[string]int64{"object_id": 10})
	f.insert("permit", 201, map[string]int64{"object_id": 11})
	f.insert("object_employee", 0, map[string]int64{"object_id": 10, "employee_id": 1})
	f.insert("object_employee", 0, map[string]int64{"object_id": 11, "employee_id": 1})
}

func TestCascadeComplex(t *testing.T) {
	f := newFakeExecutor()
	seedComplex(f)

	report, err := Cascade(context.Background(), f, model.KindComplex, []int64{1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report["complex"])
	assert.Equal(t, int64(2), report["objects"])
	assert.Equal(t, int64(3), report["comment"])
	assert.Equal(t, int64(2), report["permit"])
	assert.Equal(t, int64(2), report["object_employee"])
	assert.Equal(t, int64(10), report.Total())

	assert.Len(t, f.tables["employee"], 1)
	assert.Len(t, f.tables["step"], 1)
	assert.Empty(t, f.tables["objects"])
}

func TestCascadeDeletesChildrenBeforeParents(t *testing.T) {
	f := newFakeExecutor()
	seedComplex(f)

	_, err := Cascade(context.Background(), f, model.KindComplex, []int64{1})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"keys objects.complex_id [1]",
		"keys comment.object_id [10 11]",
		"remove comment.comment_id [100 101 102]",
		"keys permit.object_id [10 11]",
		"remove permit.permit_id [200 201]",
		"remove object_employee.object_id [10 11]",
		"remove trip_object.object_id [10 11]",
		"remove objects.object_id [10 11]",
		"remove complex.complex_id [1]",
	}, f.log)
}

func TestCascadeWithoutDependents(t *testing.T) {
	f := newFakeExecutor()
	f.insert("specification", 5, nil)

	report, err := Cascade(context.Background(), f, model.KindSpecification, []int64{5})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report["specification"])
	assert.Equal(t, int64(1), report.Total())
	assert.Equal(t, []string{
		"keys objects.specification_id [5]",
		"remove specification.specification_id [5]",
	}, f.log)
}

func TestCascadeEmployeeKeepsObjects(t *testing.T) {
	f := newFakeExecutor()
	seedComplex(f)
	f.insert("permit", 202, map[string]int64{"supervisor_id": 1})
	f.insert("trip_employee", 0, map[string]int64{"trip_id": 7, "employee_id": 1})

	report, err := Cascade(context.Background(), f, model.KindEmployee, []int64{1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report["employee"])
	assert.Equal(t, int64(1), report["permit"])
	assert.Equal(t, int64(2), report["object_employee"])
	assert.Equal(t, int64(1), report["trip_employee"])
	assert.Len(t, f.tables["objects"], 2)
	assert.Len(t, f.tables["permit"], 2)
}

func TestCascadeStopsOnError(t *testing.T) {
	f := newFakeExecutor()
	seedComplex(f)
	f.failOn = "permit"

	report, err := Cascade(context.Background(), f, model.KindComplex, []int64{1})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "boom")
	assert.NotContains(t, f.log, "remove complex.complex_id [1]")
}

func TestCascadeNoIDs(t *testing.T) {
	f := newFakeExecutor()

	report, err := Cascade(context.Background(), f, model.KindTrip, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total())
	assert.Empty(t, f.log)
}

func TestRules(t *testing.T) {
	for _, r := range Rules() {
		assert.NotEqual(t, r.Parent.Table(), r.Table, r.String())
		if child, ok := r.Child(); ok {
			assert.False(t, child.Table().IsAssociation())
		}
	}

	var comment []Rule
	comment = append(comment, RulesFrom(model.KindComment)...)
	comment = append(comment, RulesFrom(model.KindPermit)...)
	assert.Empty(t, comment)

	assert.Equal(t, "trip -> trip_object.trip_id", RulesFrom(model.KindTrip)[0].String())
	assert.Equal(t, "object -> trip_object.object_id", RulesFrom(model.KindObject)[3].String())
}

// Every kind reachable from a rule must terminate, i.e. the graph is acyclic.
func TestRulesAreAcyclic(t *testing.T) {
	var visit func(k model.Kind, path map[model.Kind]bool)
	visit = func(k model.Kind, path map[model.Kind]bool) {
		require.False(t, path[k], "cycle through %s", k)
		path[k] = true
		for _, r := range RulesFrom(k) {
			if child, ok := r.Child(); ok {
				visit(child, path)
			}
		}
		delete(path, k)
	}
	for _, k := range model.KindValues() {
		visit(k, map[model.Kind]bool{})
	}
}
