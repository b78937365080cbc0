package schema

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// Rule says that rows of Table whose Column holds the id of a deleted Parent
// row have to go first.
type Rule struct {
	Parent model.Kind
	Table  model.Table
	Column string
}

// Child returns the entity kind stored in the rule's table. It reports false
// for membership tables, whose rows are removed without further descent.
func (r Rule) Child() (model.Kind, bool) {
	if r.Table.IsAssociation() {
		return 0, false
	}
	for _, k := range model.KindValues() {
		if k.Table() == r.Table {
			return k, true
		}
	}
	return 0, false
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s.%s", r.Parent, r.Table.Name, r.Column)
}

func entityRule(parent, child model.Kind, column string) Rule {
	return Rule{Parent: parent, Table: child.Table(), Column: column}
}

func membershipRule(parent model.Kind, a model.Association) Rule {
	column := a.LeftColumn
	if a.Right == parent {
		column = a.RightColumn
	}
	return Rule{Parent: parent, Table: a.Table, Column: column}
}

// rules is acyclic. Within one parent, rules run in the listed order.
var rules = []Rule{
	entityRule(model.KindComplex, model.KindObject, "complex_id"),
	entityRule(model.KindStep, model.KindObject, "step_id"),
	entityRule(model.KindSpecification, model.KindObject, "specification_id"),

	entityRule(model.KindObject, model.KindComment, "object_id"),
	entityRule(model.KindObject, model.KindPermit, "object_id"),
	membershipRule(model.KindObject, model.ObjectEmployees),
	membershipRule(model.KindObject, model.TripObjects),

	entityRule(model.KindEmployee, model.KindPermit, "supervisor_id"),
	membershipRule(model.KindEmployee, model.ObjectEmployees),
	membershipRule(model.KindEmployee, model.TripEmployees),

	membershipRule(model.KindTrip, model.TripObjects),
	membershipRule(model.KindTrip, model.TripEmployees),

	entityRule(model.KindPermitType, model.KindPermit, "type_id"),
}

// Rules returns the cascade rules of the schema.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// RulesFrom returns the rules whose parent is kind.
func RulesFrom(kind model.Kind) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Parent == kind {
			out = append(out, r)
		}
	}
	return out
}

// Executor runs the statements of a cascade, normally inside one transaction.
type Executor interface {
	// Keys returns the primary keys of rows in table whose column is in ids.
	Keys(ctx context.Context, table model.Table, column string, ids []int64) ([]int64, error)

	// Remove deletes rows in table whose column is in ids and returns how
	// many were removed.
	Remove(ctx context.Context, table model.Table, column string, ids []int64) (int64, error)
}

// Cascade deletes the rows of kind with the given ids together with every
// dependent row, depth first, and reports the removed rows per table. Parents
// are always removed after their dependents.
func Cascade(ctx context.Context, exec Executor, kind model.Kind, ids []int64) (store.Report, error) {
	report := store.Report{}
	if err := cascade(ctx, exec, kind, ids, report); err != nil {
		return nil, err
	}
	return report, nil
}

func cascade(ctx context.Context, exec Executor, kind model.Kind, ids []int64, report store.Report) error {
	if len(ids) == 0 {
		return nil
	}

	for _, rule := range RulesFrom(kind) {
		child, ok := rule.Child()
		if !ok {
			n, err := exec.Remove(ctx, rule.Table, rule.Column, ids)
			if err != nil {
				return fmt.Errorf("cascade %s: %w", rule, err)
			}
			report.Add(rule.Table.Name, n)
			continue
		}

		childIDs, err := exec.Keys(ctx, rule.Table, rule.Column, ids)
		if err != nil {
			return fmt.Errorf("cascade %s: %w", rule, err)
		}
		if err := cascade(ctx, exec, child, childIDs, report); err != nil {
			return err
		}
	}

	table := kind.Table()
	n, err := exec.Remove(ctx, table, table.PrimaryKey, ids)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table.Name, err)
	}
	report.Add(table.Name, n)
	return nil
}
