package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/seed"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc      *TestContext
	ctx     context.Context
	ids     map[string]int64
	lastErr error
	report  store.Report
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:  tc,
		ctx: context.Background(),
		ids: make(map[string]int64),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an empty registry$`, s.anEmptyRegistry)

	// Record steps
	sc.Step(`^a complex "([^"]*)"$`, s.aComplex)
	sc.Step(`^a step "([^"]*)"$`, s.aStep)
	sc.Step(`^a specification "([^"]*)"$`, s.aSpecification)
	sc.Step(`^an employee "([^"]*)"$`, s.anEmployee)
	sc.Step(`^an object "([^"]*)" in complex "([^"]*)" at step "([^"]*)"$`, s.anObject)
	sc.Step(`^object "([^"]*)" is bound to specification "([^"]*)"$`, s.objectIsBoundToSpecification)
	sc.Step(`^(\d+) comments on object "([^"]*)"$`, s.commentsOnObject)
	sc.Step(`^employee "([^"]*)" is assigned to object "([^"]*)"$`, s.employeeIsAssignedToObject)
	sc.Step(`^I try to create an object "([^"]*)" in a missing complex$`, s.iTryToCreateObjectInMissingComplex)
	sc.Step(`^I try to assign employee "([^"]*)" to object "([^"]*)" again$`, s.iTryToAssignAgain)
	sc.Step(`^I load the fixture "([^"]*)"$`, s.iLoadTheFixture)

	// Delete steps
	sc.Step(`^I delete (\w+) "([^"]*)"$`, s.iDelete)
	sc.Step(`^the delete should report (\d+) rows? from "([^"]*)"$`, s.theDeleteShouldReport)

	// Schema steps
	sc.Step(`^I bootstrap the schema again$`, s.iBootstrapTheSchemaAgain)
	sc.Step(`^the schema version should be (\d+)$`, s.theSchemaVersionShouldBe)

	// Assertion steps
	sc.Step(`^the (\w+) "([^"]*)" should exist$`, s.theRecordShouldExist)
	sc.Step(`^the (\w+) "([^"]*)" should not exist$`, s.theRecordShouldNotExist)
	sc.Step(`^table "([^"]*)" should have (\d+) rows?$`, s.tableShouldHaveRows)
	sc.Step(`^the operation should fail with a constraint violation$`, s.theOperationShouldFailWithConstraintViolation)
	sc.Step(`^the operation should succeed$`, s.theOperationShouldSucceed)
}

// Background steps

func (s *StepsContext) anEmptyRegistry() error {
	tables := make([]string, 0)
	for _, a := range model.Associations() {
		tables = append(tables, a.Table.Name)
	}
	for _, k := range model.KindValues() {
		tables = append(tables, k.Table().Name)
	}
	_, err := s.tc.RawDB.Exec("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY")
	return err
}

// Record steps

func (s *StepsContext) remember(kind model.Kind, name string, id int64) {
	s.ids[kind.String()+"/"+name] = id
}

func (s *StepsContext) lookup(kind model.Kind, name string) (int64, error) {
	id, ok := s.ids[kind.String()+"/"+name]
	if !ok {
		return 0, fmt.Errorf("no %s named %q in this scenario", kind, name)
	}
	return id, nil
}

func (s *StepsContext) aComplex(name string) error {
	row := model.Complex{Name: name}
	if err := s.tc.Store.Complexes().Create(s.ctx, &row); err != nil {
		return err
	}
	s.remember(model.KindComplex, name, row.ID)
	return nil
}

func (s *StepsContext) aStep(name string) error {
	row := model.Step{Name: name}
	if err := s.tc.Store.Steps().Create(s.ctx, &row); err != nil {
		return err
	}
	s.remember(model.KindStep, name, row.ID)
	return nil
}

func (s *StepsContext) aSpecification(description string) error {
	row := model.Specification{Description: description}
	if err := s.tc.Store.Specifications().Create(s.ctx, &row); err != nil {
		return err
	}
	s.remember(model.KindSpecification, description, row.ID)
	return nil
}

func (s *StepsContext) anEmployee(name string) error {
	row := model.Employee{Name: name}
	if err := s.tc.Store.Employees().Create(s.ctx, &row); err != nil {
		return err
	}
	s.remember(model.KindEmployee, name, row.ID)
	return nil
}

func (s *StepsContext) anObject(name, complexName, stepName string) error {
	complexID, err := s.lookup(model.KindComplex, complexName)
	if err != nil {
		return err
	}
	stepID, err := s.lookup(model.KindStep, stepName)
	if err != nil {
		return err
	}

	row := model.Object{ComplexID: complexID, StepID: stepID, Name: name}
	if err := s.tc.Store.Objects().Create(s.ctx, &row); err != nil {
		return err
	}
	s.remember(model.KindObject, name, row.ID)
	return nil
}

func (s *StepsContext) objectIsBoundToSpecification(objectName, specName string) error {
	objectID, err := s.lookup(model.KindObject, objectName)
	if err != nil {
		return err
	}
	specID, err := s.lookup(model.KindSpecification, specName)
	if err != nil {
		return err
	}

	_, err = s.tc.Store.Objects().Update(s.ctx, objectID, func(o *model.Object) error {
		o.SpecificationID = &specID
		return nil
	})
	return err
}

func (s *StepsContext) commentsOnObject(count int, objectName string) error {
	objectID, err := s.lookup(model.KindObject, objectName)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		row := model.Comment{
			ObjectID:    &objectID,
			DateComment: model.Date(2024, time.January, i+1),
			Description: fmt.Sprintf("note %d", i+1),
		}
		if err := s.tc.Store.Comments().Create(s.ctx, &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) assign(employeeName, objectName string) error {
	employeeID, err := s.lookup(model.KindEmployee, employeeName)
	if err != nil {
		return err
	}
	objectID, err := s.lookup(model.KindObject, objectName)
	if err != nil {
		return err
	}
	return s.tc.Store.Links().Link(s.ctx, model.ObjectEmployees, objectID, employeeID)
}

func (s *StepsContext) employeeIsAssignedToObject(employeeName, objectName string) error {
	return s.assign(employeeName, objectName)
}

func (s *StepsContext) iTryToAssignAgain(employeeName, objectName string) error {
	s.lastErr = s.assign(employeeName, objectName)
	return nil
}

func (s *StepsContext) iTryToCreateObjectInMissingComplex(name string) error {
	var stepID int64
	for key, id := range s.ids {
		if strings.HasPrefix(key, model.KindStep.String()+"/") {
			stepID = id
		}
	}

	row := model.Object{ComplexID: 1 << 40, StepID: stepID, Name: name}
	s.lastErr = s.tc.Store.Objects().Create(s.ctx, &row)
	return nil
}

func (s *StepsContext) iLoadTheFixture(name string) error {
	path := filepath.Join(s.tc.ProjectRoot, "pkg", "seed", "testdata", name)
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, s.lastErr = seed.NewLoader(s.tc.Store, nil).LoadFromReader(s.ctx, file)
	return nil
}

// Delete steps

func (s *StepsContext) iDelete(kindName, name string) error {
	kind, err := model.KindString(kindName)
	if err != nil {
		return err
	}
	id, err := s.lookup(kind, name)
	if err != nil {
		return err
	}

	s.report, s.lastErr = s.tc.Store.Delete(s.ctx, kind, id)
	return s.lastErr
}

func (s *StepsContext) theDeleteShouldReport(count int, table string) error {
	if got := s.report[table]; got != int64(count) {
		return fmt.Errorf("expected %d rows removed from %s, got %d (%s)", count, table, got, s.report)
	}
	return nil
}

// Schema steps

func (s *StepsContext) iBootstrapTheSchemaAgain() error {
	return s.tc.Schema.Bootstrap(s.ctx)
}

func (s *StepsContext) theSchemaVersionShouldBe(want int) error {
	version, dirty, err := s.tc.Schema.Version(s.ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema is dirty")
	}
	if version != uint(want) {
		return fmt.Errorf("expected schema version %d, got %d", want, version)
	}
	return nil
}

// Assertion steps

func (s *StepsContext) recordExists(kindName, name string) (bool, error) {
	kind, err := model.KindString(kindName)
	if err != nil {
		return false, err
	}
	id, err := s.lookup(kind, name)
	if err != nil {
		return false, err
	}
	return s.tc.Store.Exists(s.ctx, kind, id)
}

func (s *StepsContext) theRecordShouldExist(kindName, name string) error {
	ok, err := s.recordExists(kindName, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %q does not exist", kindName, name)
	}
	return nil
}

func (s *StepsContext) theRecordShouldNotExist(kindName, name string) error {
	ok, err := s.recordExists(kindName, name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%s %q still exists", kindName, name)
	}
	return nil
}

func (s *StepsContext) tableShouldHaveRows(table string, want int) error {
	if !knownTable(table) {
		return fmt.Errorf("unknown table %q", table)
	}

	var count int
	if err := s.tc.RawDB.QueryRow("SELECT count(*) FROM " + table).Scan(&count); err != nil {
		return err
	}
	if count != want {
		return fmt.Errorf("expected %d rows in %s, got %d", want, table, count)
	}
	return nil
}

func (s *StepsContext) theOperationShouldFailWithConstraintViolation() error {
	if s.lastErr == nil {
		return fmt.Errorf("expected a constraint violation, got success")
	}
	if !errors.Is(s.lastErr, store.ErrConstraintViolation) {
		return fmt.Errorf("expected a constraint violation, got %v", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldSucceed() error {
	return s.lastErr
}

func knownTable(name string) bool {
	for _, k := range model.KindValues() {
		if k.Table().Name == name {
			return true
		}
	}
	_, err := model.AssociationByName(name)
	return err == nil
}
