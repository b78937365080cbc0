package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// ErrUnknownRef is returned when a record names a label that no earlier
// record of that kind defined.
var ErrUnknownRef = errors.New("unknown ref")

var errDryRun = errors.New("dry run")

// Result reports what a load created.
type Result struct {
	// Created counts inserted rows per table.
	Created map[string]int `json:"created"`
	// IDs maps "kind/ref" to the identifier assigned to the record.
	IDs map[string]int64 `json:"ids"`
}

// Loader inserts fixtures through a store.Registry.
type Loader struct {
	registry store.Registry
	logger   *zap.Logger
	dryRun   bool
}

// NewLoader creates a new fixture loader.
func NewLoader(registry store.Registry, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{registry: registry, logger: logger}
}

// WithDryRun sets whether to validate only without applying changes.
func (l *Loader) WithDryRun(dryRun bool) *Loader {
	l.dryRun = dryRun
	return l
}

// LoadFromReader parses and loads a fixture from an io.Reader.
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) (*Result, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, f)
}

// Load inserts every record of f in one transaction, parents first. Nothing
// is stored if any record fails.
func (l *Loader) Load(ctx context.Context, f *Fixture) (*Result, error) {
	var result *Result
	err := l.registry.Transaction(ctx, func(tx store.Registry) error {
		lc := &loadContext{
			ctx:      ctx,
			registry: tx,
			refs:     make(map[model.Kind]map[string]int64),
			result: &Result{
				Created: make(map[string]int),
				IDs:     make(map[string]int64),
			},
		}
		if err := lc.load(f); err != nil {
			return err
		}
		result = lc.result

		if l.dryRun {
			return errDryRun
		}
		return nil
	})

	if err != nil && l.dryRun && errors.Is(err, errDryRun) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("fixture loaded", zap.Any("created", result.Created))
	return result, nil
}

type loadContext struct {
	ctx      context.Context
	registry store.Registry
	refs     map[model.Kind]map[string]int64
	result   *Result
}

func (lc *loadContext) load(f *Fixture) error {
	for _, r := range f.Complexes {
		row := model.Complex{Name: r.Name}
		if err := create(lc, lc.registry.Complexes(), r.Ref, &row); err != nil {
			return err
		}
	}
	for _, r := range f.Steps {
		row := model.Step{Name: r.Name}
		if err := create(lc, lc.registry.Steps(), r.Ref, &row); err != nil {
			return err
		}
	}
	for _, r := range f.Specifications {
		row := model.Specification{Description: r.Description, Signature: r.Signature}
		if err := create(lc, lc.registry.Specifications(), r.Ref, &row); err != nil {
			return err
		}
	}
	for _, r := range f.Employees {
		row := model.Employee{Name: r.Name}
		if err := create(lc, lc.registry.Employees(), r.Ref, &row); err != nil {
			return err
		}
	}
	for _, r := range f.PermitTypes {
		row := model.PermitType{}
		if err := create(lc, lc.registry.PermitTypes(), r.Ref, &row); err != nil {
			return err
		}
	}
	for _, r := range f.Objects {
		if err := lc.loadObject(r); err != nil {
			return err
		}
	}
	for _, r := range f.Trips {
		if err := lc.loadTrip(r); err != nil {
			return err
		}
	}
	for _, r := range f.Permits {
		if err := lc.loadPermit(r); err != nil {
			return err
		}
	}
	for _, r := range f.Comments {
		if err := lc.loadComment(r); err != nil {
			return err
		}
	}
	return lc.loadLinks(f.Links)
}

func (lc *loadContext) loadObject(r ObjectRecord) error {
	var row model.Object
	var err error
	if row.ComplexID, err = lc.resolve(model.KindComplex, r.Complex); err != nil {
		return err
	}
	if row.StepID, err = lc.resolve(model.KindStep, r.Step); err != nil {
		return err
	}
	if row.SpecificationID, err = lc.resolveOptional(model.KindSpecification, r.Specification); err != nil {
		return err
	}
	if row.DateStart, err = optionalDate(r.DateStart); err != nil {
		return err
	}
	if row.DateExpiration, err = optionalDate(r.DateExpiration); err != nil {
		return err
	}
	row.Name = r.Name
	row.Cypher = r.Cypher
	row.Phase = r.Phase
	return create(lc, lc.registry.Objects(), r.Ref, &row)
}

func (lc *loadContext) loadTrip(r TripRecord) error {
	row := model.Trip{Description: r.Description}
	var err error
	if row.DateIssue, err = date(r.DateIssue); err != nil {
		return err
	}
	if row.DateExpiration, err = date(r.DateExpiration); err != nil {
		return err
	}
	return create(lc, lc.registry.Trips(), r.Ref, &row)
}

func (lc *loadContext) loadPermit(r PermitRecord) error {
	row := model.Permit{PermitNum: r.PermitNum}
	var err error
	if row.ObjectID, err = lc.resolveOptional(model.KindObject, r.Object); err != nil {
		return err
	}
	if row.SupervisorID, err = lc.resolveOptional(model.KindEmployee, r.Supervisor); err != nil {
		return err
	}
	if row.TypeID, err = lc.resolveOptional(model.KindPermitType, r.Type); err != nil {
		return err
	}
	if row.DateIssue, err = date(r.DateIssue); err != nil {
		return err
	}
	if row.DateExpiration, err = date(r.DateExpiration); err != nil {
		return err
	}
	return create(lc, lc.registry.Permits(), r.Ref, &row)
}

func (lc *loadContext) loadComment(r CommentRecord) error {
	row := model.Comment{Description: r.Description}
	var err error
	if row.ObjectID, err = lc.resolveOptional(model.KindObject, r.Object); err != nil {
		return err
	}
	if row.DateComment, err = date(r.Date); err != nil {
		return err
	}
	return create(lc, lc.registry.Comments(), r.Ref, &row)
}

func (lc *loadContext) loadLinks(links Links) error {
	for _, p := range links.ObjectEmployee {
		if err := lc.link(model.ObjectEmployees, p.Object, p.Employee); err != nil {
			return err
		}
	}
	for _, p := range links.TripObject {
		if err := lc.link(model.TripObjects, p.Trip, p.Object); err != nil {
			return err
		}
	}
	for _, p := range links.TripEmployee {
		if err := lc.link(model.TripEmployees, p.Trip, p.Employee); err != nil {
			return err
		}
	}
	return nil
}

func (lc *loadContext) link(a model.Association, leftRef, rightRef string) error {
	left, err := lc.resolve(a.Left, leftRef)
	if err != nil {
		return err
	}
	right, err := lc.resolve(a.Right, rightRef)
	if err != nil {
		return err
	}
	if err := lc.registry.Links().Link(lc.ctx, a, left, right); err != nil {
		return fmt.Errorf("%s %s/%s: %w", a, leftRef, rightRef, err)
	}
	lc.result.Created[a.Table.Name]++
	return nil
}

// create inserts row and records its label.
func create[T model.Entity](lc *loadContext, repo store.Repository[T], ref string, row *T) error {
	kind := (*row).Kind()
	if ref != "" {
		if _, dup := lc.refs[kind][ref]; dup {
			return fmt.Errorf("%s %q: duplicate ref", kind, ref)
		}
	}

	if err := repo.Create(lc.ctx, row); err != nil {
		if ref != "" {
			return fmt.Errorf("%s %q: %w", kind, ref, err)
		}
		return fmt.Errorf("%s: %w", kind, err)
	}

	id := (*row).Key()
	lc.result.Created[kind.Table().Name]++
	if ref != "" {
		if lc.refs[kind] == nil {
			lc.refs[kind] = make(map[string]int64)
		}
		lc.refs[kind][ref] = id
		lc.result.IDs[kind.String()+"/"+ref] = id
	}
	return nil
}

func (lc *loadContext) resolve(kind model.Kind, ref string) (int64, error) {
	if ref == "" {
		return 0, fmt.Errorf("%s ref is required", kind)
	}
	id, ok := lc.refs[kind][ref]
	if !ok {
		return 0, fmt.Errorf("%s %q: %w", kind, ref, ErrUnknownRef)
	}
	return id, nil
}

func (lc *loadContext) resolveOptional(kind model.Kind, ref string) (*int64, error) {
	if ref == "" {
		return nil, nil
	}
	id, err := lc.resolve(kind, ref)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func date(s string) (datatypes.Date, error) {
	if s == "" {
		// Left zero so that validation reports the missing column.
		return datatypes.Date{}, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

func optionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := date(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
