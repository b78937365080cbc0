package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// Ensure Repository implements store.Repository
var _ store.Repository[model.Object] = (*Repository[model.Object])(nil)

// Repository implements store.Repository for one entity kind using GORM
type Repository[T model.Entity] struct {
	store *Store
	kind  model.Kind
	table model.Table
}

func newRepository[T model.Entity](s *Store) *Repository[T] {
	var zero T
	return &Repository[T]{store: s, kind: zero.Kind(), table: zero.Kind().Table()}
}

// Create validates and inserts row. The identifier is assigned by the
// database and written back into row.
func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	if (*row).Key() != 0 {
		return &store.ConstraintError{Table: r.table.Name, Field: r.table.PrimaryKey, Reason: "is assigned on create"}
	}

	return r.store.write(ctx, "create "+r.kind.String(), func(tx *gorm.DB) error {
		if err := check(tx, *row); err != nil {
			return err
		}
		return tx.Create(row).Error
	})
}

func (r *Repository[T]) Read(ctx context.Context, id int64) (*T, error) {
	row, err := r.take(r.store.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Update applies fn to the current row and saves the result.
func (r *Repository[T]) Update(ctx context.Context, id int64, fn func(*T) error) (*T, error) {
	var updated *T
	var fnErr error
	err := r.store.write(ctx, fmt.Sprintf("update %s %d", r.kind, id), func(tx *gorm.DB) error {
		row, err := r.take(tx, id)
		if err != nil {
			return err
		}
		if fnErr = fn(row); fnErr != nil {
			return fnErr
		}
		if (*row).Key() != id {
			return &store.ConstraintError{Table: r.table.Name, Field: r.table.PrimaryKey, Reason: "cannot be changed"}
		}
		if err := check(tx, *row); err != nil {
			return err
		}
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		updated = row
		return nil
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (store.Report, error) {
	return r.store.Delete(ctx, r.kind, id)
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	err := r.store.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: r.table.PrimaryKey}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.Name, err)
	}
	return rows, nil
}

func (r *Repository[T]) take(db *gorm.DB, id int64) (*T, error) {
	var row T
	err := db.Where("? = ?", clause.Column{Name: r.table.PrimaryKey}, id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFoundError(r.table.Name, id)
		}
		return nil, fmt.Errorf("read %s %d: %w", r.table.Name, id, err)
	}
	return &row, nil
}

// check enforces field rules and outgoing references of e within tx.
func check(tx *gorm.DB, e model.Entity) error {
	table := e.Kind().Table()

	if err := model.Validate(e); err != nil {
		return validationError(table.Name, err)
	}

	for _, ref := range e.References() {
		if ref.ID == nil {
			continue
		}

		found, err := exists(tx, ref.Target, *ref.ID)
		if err != nil {
			return err
		}
		if !found {
			return &store.ConstraintError{
				Table:  table.Name,
				Field:  ref.Column,
				Reason: fmt.Sprintf("references missing %s %d", ref.Target, *ref.ID),
			}
		}

		if ref.Unique {
			var count int64
			err := tx.Table(table.Name).
				Where("? = ?", clause.Column{Name: ref.Column}, *ref.ID).
				Where("? <> ?", clause.Column{Name: table.PrimaryKey}, e.Key()).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return &store.ConstraintError{
					Table:  table.Name,
					Field:  ref.Column,
					Reason: fmt.Sprintf("%s %d is already bound", ref.Target, *ref.ID),
				}
			}
		}
	}
	return nil
}
