package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// Ensure LinkStore implements store.LinkStore
var _ store.LinkStore = (*LinkStore)(nil)

// LinkStore implements store.LinkStore using GORM
type LinkStore struct {
	store *Store
}

// Link adds the pair to the membership table. Both rows must exist and the
// pair must not be present yet.
func (s *LinkStore) Link(ctx context.Context, a model.Association, left, right int64) error {
	op := fmt.Sprintf("link %s (%d, %d)", a, left, right)
	return s.store.write(ctx, op, func(tx *gorm.DB) error {
		if err := endpointExists(tx, a, a.LeftColumn, a.Left, left); err != nil {
			return err
		}
		if err := endpointExists(tx, a, a.RightColumn, a.Right, right); err != nil {
			return err
		}

		var count int64
		err := pair(tx.Table(a.Table.Name), a, left, right).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return &store.ConstraintError{Table: a.Table.Name, Cause: store.ErrDuplicateLink}
		}

		err = tx.Exec("INSERT INTO ? (?, ?) VALUES (?, ?)",
			clause.Table{Name: a.Table.Name},
			clause.Column{Name: a.LeftColumn}, clause.Column{Name: a.RightColumn},
			left, right,
		).Error
		if err != nil && isDuplicate(err) {
			return &store.ConstraintError{Table: a.Table.Name, Cause: store.ErrDuplicateLink}
		}
		return err
	})
}

// Unlink removes the pair. It succeeds when the pair is absent.
func (s *LinkStore) Unlink(ctx context.Context, a model.Association, left, right int64) error {
	op := fmt.Sprintf("unlink %s (%d, %d)", a, left, right)
	return s.store.write(ctx, op, func(tx *gorm.DB) error {
		return tx.Exec("DELETE FROM ? WHERE ? = ? AND ? = ?",
			clause.Table{Name: a.Table.Name},
			clause.Column{Name: a.LeftColumn}, left,
			clause.Column{Name: a.RightColumn}, right,
		).Error
	})
}

func (s *LinkStore) Rights(ctx context.Context, a model.Association, left int64) ([]int64, error) {
	return s.members(ctx, a, a.LeftColumn, left, a.RightColumn)
}

func (s *LinkStore) Lefts(ctx context.Context, a model.Association, right int64) ([]int64, error) {
	return s.members(ctx, a, a.RightColumn, right, a.LeftColumn)
}

func (s *LinkStore) members(ctx context.Context, a model.Association, from string, id int64, to string) ([]int64, error) {
	ids := make([]int64, 0)
	err := s.store.db.WithContext(ctx).Table(a.Table.Name).
		Where("? = ?", clause.Column{Name: from}, id).
		Order(clause.OrderByColumn{Column: clause.Column{Name: to}}).
		Pluck(to, &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", a, err)
	}
	return ids, nil
}

func pair(db *gorm.DB, a model.Association, left, right int64) *gorm.DB {
	return db.
		Where("? = ?", clause.Column{Name: a.LeftColumn}, left).
		Where("? = ?", clause.Column{Name: a.RightColumn}, right)
}

func endpointExists(tx *gorm.DB, a model.Association, column string, kind model.Kind, id int64) error {
	found, err := exists(tx, kind, id)
	if err != nil {
		return err
	}
	if !found {
		return &store.ConstraintError{
			Table:  a.Table.Name,
			Field:  column,
			Reason: fmt.Sprintf("references missing %s %d", kind, id),
		}
	}
	return nil
}
