package repository

import (
	"context"
	"fmt"

	"github.com/snnyvrz/library-catalog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommitResult reports whether a full-record update was applied.
type CommitResult int

const (
	Committed CommitResult = iota
	// ConflictDetected means no row matched the identifier and version the
	// caller read: the record was modified or removed in the meantime.
	ConflictDetected
)

func (r CommitResult) String() string {
	switch r {
	case Committed:
		return "committed"
	case ConflictDetected:
		return "conflict"
	default:
		return fmt.Sprintf("CommitResult(%d)", int(r))
	}
}

type Repository[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	Add(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) (CommitResult, error)
	Remove(ctx context.Context, id uint) (bool, error)
}

type (
	AuthorRepository    = Repository[model.Author]
	PublisherRepository = Repository[model.Publisher]
)

type GormRepository[T any, P interface {
	*T
	model.Entity
}] struct {
	db *gorm.DB
}

func NewGormRepository[T any, P interface {
	*T
	model.Entity
}](db *gorm.DB) *GormRepository[T, P] {
	return &GormRepository[T, P]{db: db}
}

func (r *GormRepository[T, P]) FindByID(ctx context.Context, id uint) (*T, error) {
	var e T
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *GormRepository[T, P]) FindAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository[T, P]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepository[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

// Add inserts e. The store assigns its identifier; referenced records are
// never written through associations.
func (r *GormRepository[T, P]) Add(ctx context.Context, e *T) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error)
}

// Update replaces every mutable column of e. When e carries a non-zero
// version the write only applies if the stored version still matches.
func (r *GormRepository[T, P]) Update(ctx context.Context, e *T) (CommitResult, error) {
	p := P(e)

	cols := p.Columns()
	cols["version"] = gorm.Expr("version + 1")

	tx := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", p.GetID())
	if v := p.GetVersion(); v > 0 {
		tx = tx.Where("version = ?", v)
	}

	result := tx.Updates(cols)
	if result.Error != nil {
		return Committed, translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ConflictDetected, nil
	}

	return Committed, nil
}

// Remove deletes the record with the given id and reports whether it existed.
func (r *GormRepository[T, P]) Remove(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
