package repository

import (
	"context"

	"github.com/snnyvrz/library-catalog/internal/model"
	"gorm.io/gorm"
)

// DataContext gives typed access to every entity collection and runs units
// of work that commit or roll back together.
type DataContext interface {
	Authors() AuthorRepository
	Publishers() PublisherRepository
	Books() BookRepository
	Transaction(ctx context.Context, fn func(tx DataContext) error) error
	Ping(ctx context.Context) error
}

type Store struct {
	db         *gorm.DB
	authors    *GormRepository[model.Author, *model.Author]
	publishers *GormRepository[model.Publisher, *model.Publisher]
	books      *GormBookRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		authors:    NewGormRepository[model.Author](db),
		publishers: NewGormRepository[model.Publisher](db),
		books:      NewGormBookRepository(db),
	}
}

func (s *Store) Authors() AuthorRepository       { return s.authors }
func (s *Store) Publishers() PublisherRepository { return s.publishers }
func (s *Store) Books() BookRepository           { return s.books }

func (s *Store) Transaction(ctx context.Context, fn func(tx DataContext) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
