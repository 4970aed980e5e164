package repository

import (
	"context"

	"github.com/snnyvrz/library-catalog/internal/model"
	"gorm.io/gorm"
)

type BookRepository interface {
	Repository[model.Book]
	// FindAllWithRelated lists books joined with their author and publisher
	// names, ordered by id.
	FindAllWithRelated(ctx context.Context) ([]model.BookListItem, error)
}

type GormBookRepository struct {
	*GormRepository[model.Book, *model.Book]
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{
		GormRepository: NewGormRepository[model.Book](db),
	}
}

func (r *GormBookRepository) FindAllWithRelated(ctx context.Context) ([]model.BookListItem, error) {
	var items []model.BookListItem
	if err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Select(`books.id, books.title,
			books.author_id, authors.name AS author_name,
			books.publisher_id, publishers.name AS publisher_name`).
		Joins("LEFT JOIN authors ON authors.id = books.author_id").
		Joins("LEFT JOIN publishers ON publishers.id = books.publisher_id").
		Order("books.id").
		Scan(&items).Error; err != nil {

		return nil, err
	}
	return items, nil
}
