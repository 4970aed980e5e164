package model

import (
	"time"

	"gorm.io/gorm"
)

// Book references its author and publisher by foreign key. The Author and
// Publisher fields are only populated when explicitly preloaded.
type Book struct {
	ID          uint       `json:"id" form:"-" gorm:"primaryKey"`
	Title       string     `json:"title" form:"title" gorm:"size:200;not null" validate:"notblank,max=200"`
	AuthorID    uint       `json:"author_id" form:"author_id" gorm:"not null;index" validate:"required"`
	Author      *Author    `json:"author,omitempty" form:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	PublisherID uint       `json:"publisher_id" form:"publisher_id" gorm:"not null;index" validate:"required"`
	Publisher   *Publisher `json:"publisher,omitempty" form:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" validate:"-"`
	Version     uint       `json:"version" form:"version" gorm:"not null;default:1" validate:"-"`
	CreatedAt   time.Time  `json:"created_at" form:"-" validate:"-"`
	UpdatedAt   time.Time  `json:"updated_at" form:"-" validate:"-"`
}

func (b *Book) GetID() uint      { return b.ID }
func (b *Book) GetVersion() uint { return b.Version }

func (b *Book) Columns() map[string]any {
	return map[string]any{
		"title":        b.Title,
		"author_id":    b.AuthorID,
		"publisher_id": b.PublisherID,
	}
}

// BookListItem is a book flattened together with the names of the records it
// references.
type BookListItem struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	AuthorID      uint   `json:"author_id"`
	AuthorName    string `json:"author_name"`
	PublisherID   uint   `json:"publisher_id"`
	PublisherName string `json:"publisher_name"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.Version == 0 {
		b.Version = 1
	}
	return
}
