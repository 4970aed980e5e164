package model

import (
	"time"

	"gorm.io/gorm"
)

type Publisher struct {
	ID        uint      `json:"id" form:"-" gorm:"primaryKey"`
	Name      string    `json:"name" form:"name" gorm:"size:150;not null" validate:"notblank,max=150"`
	Version   uint      `json:"version" form:"version" gorm:"not null;default:1" validate:"-"`
	CreatedAt time.Time `json:"created_at" form:"-" validate:"-"`
	UpdatedAt time.Time `json:"updated_at" form:"-" validate:"-"`
}

func (p *Publisher) GetID() uint      { return p.ID }
func (p *Publisher) GetVersion() uint { return p.Version }

func (p *Publisher) Columns() map[string]any {
	return map[string]any{
		"name": p.Name,
	}
}

func (p *Publisher) BeforeCreate(tx *gorm.DB) (err error) {
	if p.Version == 0 {
		p.Version = 1
	}
	return
}
