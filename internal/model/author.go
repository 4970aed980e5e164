package model

import (
	"time"

	"gorm.io/gorm"
)

type Author struct {
	ID        uint      `json:"id" form:"-" gorm:"primaryKey"`
	Name      string    `json:"name" form:"name" gorm:"size:100;not null" validate:"notblank,max=100"`
	Version   uint      `json:"version" form:"version" gorm:"not null;default:1" validate:"-"`
	CreatedAt time.Time `json:"created_at" form:"-" validate:"-"`
	UpdatedAt time.Time `json:"updated_at" form:"-" validate:"-"`
}

func (a *Author) GetID() uint      { return a.ID }
func (a *Author) GetVersion() uint { return a.Version }

func (a *Author) Columns() map[string]any {
	return map[string]any{
		"name": a.Name,
	}
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Version == 0 {
		a.Version = 1
	}
	return
}
