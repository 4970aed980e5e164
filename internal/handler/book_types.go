package handler

import (
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/validation"
)

// SelectOption is one entry of an author or publisher drop-down.
type SelectOption struct {
	Value    uint   `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type BookIndexView struct {
	Books     []model.BookListItem `json:"books"`
	LastVisit middleware.Visit     `json:"last_visit"`
}

type BookFormView struct {
	Action     string            `json:"action"`
	Book       model.Book        `json:"book"`
	Authors    []SelectOption    `json:"authors"`
	Publishers []SelectOption    `json:"publishers"`
	Validation validation.Result `json:"validation"`
	LastVisit  middleware.Visit  `json:"last_visit"`
}

type BookDeleteView struct {
	Book      model.Book       `json:"book"`
	LastVisit middleware.Visit `json:"last_visit"`
}
