package handler

import (
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/validation"
)

type AuthorIndexView struct {
	Authors   []model.Author   `json:"authors"`
	LastVisit middleware.Visit `json:"last_visit"`
}

type AuthorFormView struct {
	Action     string            `json:"action"`
	Author     model.Author      `json:"author"`
	Validation validation.Result `json:"validation"`
	LastVisit  middleware.Visit  `json:"last_visit"`
}

type AuthorDeleteView struct {
	Author    model.Author     `json:"author"`
	LastVisit middleware.Visit `json:"last_visit"`
}
