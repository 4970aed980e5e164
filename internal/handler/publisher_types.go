package handler

import (
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/validation"
)

type PublisherIndexView struct {
	Publishers []model.Publisher `json:"publishers"`
	LastVisit  middleware.Visit  `json:"last_visit"`
}

type PublisherFormView struct {
	Action     string            `json:"action"`
	Publisher  model.Publisher   `json:"publisher"`
	Validation validation.Result `json:"validation"`
	LastVisit  middleware.Visit  `json:"last_visit"`
}

type PublisherDeleteView struct {
	Publisher model.Publisher  `json:"publisher"`
	LastVisit middleware.Visit `json:"last_visit"`
}
