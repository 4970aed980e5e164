package view

import (
	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-catalog/internal/validation"
)

// Renderer turns a named view and its model into a response.
type Renderer interface {
	Render(c *gin.Context, status int, name string, data any)
	Error(c *gin.Context, status int, code, message string)
}

// Envelope is the JSON body written by JSON.Render.
type Envelope struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// JSON renders view models as JSON documents. It serves API clients and
// tests.
type JSON struct{}

func (JSON) Render(c *gin.Context, status int, name string, data any) {
	c.JSON(status, Envelope{View: name, Data: data})
}

func (JSON) Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}
