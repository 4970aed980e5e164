package view

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-catalog/internal/validation"
)

//go:embed templates/*.html
var templates embed.FS

// HTML renders the embedded templates through gin's HTML renderer.
type HTML struct{}

// NewHTML parses the embedded templates and installs them on e.
func NewHTML(e *gin.Engine) (*HTML, error) {
	tmpl, err := template.New("").ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, err
	}

	e.SetHTMLTemplate(tmpl)
	return &HTML{}, nil
}

func (*HTML) Render(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

func (*HTML) Error(c *gin.Context, status int, code, message string) {
	c.HTML(status, "error", validation.ErrorResponse{
		Code:    code,
		Message: message,
	})
	c.Abort()
}
