package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML_RendersTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	html, err := NewHTML(r)
	require.NoError(t, err)

	r.GET("/", func(c *gin.Context) {
		html.Render(c, http.StatusOK, "authors/index", gin.H{
			"Authors":   []gin.H{{"ID": 1, "Name": "Evans <Eric>"}},
			"LastVisit": "First visit.",
		})
	})
	r.GET("/missing", func(c *gin.Context) {
		html.Error(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Evans &lt;Eric&gt;")
	assert.Contains(t, w.Body.String(), `href="/authors/delete/1"`)
	assert.Contains(t, w.Body.String(), "Last visit: First visit.")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "author not found")
}
