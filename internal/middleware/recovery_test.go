package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-catalog/internal/validation"
	"github.com/snnyvrz/library-catalog/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func panicRouter(t *testing.T, html bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	var renderer view.Renderer = view.JSON{}
	if html {
		h, err := view.NewHTML(r)
		require.NoError(t, err)
		renderer = h
	}

	r.Use(RequestID(), Recovery(renderer))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRecovery_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	panicRouter(t, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
}

func TestRecovery_HTML(t *testing.T) {
	w := httptest.NewRecorder()
	panicRouter(t, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "internal server error")
}
