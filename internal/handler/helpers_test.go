package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/repository"
	"github.com/snnyvrz/library-catalog/internal/validation"
	"github.com/snnyvrz/library-catalog/internal/view"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.LastVisit(middleware.LastVisitConfig{}))

	store := repository.NewStore(db)

	NewAuthorHandler(store, view.JSON{}).RegisterRoutes(r.Group(""))
	NewPublisherHandler(store, view.JSON{}).RegisterRoutes(r.Group(""))
	NewBookHandler(store, view.JSON{}).RegisterRoutes(r.Group(""))

	return r
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doPostForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope[T any] struct {
	View string `json:"view"`
	Data T      `json:"data"`
}

func decodeView[T any](t *testing.T, w *httptest.ResponseRecorder, wantView string) T {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var env envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if env.View != wantView {
		t.Fatalf("expected view %q, got %q", wantView, env.View)
	}

	return env.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) validation.ErrorResponse {
	t.Helper()

	var resp validation.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v, body=%s", err, w.Body.String())
	}
	return resp
}

func expectRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()

	if w.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d, body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func countRows(t *testing.T, db *gorm.DB, table any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(table).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
