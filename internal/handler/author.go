package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/repository"
	"github.com/snnyvrz/library-catalog/internal/validation"
	"github.com/snnyvrz/library-catalog/internal/view"
)

type AuthorHandler struct {
	store    repository.DataContext
	view     view.Renderer
	listPath string
}

func NewAuthorHandler(store repository.DataContext, v view.Renderer) *AuthorHandler {
	return &AuthorHandler{store: store, view: v, listPath: "/authors"}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	authors := r.Group("/authors")
	h.listPath = authors.BasePath()
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/create", h.CreateAuthorForm)
		authors.POST("/create", h.CreateAuthor)
		authors.GET("/update", h.UpdateAuthorForm)
		authors.GET("/update/:id", h.UpdateAuthorForm)
		authors.POST("/update/:id", h.UpdateAuthor)
		authors.GET("/delete", h.DeleteAuthorConfirm)
		authors.GET("/delete/:id", h.DeleteAuthorConfirm)
		authors.POST("/delete/:id", h.DeleteAuthor)
	}
}

func (h *AuthorHandler) renderForm(c *gin.Context, action string, author model.Author, res validation.Result) {
	h.view.Render(c, http.StatusOK, "authors/form", AuthorFormView{
		Action:     action,
		Author:     author,
		Validation: res,
		LastVisit:  middleware.GetLastVisit(c),
	})
}

// findAuthor loads the author named by the :id parameter, writing a 404 or
// 500 response when it cannot.
func (h *AuthorHandler) findAuthor(c *gin.Context) (*model.Author, bool) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"AUTHOR_NOT_FOUND",
			"author not found",
		)
		return nil, false
	}

	author, err := h.store.Authors().FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.view.Error(c, http.StatusNotFound,
				"AUTHOR_NOT_FOUND",
				"author not found",
			)
			return nil, false
		}

		requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to fetch author")
		h.view.Error(c, http.StatusInternalServerError,
			"AUTHOR_FETCH_FAILED",
			"failed to fetch author",
		)
		return nil, false
	}

	return author, true
}

// ListAuthors godoc
// @Summary      List authors
// @Description  Get all authors ordered by id
// @Tags         authors
// @Produce      html,json
// @Success      200  {object}  AuthorIndexView
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.store.Authors().FindAll(c.Request.Context())
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("failed to list authors")
		h.view.Error(c, http.StatusInternalServerError,
			"AUTHOR_LIST_FAILED",
			"failed to list authors",
		)
		return
	}

	h.view.Render(c, http.StatusOK, "authors/index", AuthorIndexView{
		Authors:   authors,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// CreateAuthorForm godoc
// @Summary      New author form
// @Tags         authors
// @Produce      html,json
// @Success      200  {object}  AuthorFormView
// @Router       /authors/create [get]
func (h *AuthorHandler) CreateAuthorForm(c *gin.Context) {
	h.renderForm(c, actionCreate, model.Author{}, validation.Result{})
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Validate and insert a new author, then redirect to the list
// @Tags         authors
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        name  formData  string  true  "Author name (max 100 characters)"
// @Success      302  "Redirect to /authors"
// @Success      200  {object}  AuthorFormView            "Form re-displayed with validation errors"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/create [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var author model.Author
	res := validation.BindForm(c, &author)
	author.ID, author.Version = 0, 0

	logger := requestLogger(c)

	if !res.Valid() {
		logger.Info().Strs("errors", res.Messages()).Msg("author validation failed")
		h.renderForm(c, actionCreate, author, res)
		return
	}

	if err := h.store.Authors().Add(c.Request.Context(), &author); err != nil {
		logger.Error().Err(err).Msg("failed to create author")
		h.view.Error(c, http.StatusInternalServerError,
			"AUTHOR_CREATE_FAILED",
			"failed to create author",
		)
		return
	}

	logger.Info().Uint("id", author.ID).Str("name", author.Name).Msg("author created")
	c.Redirect(http.StatusFound, h.listPath)
}

// UpdateAuthorForm godoc
// @Summary      Edit author form
// @Tags         authors
// @Produce      html,json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorFormView
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/update/{id} [get]
func (h *AuthorHandler) UpdateAuthorForm(c *gin.Context) {
	author, ok := h.findAuthor(c)
	if !ok {
		return
	}

	h.renderForm(c, actionUpdate, *author, validation.Result{})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Replace an author's fields. A stale version yields 409; an author deleted in the meantime yields 404.
// @Tags         authors
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        id       path      int     true   "Author ID"
// @Param        name     formData  string  true   "Author name (max 100 characters)"
// @Param        version  formData  int     false  "Version the form was loaded with"
// @Success      302  "Redirect to /authors"
// @Success      200  {object}  AuthorFormView            "Form re-displayed with validation errors"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      409  {object}  validation.ErrorResponse  "Concurrent modification"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/update/{id} [post]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"AUTHOR_NOT_FOUND",
			"author not found",
		)
		return
	}

	var author model.Author
	res := validation.BindForm(c, &author)
	author.ID = id

	logger := requestLogger(c)

	if !res.Valid() {
		logger.Info().Uint("id", id).Strs("errors", res.Messages()).Msg("author validation failed")
		h.renderForm(c, actionUpdate, author, res)
		return
	}

	result, err := h.store.Authors().Update(c.Request.Context(), &author)
	if err != nil {
		logger.Error().Err(err).Uint("id", id).Msg("failed to update author")
		h.view.Error(c, http.StatusInternalServerError,
			"AUTHOR_UPDATE_FAILED",
			"failed to update author",
		)
		return
	}

	if result == repository.ConflictDetected {
		resolveUpdateConflict(c, h.view, h.store.Authors().Exists, "author", id)
		return
	}

	logger.Info().Uint("id", id).Msg("author updated")
	c.Redirect(http.StatusFound, h.listPath)
}

// DeleteAuthorConfirm godoc
// @Summary      Confirm author deletion
// @Tags         authors
// @Produce      html,json
// @Param        id   path      int  true  "Author ID"
// @Success      200  {object}  AuthorDeleteView
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/delete/{id} [get]
func (h *AuthorHandler) DeleteAuthorConfirm(c *gin.Context) {
	author, ok := h.findAuthor(c)
	if !ok {
		return
	}

	h.view.Render(c, http.StatusOK, "authors/delete", AuthorDeleteView{
		Author:    *author,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Delete an author and its books. Redirects to the list whether or not the author existed.
// @Tags         authors
// @Produce      html,json
// @Param        id   path      int  true  "Author ID"
// @Success      302  "Redirect to /authors"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/delete/{id} [post]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	if id, ok := parseID(c); ok {
		removed, err := h.store.Authors().Remove(c.Request.Context(), id)
		if err != nil {
			requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to delete author")
			h.view.Error(c, http.StatusInternalServerError,
				"AUTHOR_DELETE_FAILED",
				"failed to delete author",
			)
			return
		}

		if removed {
			requestLogger(c).Info().Uint("id", id).Msg("author deleted")
		}
	}

	c.Redirect(http.StatusFound, h.listPath)
}
