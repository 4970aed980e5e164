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

type PublisherHandler struct {
	store    repository.DataContext
	view     view.Renderer
	listPath string
}

func NewPublisherHandler(store repository.DataContext, v view.Renderer) *PublisherHandler {
	return &PublisherHandler{store: store, view: v, listPath: "/publishers"}
}

func (h *PublisherHandler) RegisterRoutes(r *gin.RouterGroup) {
	publishers := r.Group("/publishers")
	h.listPath = publishers.BasePath()
	{
		publishers.GET("", h.ListPublishers)
		publishers.GET("/create", h.CreatePublisherForm)
		publishers.POST("/create", h.CreatePublisher)
		publishers.GET("/update", h.UpdatePublisherForm)
		publishers.GET("/update/:id", h.UpdatePublisherForm)
		publishers.POST("/update/:id", h.UpdatePublisher)
		publishers.GET("/delete", h.DeletePublisherConfirm)
		publishers.GET("/delete/:id", h.DeletePublisherConfirm)
		publishers.POST("/delete/:id", h.DeletePublisher)
	}
}

func (h *PublisherHandler) renderForm(c *gin.Context, action string, publisher model.Publisher, res validation.Result) {
	h.view.Render(c, http.StatusOK, "publishers/form", PublisherFormView{
		Action:     action,
		Publisher:     publisher,
		Validation: res,
		LastVisit:  middleware.GetLastVisit(c),
	})
}

// findPublisher loads the publisher named by the :id parameter, writing a
// 404 or 500 response when it cannot.
func (h *PublisherHandler) findPublisher(c *gin.Context) (*model.Publisher, bool) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"PUBLISHER_NOT_FOUND",
			"publisher not found",
		)
		return nil, false
	}

	publisher, err := h.store.Publishers().FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.view.Error(c, http.StatusNotFound,
				"PUBLISHER_NOT_FOUND",
				"publisher not found",
			)
			return nil, false
		}

		requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to fetch publisher")
		h.view.Error(c, http.StatusInternalServerError,
			"PUBLISHER_FETCH_FAILED",
			"failed to fetch publisher",
		)
		return nil, false
	}

	return publisher, true
}

// ListPublishers godoc
// @Summary      List publishers
// @Description  Get all publishers ordered by id
// @Tags         publishers
// @Produce      html,json
// @Success      200  {object}  PublisherIndexView
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers [get]
func (h *PublisherHandler) ListPublishers(c *gin.Context) {
	publishers, err := h.store.Publishers().FindAll(c.Request.Context())
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("failed to list publishers")
		h.view.Error(c, http.StatusInternalServerError,
			"PUBLISHER_LIST_FAILED",
			"failed to list publishers",
		)
		return
	}

	h.view.Render(c, http.StatusOK, "publishers/index", PublisherIndexView{
		Publishers:   publishers,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// CreatePublisherForm godoc
// @Summary      New publisher form
// @Tags         publishers
// @Produce      html,json
// @Success      200  {object}  PublisherFormView
// @Router       /publishers/create [get]
func (h *PublisherHandler) CreatePublisherForm(c *gin.Context) {
	h.renderForm(c, actionCreate, model.Publisher{}, validation.Result{})
}

// CreatePublisher godoc
// @Summary      Create a publisher
// @Description  Validate and insert a new publisher, then redirect to the list
// @Tags         publishers
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        name  formData  string  true  "Publisher name (max 150 characters)"
// @Success      302  "Redirect to /publishers"
// @Success      200  {object}  PublisherFormView            "Form re-displayed with validation errors"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers/create [post]
func (h *PublisherHandler) CreatePublisher(c *gin.Context) {
	var publisher model.Publisher
	res := validation.BindForm(c, &publisher)
	publisher.ID, publisher.Version = 0, 0

	logger := requestLogger(c)

	if !res.Valid() {
		logger.Info().Strs("errors", res.Messages()).Msg("publisher validation failed")
		h.renderForm(c, actionCreate, publisher, res)
		return
	}

	if err := h.store.Publishers().Add(c.Request.Context(), &publisher); err != nil {
		logger.Error().Err(err).Msg("failed to create publisher")
		h.view.Error(c, http.StatusInternalServerError,
			"PUBLISHER_CREATE_FAILED",
			"failed to create publisher",
		)
		return
	}

	logger.Info().Uint("id", publisher.ID).Str("name", publisher.Name).Msg("publisher created")
	c.Redirect(http.StatusFound, h.listPath)
}

// UpdatePublisherForm godoc
// @Summary      Edit publisher form
// @Tags         publishers
// @Produce      html,json
// @Param        id   path      int  true  "Publisher ID"
// @Success      200  {object}  PublisherFormView
// @Failure      404  {object}  validation.ErrorResponse  "Publisher not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers/update/{id} [get]
func (h *PublisherHandler) UpdatePublisherForm(c *gin.Context) {
	publisher, ok := h.findPublisher(c)
	if !ok {
		return
	}

	h.renderForm(c, actionUpdate, *publisher, validation.Result{})
}

// UpdatePublisher godoc
// @Summary      Update a publisher
// @Description  Replace a publisher's fields. A stale version yields 409; a publisher deleted in the meantime yields 404.
// @Tags         publishers
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        id       path      int     true   "Publisher ID"
// @Param        name     formData  string  true   "Publisher name (max 150 characters)"
// @Param        version  formData  int     false  "Version the form was loaded with"
// @Success      302  "Redirect to /publishers"
// @Success      200  {object}  PublisherFormView            "Form re-displayed with validation errors"
// @Failure      404  {object}  validation.ErrorResponse  "Publisher not found"
// @Failure      409  {object}  validation.ErrorResponse  "Concurrent modification"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers/update/{id} [post]
func (h *PublisherHandler) UpdatePublisher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"PUBLISHER_NOT_FOUND",
			"publisher not found",
		)
		return
	}

	var publisher model.Publisher
	res := validation.BindForm(c, &publisher)
	publisher.ID = id

	logger := requestLogger(c)

	if !res.Valid() {
		logger.Info().Uint("id", id).Strs("errors", res.Messages()).Msg("publisher validation failed")
		h.renderForm(c, actionUpdate, publisher, res)
		return
	}

	result, err := h.store.Publishers().Update(c.Request.Context(), &publisher)
	if err != nil {
		logger.Error().Err(err).Uint("id", id).Msg("failed to update publisher")
		h.view.Error(c, http.StatusInternalServerError,
			"PUBLISHER_UPDATE_FAILED",
			"failed to update publisher",
		)
		return
	}

	if result == repository.ConflictDetected {
		resolveUpdateConflict(c, h.view, h.store.Publishers().Exists, "publisher", id)
		return
	}

	logger.Info().Uint("id", id).Msg("publisher updated")
	c.Redirect(http.StatusFound, h.listPath)
}

// DeletePublisherConfirm godoc
// @Summary      Confirm publisher deletion
// @Tags         publishers
// @Produce      html,json
// @Param        id   path      int  true  "Publisher ID"
// @Success      200  {object}  PublisherDeleteView
// @Failure      404  {object}  validation.ErrorResponse  "Publisher not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers/delete/{id} [get]
func (h *PublisherHandler) DeletePublisherConfirm(c *gin.Context) {
	publisher, ok := h.findPublisher(c)
	if !ok {
		return
	}

	h.view.Render(c, http.StatusOK, "publishers/delete", PublisherDeleteView{
		Publisher:    *publisher,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// DeletePublisher godoc
// @Summary      Delete a publisher
// @Description  Delete a publisher and its books. Redirects to the list whether or not the publisher existed.
// @Tags         publishers
// @Produce      html,json
// @Param        id   path      int  true  "Publisher ID"
// @Success      302  "Redirect to /publishers"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /publishers/delete/{id} [post]
func (h *PublisherHandler) DeletePublisher(c *gin.Context) {
	if id, ok := parseID(c); ok {
		removed, err := h.store.Publishers().Remove(c.Request.Context(), id)
		if err != nil {
			requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to delete publisher")
			h.view.Error(c, http.StatusInternalServerError,
				"PUBLISHER_DELETE_FAILED",
				"failed to delete publisher",
			)
			return
		}

		if removed {
			requestLogger(c).Info().Uint("id", id).Msg("publisher deleted")
		}
	}

	c.Redirect(http.StatusFound, h.listPath)
}
