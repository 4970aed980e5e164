package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/repository"
	"github.com/snnyvrz/library-catalog/internal/validation"
	"github.com/snnyvrz/library-catalog/internal/view"
)

type BookHandler struct {
	store    repository.DataContext
	view     view.Renderer
	listPath string
}

func NewBookHandler(store repository.DataContext, v view.Renderer) *BookHandler {
	return &BookHandler{store: store, view: v, listPath: "/books"}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	h.listPath = books.BasePath()
	{
		books.GET("", h.ListBooks)
		books.GET("/create", h.CreateBookForm)
		books.POST("/create", h.CreateBook)
		books.GET("/update", h.UpdateBookForm)
		books.GET("/update/:id", h.UpdateBookForm)
		books.POST("/update/:id", h.UpdateBook)
		books.GET("/delete", h.DeleteBookConfirm)
		books.GET("/delete/:id", h.DeleteBookConfirm)
		books.POST("/delete/:id", h.DeleteBook)
	}
}

func (h *BookHandler) selectOptions(ctx context.Context, book model.Book) ([]SelectOption, []SelectOption, error) {
	authors, err := h.store.Authors().FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	publishers, err := h.store.Publishers().FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	authorOpts := lo.Map(authors, func(a model.Author, _ int) SelectOption {
		return SelectOption{Value: a.ID, Label: a.Name, Selected: a.ID == book.AuthorID}
	})
	publisherOpts := lo.Map(publishers, func(p model.Publisher, _ int) SelectOption {
		return SelectOption{Value: p.ID, Label: p.Name, Selected: p.ID == book.PublisherID}
	})

	return authorOpts, publisherOpts, nil
}

func (h *BookHandler) renderForm(c *gin.Context, action string, book model.Book, res validation.Result) {
	authors, publishers, err := h.selectOptions(c.Request.Context(), book)
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("failed to load book form options")
		h.view.Error(c, http.StatusInternalServerError,
			"BOOK_FORM_FAILED",
			"failed to load authors and publishers",
		)
		return
	}

	h.view.Render(c, http.StatusOK, "books/form", BookFormView{
		Action:     action,
		Book:       book,
		Authors:    authors,
		Publishers: publishers,
		Validation: res,
		LastVisit:  middleware.GetLastVisit(c),
	})
}

// checkReferences records a field error for every foreign key of book that
// does not resolve in tx.
func checkReferences(ctx context.Context, tx repository.DataContext, book *model.Book, res *validation.Result) error {
	ok, err := tx.Authors().Exists(ctx, book.AuthorID)
	if err != nil {
		return err
	}
	if !ok {
		res.Add("author_id", "exists", "author_id does not reference an existing author")
	}

	ok, err = tx.Publishers().Exists(ctx, book.PublisherID)
	if err != nil {
		return err
	}
	if !ok {
		res.Add("publisher_id", "exists", "publisher_id does not reference an existing publisher")
	}

	return nil
}

// saveBook runs the reference check and write in one transaction. A write is
// only attempted when res is still valid after the check.
func (h *BookHandler) saveBook(
	ctx context.Context,
	book *model.Book,
	res *validation.Result,
	write func(ctx context.Context, tx repository.DataContext) error,
) error {
	err := h.store.Transaction(ctx, func(tx repository.DataContext) error {
		if err := checkReferences(ctx, tx, book, res); err != nil {
			return err
		}
		if !res.Valid() {
			return nil
		}
		return write(ctx, tx)
	})

	if errors.Is(err, repository.ErrInvalidReference) {
		res.Add("", "exists", "the selected author or publisher no longer exists")
		return nil
	}

	return err
}

// findBook loads the book named by the :id parameter, writing a 404 or 500
// response when it cannot.
func (h *BookHandler) findBook(c *gin.Context) (*model.Book, bool) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"BOOK_NOT_FOUND",
			"book not found",
		)
		return nil, false
	}

	book, err := h.store.Books().FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.view.Error(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return nil, false
		}

		requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to fetch book")
		h.view.Error(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return nil, false
	}

	return book, true
}

// ListBooks godoc
// @Summary      List books
// @Description  Get all books with their author and publisher names, ordered by id
// @Tags         books
// @Produce      html,json
// @Success      200  {object}  BookIndexView
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.store.Books().FindAllWithRelated(c.Request.Context())
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("failed to list books")
		h.view.Error(c, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	h.view.Render(c, http.StatusOK, "books/index", BookIndexView{
		Books:     books,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// CreateBookForm godoc
// @Summary      New book form
// @Description  Empty book form with author and publisher options
// @Tags         books
// @Produce      html,json
// @Success      200  {object}  BookFormView
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/create [get]
func (h *BookHandler) CreateBookForm(c *gin.Context) {
	h.renderForm(c, actionCreate, model.Book{}, validation.Result{})
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Validate and insert a new book, then redirect to the list
// @Tags         books
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        title         formData  string  true  "Title (max 200 characters)"
// @Param        author_id     formData  int     true  "Author ID"
// @Param        publisher_id  formData  int     true  "Publisher ID"
// @Success      302  "Redirect to /books"
// @Success      200  {object}  BookFormView              "Form re-displayed with validation errors"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/create [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var book model.Book
	res := validation.BindForm(c, &book)
	book.ID, book.Version = 0, 0
	book.Author, book.Publisher = nil, nil

	ctx := c.Request.Context()
	logger := requestLogger(c)

	if res.Valid() {
		err := h.saveBook(ctx, &book, &res, func(ctx context.Context, tx repository.DataContext) error {
			return tx.Books().Add(ctx, &book)
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to create book")
			h.view.Error(c, http.StatusInternalServerError,
				"BOOK_CREATE_FAILED",
				"failed to create book",
			)
			return
		}
	}

	if !res.Valid() {
		logger.Info().Strs("errors", res.Messages()).Msg("book validation failed")
		h.renderForm(c, actionCreate, book, res)
		return
	}

	logger.Info().
		Uint("id", book.ID).
		Str("title", book.Title).
		Uint("author_id", book.AuthorID).
		Uint("publisher_id", book.PublisherID).
		Msg("book created")

	c.Redirect(http.StatusFound, h.listPath)
}

// UpdateBookForm godoc
// @Summary      Edit book form
// @Tags         books
// @Produce      html,json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookFormView
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/update/{id} [get]
func (h *BookHandler) UpdateBookForm(c *gin.Context) {
	book, ok := h.findBook(c)
	if !ok {
		return
	}

	h.renderForm(c, actionUpdate, *book, validation.Result{})
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Replace a book's fields. A stale version yields 409; a book deleted in the meantime yields 404.
// @Tags         books
// @Accept       x-www-form-urlencoded,json
// @Produce      html,json
// @Param        id            path      int     true   "Book ID"
// @Param        title         formData  string  true   "Title (max 200 characters)"
// @Param        author_id     formData  int     true   "Author ID"
// @Param        publisher_id  formData  int     true   "Publisher ID"
// @Param        version       formData  int     false  "Version the form was loaded with"
// @Success      302  "Redirect to /books"
// @Success      200  {object}  BookFormView              "Form re-displayed with validation errors"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      409  {object}  validation.ErrorResponse  "Concurrent modification"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/update/{id} [post]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.view.Error(c, http.StatusNotFound,
			"BOOK_NOT_FOUND",
			"book not found",
		)
		return
	}

	var book model.Book
	res := validation.BindForm(c, &book)
	book.ID = id
	book.Author, book.Publisher = nil, nil

	ctx := c.Request.Context()
	logger := requestLogger(c)

	result := repository.Committed
	if res.Valid() {
		err := h.saveBook(ctx, &book, &res, func(ctx context.Context, tx repository.DataContext) error {
			var err error
			result, err = tx.Books().Update(ctx, &book)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Uint("id", id).Msg("failed to update book")
			h.view.Error(c, http.StatusInternalServerError,
				"BOOK_UPDATE_FAILED",
				"failed to update book",
			)
			return
		}
	}

	if !res.Valid() {
		logger.Info().Uint("id", id).Strs("errors", res.Messages()).Msg("book validation failed")
		h.renderForm(c, actionUpdate, book, res)
		return
	}

	if result == repository.ConflictDetected {
		resolveUpdateConflict(c, h.view, h.store.Books().Exists, "book", id)
		return
	}

	logger.Info().Uint("id", id).Str("title", book.Title).Msg("book updated")
	c.Redirect(http.StatusFound, h.listPath)
}

// DeleteBookConfirm godoc
// @Summary      Confirm book deletion
// @Tags         books
// @Produce      html,json
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  BookDeleteView
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/delete/{id} [get]
func (h *BookHandler) DeleteBookConfirm(c *gin.Context) {
	book, ok := h.findBook(c)
	if !ok {
		return
	}

	h.view.Render(c, http.StatusOK, "books/delete", BookDeleteView{
		Book:      *book,
		LastVisit: middleware.GetLastVisit(c),
	})
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book by ID. Redirects to the list whether or not the book existed.
// @Tags         books
// @Produce      html,json
// @Param        id   path      int  true  "Book ID"
// @Success      302  "Redirect to /books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/delete/{id} [post]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if id, ok := parseID(c); ok {
		removed, err := h.store.Books().Remove(c.Request.Context(), id)
		if err != nil {
			requestLogger(c).Error().Err(err).Uint("id", id).Msg("failed to delete book")
			h.view.Error(c, http.StatusInternalServerError,
				"BOOK_DELETE_FAILED",
				"failed to delete book",
			)
			return
		}

		if removed {
			requestLogger(c).Info().Uint("id", id).Msg("book deleted")
		}
	}

	c.Redirect(http.StatusFound, h.listPath)
}
