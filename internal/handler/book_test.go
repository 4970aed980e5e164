package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/snnyvrz/library-catalog/internal/model"
	"github.com/snnyvrz/library-catalog/internal/testutil"
)

func bookForm(title string, authorID, publisherID uint) url.Values {
	return url.Values{
		"title":        {title},
		"author_id":    {strconv.FormatUint(uint64(authorID), 10)},
		"publisher_id": {strconv.FormatUint(uint64(publisherID), 10)},
	}
}

func TestListBooks_IncludesAuthorAndPublisher(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	testutil.SeedCatalog(t, db)

	w := doGet(router, "/books")
	data := decodeView[BookIndexView](t, w, "books/index")

	if len(data.Books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(data.Books))
	}

	first := data.Books[0]
	if first.Title != "Book One" {
		t.Errorf("expected first book %q, got %q", "Book One", first.Title)
	}
	if first.AuthorName != "Author One" {
		t.Errorf("expected author name %q, got %q", "Author One", first.AuthorName)
	}
	if first.PublisherName != "Publisher One" {
		t.Errorf("expected publisher name %q, got %q", "Publisher One", first.PublisherName)
	}
	if !data.LastVisit.IsFirst() {
		t.Errorf("expected first visit marker without a cookie")
	}
}

func TestListBooks_DBError(t *testing.T) {
	db := testutil.NewErrorDB(t)
	router := setupRouter(db)

	w := doGet(router, "/books")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != "BOOK_LIST_FAILED" {
		t.Errorf("expected code BOOK_LIST_FAILED, got %q", resp.Code)
	}
}

func TestCreateBookForm_LoadsSelectOptions(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, _ := testutil.SeedCatalog(t, db)
	testutil.SeedAuthor(t, db, "Author Two")

	w := doGet(router, "/books/create")
	data := decodeView[BookFormView](t, w, "books/form")

	if data.Action != actionCreate {
		t.Errorf("expected action %q, got %q", actionCreate, data.Action)
	}
	if len(data.Authors) != 2 {
		t.Fatalf("expected 2 author options, got %d", len(data.Authors))
	}
	if data.Authors[0].Value != author.ID || data.Authors[0].Label != author.Name {
		t.Errorf("unexpected first author option: %+v", data.Authors[0])
	}
	if len(data.Publishers) != 1 || data.Publishers[0].Value != publisher.ID {
		t.Errorf("unexpected publisher options: %+v", data.Publishers)
	}
	for _, opt := range data.Authors {
		if opt.Selected {
			t.Errorf("expected no preselected author on an empty form, got %+v", opt)
		}
	}
}

func TestCreateBook_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, _ := testutil.SeedCatalog(t, db)
	before := countRows(t, db, &model.Book{})

	w := doPostForm(router, "/books/create", bookForm("Book Three", author.ID, publisher.ID))
	expectRedirect(t, w, "/books")

	if after := countRows(t, db, &model.Book{}); after != before+1 {
		t.Fatalf("expected %d books after create, got %d", before+1, after)
	}

	var stored model.Book
	if err := db.First(&stored, "title = ?", "Book Three").Error; err != nil {
		t.Fatalf("expected book in db, got error: %v", err)
	}
	if stored.AuthorID != author.ID || stored.PublisherID != publisher.ID {
		t.Errorf("unexpected references: author=%d publisher=%d", stored.AuthorID, stored.PublisherID)
	}
	if stored.Version != 1 {
		t.Errorf("expected version 1, got %d", stored.Version)
	}
}

func TestCreateBook_InvalidSubmissionRedisplaysForm(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, _ := testutil.SeedCatalog(t, db)

	tests := []struct {
		name      string
		form      url.Values
		wantField string
		wantTitle string
	}{
		{
			name:      "missing title",
			form:      bookForm("", author.ID, publisher.ID),
			wantField: "title",
		},
		{
			name:      "blank title",
			form:      bookForm("   ", author.ID, publisher.ID),
			wantField: "title",
			wantTitle: "   ",
		},
		{
			name:      "title too long",
			form:      bookForm(strings.Repeat("x", 201), author.ID, publisher.ID),
			wantField: "title",
			wantTitle: strings.Repeat("x", 201),
		},
		{
			name:      "missing author",
			form:      url.Values{"title": {"No Author"}, "publisher_id": {"1"}},
			wantField: "author_id",
			wantTitle: "No Author",
		},
		{
			name:      "unknown author",
			form:      bookForm("Ghost Written", 999, publisher.ID),
			wantField: "author_id",
			wantTitle: "Ghost Written",
		},
		{
			name:      "unknown publisher",
			form:      bookForm("Self Published", author.ID, 999),
			wantField: "publisher_id",
			wantTitle: "Self Published",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := countRows(t, db, &model.Book{})

			w := doPostForm(router, "/books/create", tt.form)
			data := decodeView[BookFormView](t, w, "books/form")

			if after := countRows(t, db, &model.Book{}); after != before {
				t.Fatalf("expected book count to stay %d, got %d", before, after)
			}
			if data.Validation.Valid() {
				t.Fatalf("expected validation errors")
			}
			if data.Validation.Message(tt.wantField) == "" {
				t.Errorf("expected error on %q, got %+v", tt.wantField, data.Validation.Errors)
			}
			if data.Book.Title != tt.wantTitle {
				t.Errorf("expected submitted title %q to be kept, got %q", tt.wantTitle, data.Book.Title)
			}
			if len(data.Authors) == 0 || len(data.Publishers) == 0 {
				t.Errorf("expected select options to be re-attached")
			}
		})
	}
}

func TestCreateBook_InvalidSubmissionKeepsSelection(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, _ := testutil.SeedCatalog(t, db)

	w := doPostForm(router, "/books/create", bookForm("", author.ID, publisher.ID))
	data := decodeView[BookFormView](t, w, "books/form")

	if !data.Authors[0].Selected {
		t.Errorf("expected submitted author to be preselected")
	}
	if !data.Publishers[0].Selected {
		t.Errorf("expected submitted publisher to be preselected")
	}
}

func TestDeleteBookConfirm(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	_, _, books := testutil.SeedCatalog(t, db)

	w := doGet(router, "/books/delete/"+strconv.FormatUint(uint64(books[0].ID), 10))
	data := decodeView[BookDeleteView](t, w, "books/delete")

	if data.Book.ID != books[0].ID || data.Book.Title != "Book One" {
		t.Errorf("unexpected book for confirmation: %+v", data.Book)
	}
}

func TestBookFormLoads_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	testutil.SeedCatalog(t, db)

	paths := []string{
		"/books/delete",
		"/books/delete/999",
		"/books/delete/abc",
		"/books/delete/0",
		"/books/update",
		"/books/update/999",
		"/books/update/-1",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := doGet(router, path)

			if w.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
			}
			if resp := decodeError(t, w); resp.Code != "BOOK_NOT_FOUND" {
				t.Errorf("expected code BOOK_NOT_FOUND, got %q", resp.Code)
			}
		})
	}
}

func TestDeleteBook_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	_, _, books := testutil.SeedCatalog(t, db)
	path := "/books/delete/" + strconv.FormatUint(uint64(books[0].ID), 10)

	w := doPostForm(router, path, nil)
	expectRedirect(t, w, "/books")

	if n := countRows(t, db, &model.Book{}); n != 1 {
		t.Fatalf("expected 1 book after delete, got %d", n)
	}

	w = doPostForm(router, path, nil)
	expectRedirect(t, w, "/books")

	if n := countRows(t, db, &model.Book{}); n != 1 {
		t.Fatalf("expected count to stay 1 after deleting a missing book, got %d", n)
	}

	w = doPostForm(router, "/books/delete/not-a-number", nil)
	expectRedirect(t, w, "/books")
}

func TestUpdateBookForm(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	_, _, books := testutil.SeedCatalog(t, db)

	w := doGet(router, "/books/update/"+strconv.FormatUint(uint64(books[1].ID), 10))
	data := decodeView[BookFormView](t, w, "books/form")

	if data.Action != actionUpdate {
		t.Errorf("expected action %q, got %q", actionUpdate, data.Action)
	}
	if data.Book.Title != "Book Two" || data.Book.Version != 1 {
		t.Errorf("unexpected book in form: %+v", data.Book)
	}
	if len(data.Authors) != 1 || !data.Authors[0].Selected {
		t.Errorf("expected current author to be preselected: %+v", data.Authors)
	}
}

func TestUpdateBook_PersistsValues(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, books := testutil.SeedCatalog(t, db)
	otherPublisher := testutil.SeedPublisher(t, db, "Publisher Two")

	form := bookForm("Updated Title", author.ID, otherPublisher.ID)
	form.Set("version", "1")

	w := doPostForm(router, "/books/update/"+strconv.FormatUint(uint64(books[0].ID), 10), form)
	expectRedirect(t, w, "/books")

	var stored model.Book
	if err := db.First(&stored, books[0].ID).Error; err != nil {
		t.Fatalf("failed to reload book: %v", err)
	}

	if stored.Title != "Updated Title" {
		t.Errorf("expected title %q, got %q", "Updated Title", stored.Title)
	}
	if stored.PublisherID != otherPublisher.ID {
		t.Errorf("expected publisher %d, got %d", otherPublisher.ID, stored.PublisherID)
	}
	if stored.PublisherID == publisher.ID {
		t.Errorf("expected publisher to change")
	}
	if stored.Version != 2 {
		t.Errorf("expected version 2, got %d", stored.Version)
	}
}

func TestUpdateBook_InvalidSubmissionDoesNotMutate(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, books := testutil.SeedCatalog(t, db)

	w := doPostForm(router, "/books/update/"+strconv.FormatUint(uint64(books[0].ID), 10),
		bookForm(strings.Repeat("y", 300), author.ID, publisher.ID))
	data := decodeView[BookFormView](t, w, "books/form")

	if data.Validation.Message("title") == "" {
		t.Errorf("expected title error, got %+v", data.Validation.Errors)
	}
	if data.Book.ID != books[0].ID {
		t.Errorf("expected book id %d in form, got %d", books[0].ID, data.Book.ID)
	}

	var stored model.Book
	if err := db.First(&stored, books[0].ID).Error; err != nil {
		t.Fatalf("failed to reload book: %v", err)
	}
	if stored.Title != "Book One" || stored.Version != 1 {
		t.Errorf("expected book to be untouched, got %+v", stored)
	}
}

func TestUpdateBook_StaleVersionConflicts(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, books := testutil.SeedCatalog(t, db)
	path := "/books/update/" + strconv.FormatUint(uint64(books[0].ID), 10)

	first := bookForm("First Edit", author.ID, publisher.ID)
	first.Set("version", "1")
	expectRedirect(t, doPostForm(router, path, first), "/books")

	second := bookForm("Second Edit", author.ID, publisher.ID)
	second.Set("version", "1")
	w := doPostForm(router, path, second)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
	if resp := decodeError(t, w); resp.Code != "BOOK_UPDATE_CONFLICT" {
		t.Errorf("expected code BOOK_UPDATE_CONFLICT, got %q", resp.Code)
	}

	var stored model.Book
	if err := db.First(&stored, books[0].ID).Error; err != nil {
		t.Fatalf("failed to reload book: %v", err)
	}
	if stored.Title != "First Edit" {
		t.Errorf("expected first edit to win, got %q", stored.Title)
	}
}

func TestBooks_DeleteThenUpdateReturnsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	author, publisher, books := testutil.SeedCatalog(t, db)

	data := decodeView[BookIndexView](t, doGet(router, "/books"), "books/index")
	if len(data.Books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(data.Books))
	}

	path := strconv.FormatUint(uint64(books[0].ID), 10)
	expectRedirect(t, doPostForm(router, "/books/delete/"+path, nil), "/books")

	data = decodeView[BookIndexView](t, doGet(router, "/books"), "books/index")
	if len(data.Books) != 1 || data.Books[0].ID != books[1].ID {
		t.Fatalf("expected only book %d to remain, got %+v", books[1].ID, data.Books)
	}

	w := doPostForm(router, "/books/update/"+path, bookForm("Updated Title", author.ID, publisher.ID))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
	if resp := decodeError(t, w); resp.Code != "BOOK_NOT_FOUND" {
		t.Errorf("expected code BOOK_NOT_FOUND, got %q", resp.Code)
	}
	if n := countRows(t, db, &model.Book{}); n != 1 {
		t.Errorf("expected 1 book, got %d", n)
	}
}
