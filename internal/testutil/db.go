package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/library-catalog/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + "_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=1"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewTestDB returns a migrated in-memory database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := open(t, "testdb")
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// NewErrorDB returns a database without any tables, so every query fails.
func NewErrorDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, "errdb")
}

func SeedAuthor(t *testing.T, db *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{Name: name}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author %q: %v", name, err)
	}

	return author
}

func SeedPublisher(t *testing.T, db *gorm.DB, name string) model.Publisher {
	t.Helper()

	publisher := model.Publisher{Name: name}
	if err := db.Create(&publisher).Error; err != nil {
		t.Fatalf("failed to seed publisher %q: %v", name, err)
	}

	return publisher
}

func SeedBook(t *testing.T, db *gorm.DB, title string, authorID, publisherID uint) model.Book {
	t.Helper()

	book := model.Book{
		Title:       title,
		AuthorID:    authorID,
		PublisherID: publisherID,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

// SeedCatalog seeds one author, one publisher and the books "Book One" and
// "Book Two", both referencing them.
func SeedCatalog(t *testing.T, db *gorm.DB) (model.Author, model.Publisher, []model.Book) {
	t.Helper()

	author := SeedAuthor(t, db, "Author One")
	publisher := SeedPublisher(t, db, "Publisher One")

	books := []model.Book{
		SeedBook(t, db, "Book One", author.ID, publisher.ID),
		SeedBook(t, db, "Book Two", author.ID, publisher.ID),
	}

	return author, publisher, books
}
