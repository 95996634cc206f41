package books

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db), db, cleanup
}

func seedAuthor(t *testing.T, db *gorm.DB, family string) entities.Author {
	t.Helper()
	author := entities.Author{FirstName: "Test", FamilyName: family}
	require.NoError(t, db.Create(&author).Error)
	return author
}

func seedGenre(t *testing.T, db *gorm.DB, name string) entities.Genre {
	t.Helper()
	genre := entities.Genre{Name: name}
	require.NoError(t, db.Create(&genre).Error)
	return genre
}

func TestRepository_Create_AttachesGenres(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")
	fantasy := seedGenre(t, db, "Fantasy")
	poetry := seedGenre(t, db, "Poetry")

	book := entities.Book{Title: "The Hobbit", Summary: "s", ISBN: "1", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, &book, []uint{fantasy.ID, poetry.ID}))
	require.NotZero(t, book.ID)

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tolkien", stored.Author.FamilyName)
	assert.Len(t, stored.Genres, 2)
}

func TestRepository_Create_NoGenres(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")

	book := entities.Book{Title: "The Hobbit", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, &book, nil))

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Genres)
}

func TestRepository_GetAllSummaries_ResolvesAuthors(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Asimov")
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "Foundation", AuthorID: author.ID}, nil))

	books, err := repo.GetAllSummaries(ctx)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Foundation", books[0].Title)
	assert.Equal(t, "Asimov", books[0].Author.FamilyName)
}

func TestRepository_GetByAuthor(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	asimov := seedAuthor(t, db, "Asimov")
	tolkien := seedAuthor(t, db, "Tolkien")
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "Foundation", AuthorID: asimov.ID}, nil))
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "The Hobbit", AuthorID: tolkien.ID}, nil))

	books, err := repo.GetByAuthor(ctx, asimov.ID)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Foundation", books[0].Title)
}

func TestRepository_GetByGenre(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")
	fantasy := seedGenre(t, db, "Fantasy")
	history := seedGenre(t, db, "History")
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "The Hobbit", AuthorID: author.ID}, []uint{fantasy.ID}))
	require.NoError(t, repo.Create(ctx, &entities.Book{Title: "SPQR", AuthorID: author.ID}, []uint{history.ID}))

	books, err := repo.GetByGenre(ctx, fantasy.ID)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "The Hobbit", books[0].Title)
}

func TestRepository_Update_ReplacesGenreSet(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")
	fantasy := seedGenre(t, db, "Fantasy")
	poetry := seedGenre(t, db, "Poetry")

	book := entities.Book{Title: "The Hobbit", Summary: "old", ISBN: "1", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, &book, []uint{fantasy.ID}))
	id := book.ID

	updated := entities.Book{Title: "The Hobbit, Revised", Summary: "new", ISBN: "2", AuthorID: author.ID}
	require.NoError(t, repo.Update(ctx, id, &updated, []uint{poetry.ID}))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "The Hobbit, Revised", stored.Title)
	assert.Equal(t, "new", stored.Summary)
	require.Len(t, stored.Genres, 1)
	assert.Equal(t, "Poetry", stored.Genres[0].Name)
}

func TestRepository_Update_ClearsGenres(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")
	fantasy := seedGenre(t, db, "Fantasy")

	book := entities.Book{Title: "The Hobbit", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, &book, []uint{fantasy.ID}))

	updated := entities.Book{Title: "The Hobbit", AuthorID: author.ID}
	require.NoError(t, repo.Update(ctx, book.ID, &updated, nil))

	stored, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Genres)
}

func TestRepository_DeleteIfUnreferenced(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	author := seedAuthor(t, db, "Tolkien")
	fantasy := seedGenre(t, db, "Fantasy")

	book := entities.Book{Title: "The Hobbit", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, &book, []uint{fantasy.ID}))

	instance := entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusAvailable}
	require.NoError(t, db.Create(&instance).Error)

	deleted, err := repo.DeleteIfUnreferenced(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, db.Delete(&instance).Error)

	deleted, err = repo.DeleteIfUnreferenced(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	// Genre join rows go with the book
	var joinCount int64
	require.NoError(t, db.Table("book_genres").Where("book_id = ?", book.ID).Count(&joinCount).Error)
	assert.Zero(t, joinCount)
}
