package genres

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
	dbPath := "./test_genres_" + t.Name() + ".db"

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

func TestRepository_GetAll_SortedByName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "Poetry"}))
	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "Fantasy"}))
	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "History"}))

	genres, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Fantasy", genres[0].Name)
	assert.Equal(t, "History", genres[1].Name)
	assert.Equal(t, "Poetry", genres[2].Name)
}

func TestRepository_GetByName_CaseSensitive(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entities.Genre{Name: "Fantasy"}))

	found, err := repo.GetByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", found.Name)

	_, err = repo.GetByName(ctx, "fantasy")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Update_ReplacesNameKeepsIdentity(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	genre := &entities.Genre{Name: "Sci Fi"}
	require.NoError(t, repo.Create(ctx, genre))
	id := genre.ID

	updated := entities.Genre{Name: "Science Fiction"}
	require.NoError(t, repo.Update(ctx, id, &updated))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "Science Fiction", stored.Name)
}

func TestRepository_DeleteIfUnreferenced(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))

	book := entities.Book{Title: "The Hobbit", Genres: []entities.Genre{{ID: genre.ID}}}
	require.NoError(t, db.Create(&book).Error)

	deleted, err := repo.DeleteIfUnreferenced(ctx, genre.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, db.Exec("DELETE FROM book_genres WHERE genre_id = ?", genre.ID).Error)

	deleted, err = repo.DeleteIfUnreferenced(ctx, genre.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, genre.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_CountBooks(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	genre := &entities.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, genre))
	require.NoError(t, db.Create(&entities.Book{Title: "A", Genres: []entities.Genre{{ID: genre.ID}}}).Error)
	require.NoError(t, db.Create(&entities.Book{Title: "B", Genres: []entities.Genre{{ID: genre.ID}}}).Error)

	count, err := repo.CountBooks(ctx, genre.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
