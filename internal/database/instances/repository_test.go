package instances

import (
	"context"
	"os"
	"testing"
	"time"

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
	dbPath := "./test_instances_" + t.Name() + ".db"

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

func seedBook(t *testing.T, db *gorm.DB, title string) entities.Book {
	t.Helper()
	book := entities.Book{Title: title}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRepository_Create(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")

	instance := entities.BookInstance{BookID: book.ID, Imprint: "HarperCollins, 1995", Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(ctx, &instance))
	assert.NotZero(t, instance.ID)
}

func TestRepository_GetByID_ResolvesBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")
	instance := entities.BookInstance{BookID: book.ID, Imprint: "i", Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(ctx, &instance))

	stored, err := repo.GetByID(ctx, instance.ID)

	require.NoError(t, err)
	assert.Equal(t, "The Hobbit", stored.Book.Title)
}

func TestRepository_GetByBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	hobbit := seedBook(t, db, "The Hobbit")
	foundation := seedBook(t, db, "Foundation")
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: hobbit.ID, Imprint: "a"}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: hobbit.ID, Imprint: "b"}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: foundation.ID, Imprint: "c"}))

	copies, err := repo.GetByBook(ctx, hobbit.ID)

	require.NoError(t, err)
	assert.Len(t, copies, 2)
}

func TestRepository_GetOverdue(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	overdue := entities.BookInstance{BookID: book.ID, Imprint: "late", Status: entities.StatusLoaned, DueBack: datePtr(2024, 6, 1)}
	onTime := entities.BookInstance{BookID: book.ID, Imprint: "ok", Status: entities.StatusLoaned, DueBack: datePtr(2024, 7, 1)}
	shelved := entities.BookInstance{BookID: book.ID, Imprint: "shelf", Status: entities.StatusAvailable}
	require.NoError(t, repo.Create(ctx, &overdue))
	require.NoError(t, repo.Create(ctx, &onTime))
	require.NoError(t, repo.Create(ctx, &shelved))

	list, err := repo.GetOverdue(ctx, now)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "late", list[0].Imprint)
	assert.Equal(t, "The Hobbit", list[0].Book.Title)
}

func TestRepository_Update_SinglePersistenceCall(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")
	instance := entities.BookInstance{BookID: book.ID, Imprint: "old", Status: entities.StatusLoaned, DueBack: datePtr(2024, 6, 1)}
	require.NoError(t, repo.Create(ctx, &instance))
	id := instance.ID

	updated := entities.BookInstance{BookID: book.ID, Imprint: "new", Status: entities.StatusAvailable}
	require.NoError(t, repo.Update(ctx, id, &updated))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "new", stored.Imprint)
	assert.Equal(t, entities.StatusAvailable, stored.Status)
	// Omitting the due date on update clears the stored one
	assert.Nil(t, stored.DueBack)
}

func TestRepository_Delete(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")
	instance := entities.BookInstance{BookID: book.ID, Imprint: "i"}
	require.NoError(t, repo.Create(ctx, &instance))

	require.NoError(t, repo.Delete(ctx, instance.ID))

	_, err := repo.GetByID(ctx, instance.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Delete(context.Background(), 999)

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	book := seedBook(t, db, "The Hobbit")
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "a", Status: entities.StatusAvailable}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "b", Status: entities.StatusAvailable}))
	require.NoError(t, repo.Create(ctx, &entities.BookInstance{BookID: book.ID, Imprint: "c", Status: entities.StatusLoaned}))

	count, err := repo.CountByStatus(ctx, entities.StatusAvailable)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
