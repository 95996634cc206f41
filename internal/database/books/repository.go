// Package books provides database operations for book records.
//
// Reference fields (author, genres) are resolved with gorm Preload, the
// join-on-read counterpart of the catalog's reference model.
package books

import (
	"context"

	"gorm.io/gorm"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllSummaries retrieves all books projected to the fields the list page
// shows: title plus the resolved author.
func (r *Repository) GetAllSummaries(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Select("id", "title", "author_id").
		Preload("Author").
		Find(&books).Error
	return books, err
}

// GetByID retrieves a book with its author and genres resolved.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Genres").
		First(&book, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// GetByAuthor retrieves the books referencing an author, projected to
// title and summary for the author detail page.
func (r *Repository) GetByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Select("id", "title", "summary", "author_id").
		Where("author_id = ?", authorID).
		Find(&books).Error
	return books, err
}

// GetByGenre retrieves the books carrying a genre.
func (r *Repository) GetByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Find(&books).Error
	return books, err
}

// Create persists a new book and attaches its genre set. The genres are
// attached through the association so existing genre rows are never
// re-inserted.
func (r *Repository) Create(ctx context.Context, book *entities.Book, genreIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := make([]entities.Genre, len(genreIDs))
		for i, id := range genreIDs {
			genres[i] = entities.Genre{ID: id}
		}
		book.Genres = nil

		if err := tx.Omit("Genres", "Author", "Instances").Create(book).Error; err != nil {
			return err
		}
		if len(genres) == 0 {
			return nil
		}
		return tx.Model(book).Association("Genres").Replace(genres)
	})
}

// Update replaces the book's fields and its genre set in place, keeping
// its identity.
func (r *Repository) Update(ctx context.Context, id uint, book *entities.Book, genreIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, id).Error; err != nil {
			return database.Translate(err)
		}

		err := tx.Model(&entities.Book{ID: id}).
			Select("title", "summary", "isbn", "author_id").
			Updates(map[string]any{
				"title":     book.Title,
				"summary":   book.Summary,
				"isbn":      book.ISBN,
				"author_id": book.AuthorID,
			}).Error
		if err != nil {
			return err
		}

		genres := make([]entities.Genre, len(genreIDs))
		for i, gid := range genreIDs {
			genres[i] = entities.Genre{ID: gid}
		}
		return tx.Model(&entities.Book{ID: id}).Association("Genres").Replace(genres)
	})
	if err != nil {
		return err
	}
	book.ID = id
	return nil
}

// CountInstances returns how many copies reference the book.
func (r *Repository) CountInstances(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("book_id = ?", id).Count(&count).Error
	return count, err
}

// DeleteIfUnreferenced removes the book only when no copy references it.
// Check and delete share one transaction; the genre join rows go with the
// book. Returns false when blocked.
func (r *Repository) DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return database.Translate(err)
		}

		var count int64
		if err := tx.Model(&entities.BookInstance{}).Where("book_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entities.Book{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Count returns the total number of books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}
