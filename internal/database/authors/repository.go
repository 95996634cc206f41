// Package authors provides database operations for author records.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetByID(ctx, 123)
package authors

import (
	"context"

	"gorm.io/gorm"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves all authors sorted by family name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.WithContext(ctx).Order("family_name ASC").Find(&authors).Error
	return authors, err
}

// GetByID retrieves an author by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &author, nil
}

// Create persists a new author.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// Update replaces the author's fields in place, keeping its identity.
// Selecting the columns explicitly lets an update clear a previously
// recorded date.
func (r *Repository) Update(ctx context.Context, id uint, author *entities.Author) error {
	var existing entities.Author
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return database.Translate(err)
	}

	err := r.db.WithContext(ctx).Model(&entities.Author{ID: id}).
		Select("first_name", "family_name", "date_of_birth", "date_of_death").
		Updates(map[string]any{
			"first_name":    author.FirstName,
			"family_name":   author.FamilyName,
			"date_of_birth": author.DateOfBirth,
			"date_of_death": author.DateOfDeath,
		}).Error
	if err != nil {
		return err
	}
	author.ID = id
	return nil
}

// CountBooks returns how many books reference the author.
func (r *Repository) CountBooks(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("author_id = ?", id).Count(&count).Error
	return count, err
}

// DeleteIfUnreferenced removes the author only when no book references it.
// The dependent check and the delete run in one transaction so a book
// created between them cannot be orphaned. Returns false when blocked.
func (r *Repository) DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, id).Error; err != nil {
			return database.Translate(err)
		}

		var count int64
		if err := tx.Model(&entities.Book{}).Where("author_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Delete(&entities.Author{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Count returns the total number of authors.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error
	return count, err
}
