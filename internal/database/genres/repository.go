// Package genres provides database operations for genre records.
package genres

import (
	"context"

	"gorm.io/gorm"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
)

// Repository handles all genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves all genres sorted by name.
func (r *Repository) GetAll(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetByID retrieves a genre by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &genre, nil
}

// GetByName retrieves a genre by its exact name. The match is case
// sensitive: "Fiction" and "fiction" are distinct genres.
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &genre, nil
}

// Create persists a new genre.
func (r *Repository) Create(ctx context.Context, genre *entities.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

// Update replaces the genre's name, keeping its identity.
func (r *Repository) Update(ctx context.Context, id uint, genre *entities.Genre) error {
	var existing entities.Genre
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return database.Translate(err)
	}

	err := r.db.WithContext(ctx).Model(&entities.Genre{ID: id}).
		Update("name", genre.Name).Error
	if err != nil {
		return err
	}
	genre.ID = id
	return nil
}

// CountBooks returns how many books carry the genre.
func (r *Repository) CountBooks(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("book_genres").Where("genre_id = ?", id).Count(&count).Error
	return count, err
}

// DeleteIfUnreferenced removes the genre only when no book carries it.
// Check and delete share one transaction. Returns false when blocked.
func (r *Repository) DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre entities.Genre
		if err := tx.First(&genre, id).Error; err != nil {
			return database.Translate(err)
		}

		var count int64
		if err := tx.Table("book_genres").Where("genre_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if err := tx.Delete(&entities.Genre{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

// Count returns the total number of genres.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Genre{}).Count(&count).Error
	return count, err
}
