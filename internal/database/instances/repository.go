// Package instances provides database operations for book copies.
//
// Copies are the leaf of the catalog's reference graph: nothing references
// them, so deletes are unconditional.
package instances

import (
	"context"
	"time"

	"gorm.io/gorm"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
)

// Repository handles all book-instance database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new instances repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll retrieves all copies with their books resolved.
func (r *Repository) GetAll(ctx context.Context) ([]entities.BookInstance, error) {
	var list []entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").Find(&list).Error
	return list, err
}

// GetByID retrieves a copy with its book resolved.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	err := r.db.WithContext(ctx).Preload("Book").First(&instance, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &instance, nil
}

// GetByBook retrieves all copies of one book.
func (r *Repository) GetByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error) {
	var list []entities.BookInstance
	err := r.db.WithContext(ctx).Where("book_id = ?", bookID).Find(&list).Error
	return list, err
}

// GetOverdue retrieves loaned copies whose due date has passed.
func (r *Repository) GetOverdue(ctx context.Context, now time.Time) ([]entities.BookInstance, error) {
	var list []entities.BookInstance
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("status = ? AND due_back IS NOT NULL AND due_back < ?", entities.StatusLoaned, now).
		Find(&list).Error
	return list, err
}

// Create persists a new copy.
func (r *Repository) Create(ctx context.Context, instance *entities.BookInstance) error {
	return r.db.WithContext(ctx).Omit("Book").Create(instance).Error
}

// Update replaces the copy's fields in place, keeping its identity.
// Exactly one persistence call per update.
func (r *Repository) Update(ctx context.Context, id uint, instance *entities.BookInstance) error {
	var existing entities.BookInstance
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return database.Translate(err)
	}

	err := r.db.WithContext(ctx).Model(&entities.BookInstance{ID: id}).
		Select("book_id", "imprint", "status", "due_back").
		Updates(map[string]any{
			"book_id":  instance.BookID,
			"imprint":  instance.Imprint,
			"status":   instance.Status,
			"due_back": instance.DueBack,
		}).Error
	if err != nil {
		return err
	}
	instance.ID = id
	return nil
}

// Delete removes a copy.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	var existing entities.BookInstance
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return database.Translate(err)
	}
	return r.db.WithContext(ctx).Delete(&entities.BookInstance{}, id).Error
}

// Count returns the total number of copies.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of copies currently in a status.
func (r *Repository) CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookInstance{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
