package http

import (
	"context"

	"locallibrary/internal/entities"
)

// The controllers consume the repositories through these interfaces; the
// concrete implementations live under internal/database.

// AuthorStore provides author persistence.
type AuthorStore interface {
	GetAll(ctx context.Context) ([]entities.Author, error)
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	Create(ctx context.Context, author *entities.Author) error
	Update(ctx context.Context, id uint, author *entities.Author) error
	DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// GenreStore provides genre persistence.
type GenreStore interface {
	GetAll(ctx context.Context) ([]entities.Genre, error)
	GetByID(ctx context.Context, id uint) (*entities.Genre, error)
	GetByName(ctx context.Context, name string) (*entities.Genre, error)
	Create(ctx context.Context, genre *entities.Genre) error
	Update(ctx context.Context, id uint, genre *entities.Genre) error
	DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BookStore provides book persistence.
type BookStore interface {
	GetAllSummaries(ctx context.Context) ([]entities.Book, error)
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	GetByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	GetByGenre(ctx context.Context, genreID uint) ([]entities.Book, error)
	Create(ctx context.Context, book *entities.Book, genreIDs []uint) error
	Update(ctx context.Context, id uint, book *entities.Book, genreIDs []uint) error
	DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// InstanceStore provides book-copy persistence.
type InstanceStore interface {
	GetAll(ctx context.Context) ([]entities.BookInstance, error)
	GetByID(ctx context.Context, id uint) (*entities.BookInstance, error)
	GetByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error)
	Create(ctx context.Context, instance *entities.BookInstance) error
	Update(ctx context.Context, id uint, instance *entities.BookInstance) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entities.InstanceStatus) (int64, error)
}
