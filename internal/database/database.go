// Package database owns the sqlite store shared by the catalog repositories.
//
// Each collection has its own repository package underneath this one:
//
//	repo := authors.NewRepository(db.DB)
//	author, err := repo.GetByID(ctx, 123)
package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locallibrary/internal/entities"
)

// ErrNotFound is returned when a requested record does not exist.
// Repositories translate gorm.ErrRecordNotFound into it so handlers can
// distinguish a missing entity from a store failure.
var ErrNotFound = errors.New("record not found")

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all catalog collections
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Translate maps gorm's record-not-found error onto ErrNotFound and passes
// every other error through untouched.
func Translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
