// Command seed creates a catalog database with sample data.
// Usage: go run cmd/seed/main.go [-db path/to/locallibrary.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"locallibrary/internal/database"
	"locallibrary/internal/database/authors"
	"locallibrary/internal/database/books"
	"locallibrary/internal/database/genres"
	"locallibrary/internal/database/instances"
	"locallibrary/internal/entities"
)

const defaultDatabasePath = "./locallibrary.db"

func main() {
	dbPath := flag.String("db", defaultDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding catalog database at %s...", *dbPath)

	// Delete existing database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	authorRepo := authors.NewRepository(db.DB)
	genreRepo := genres.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	instanceRepo := instances.NewRepository(db.DB)

	fantasy := seedGenre(ctx, genreRepo, "Fantasy")
	scifi := seedGenre(ctx, genreRepo, "Science Fiction")
	poetry := seedGenre(ctx, genreRepo, "Poetry")

	tolkien := seedAuthor(ctx, authorRepo, "John Ronald Reuel", "Tolkien", date(1892, 1, 3), date(1973, 9, 2))
	asimov := seedAuthor(ctx, authorRepo, "Isaac", "Asimov", date(1920, 1, 2), date(1992, 4, 6))
	rothfuss := seedAuthor(ctx, authorRepo, "Patrick", "Rothfuss", date(1973, 6, 6), nil)

	hobbit := seedBook(ctx, bookRepo, entities.Book{
		Title:    "The Hobbit",
		Summary:  "Bilbo Baggins is swept into a quest to reclaim the lonely mountain from the dragon Smaug.",
		ISBN:     "9780261103283",
		AuthorID: tolkien.ID,
	}, fantasy.ID)
	foundation := seedBook(ctx, bookRepo, entities.Book{
		Title:    "Foundation",
		Summary:  "Hari Seldon's psychohistory predicts the fall of the Galactic Empire.",
		ISBN:     "9780553293357",
		AuthorID: asimov.ID,
	}, scifi.ID)
	seedBook(ctx, bookRepo, entities.Book{
		Title:    "The Name of the Wind",
		Summary:  "Kvothe recounts his rise from street urchin to the most notorious wizard of his age.",
		ISBN:     "9780756404741",
		AuthorID: rothfuss.ID,
	}, fantasy.ID, poetry.ID)

	dueBack := time.Now().AddDate(0, 0, 14)
	seedInstance(ctx, instanceRepo, hobbit.ID, "HarperCollins, 1995", entities.StatusAvailable, nil)
	seedInstance(ctx, instanceRepo, hobbit.ID, "HarperCollins, 1995", entities.StatusLoaned, &dueBack)
	seedInstance(ctx, instanceRepo, foundation.ID, "Bantam Spectra, 1991", entities.StatusMaintenance, nil)

	log.Println("Catalog database seeded successfully!")
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedAuthor(ctx context.Context, repo *authors.Repository, first, family string, born, died *time.Time) *entities.Author {
	author := &entities.Author{FirstName: first, FamilyName: family, DateOfBirth: born, DateOfDeath: died}
	if err := repo.Create(ctx, author); err != nil {
		log.Fatalf("Failed to create author %s: %v", family, err)
	}
	log.Printf("Created author: %s", author.Name())
	return author
}

func seedGenre(ctx context.Context, repo *genres.Repository, name string) *entities.Genre {
	genre := &entities.Genre{Name: name}
	if err := repo.Create(ctx, genre); err != nil {
		log.Fatalf("Failed to create genre %s: %v", name, err)
	}
	log.Printf("Created genre: %s", name)
	return genre
}

func seedBook(ctx context.Context, repo *books.Repository, book entities.Book, genreIDs ...uint) *entities.Book {
	if err := repo.Create(ctx, &book, genreIDs); err != nil {
		log.Fatalf("Failed to create book %s: %v", book.Title, err)
	}
	log.Printf("Created book: %s", book.Title)
	return &book
}

func seedInstance(ctx context.Context, repo *instances.Repository, bookID uint, imprint string, status entities.InstanceStatus, dueBack *time.Time) {
	instance := &entities.BookInstance{BookID: bookID, Imprint: imprint, Status: status, DueBack: dueBack}
	if err := repo.Create(ctx, instance); err != nil {
		log.Fatalf("Failed to create instance for book %d: %v", bookID, err)
	}
	log.Printf("Created instance: %s (%s)", imprint, status)
}
