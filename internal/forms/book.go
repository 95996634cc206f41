package forms

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"locallibrary/internal/entities"
)

// BookForm carries the raw values of the book create/update form.
//
// GenreIDs holds whatever the transport produced: the form may submit the
// genre field many times, once, or not at all. GenreIDSet normalizes all
// three shapes into a deduplicated reference set.
type BookForm struct {
	Title    string
	AuthorID string
	Summary  string
	ISBN     string
	GenreIDs []string
}

// Validate checks every field rule and returns the violations in form order.
func (f BookForm) Validate() Errors {
	var errs Errors
	errs = appendErr(errs, "title", validation.Validate(f.Title,
		validation.Required.Error("Title must not be empty"),
	))
	errs = appendErr(errs, "author", validation.Validate(f.AuthorID,
		validation.Required.Error("Author must not be empty"),
		is.Digit.Error("Author must be a valid selection"),
	))
	errs = appendErr(errs, "summary", validation.Validate(f.Summary,
		validation.Required.Error("Summary must not be empty"),
	))
	errs = appendErr(errs, "isbn", validation.Validate(f.ISBN,
		validation.Required.Error("ISBN must not be empty"),
	))
	for _, id := range f.GenreIDs {
		if err := validation.Validate(id, is.Digit.Error("Genre must be a valid selection")); err != nil {
			errs = appendErr(errs, "genre", err)
			break
		}
	}
	return errs
}

// BookFormFromEntity pre-fills the form with a book's stored fields and
// its currently attached genres, used when rendering the update form.
func BookFormFromEntity(b entities.Book) BookForm {
	genreIDs := make([]string, len(b.Genres))
	for i, g := range b.Genres {
		genreIDs[i] = strconv.FormatUint(uint64(g.ID), 10)
	}
	return BookForm{
		Title:    b.Title,
		AuthorID: strconv.FormatUint(uint64(b.AuthorID), 10),
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		GenreIDs: genreIDs,
	}
}

// Book builds the entity from a validated form.
func (f BookForm) Book() entities.Book {
	authorID, _ := strconv.ParseUint(f.AuthorID, 10, 32)
	return entities.Book{
		Title:    f.Title,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		AuthorID: uint(authorID),
	}
}

// GenreIDSet returns the selected genres as a deduplicated set of IDs.
// An omitted genre field yields the empty set, never an error.
func (f BookForm) GenreIDSet() []uint {
	seen := make(map[uint]bool, len(f.GenreIDs))
	set := make([]uint, 0, len(f.GenreIDs))
	for _, raw := range f.GenreIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		if seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		set = append(set, uint(id))
	}
	return set
}

// HasGenre reports whether a genre ID is part of the selection. Used by
// the form template to re-check previously selected genres.
func (f BookForm) HasGenre(id uint) bool {
	for _, selected := range f.GenreIDSet() {
		if selected == id {
			return true
		}
	}
	return false
}
