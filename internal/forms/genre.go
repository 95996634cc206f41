package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"locallibrary/internal/entities"
)

// GenreForm carries the raw values of the genre create/update form.
type GenreForm struct {
	Name string
}

// Validate checks the name rule set.
func (f GenreForm) Validate() Errors {
	var errs Errors
	errs = appendErr(errs, "name", validation.Validate(f.Name,
		validation.Required.Error("Genre name required"),
		validation.RuneLength(3, 100).Error("Genre name must be between 3 and 100 characters"),
	))
	return errs
}

// GenreFormFromEntity pre-fills the form with a genre's stored name.
func GenreFormFromEntity(g entities.Genre) GenreForm {
	return GenreForm{Name: g.Name}
}

// Genre builds the entity from a validated form.
func (f GenreForm) Genre() entities.Genre {
	return entities.Genre{Name: f.Name}
}
