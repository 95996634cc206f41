package forms

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"locallibrary/internal/entities"
)

// AuthorForm carries the raw values of the author create/update form.
type AuthorForm struct {
	FirstName   string
	FamilyName  string
	DateOfBirth string
	DateOfDeath string
}

// Validate checks every field rule and returns the violations in form order.
func (f AuthorForm) Validate() Errors {
	var errs Errors
	errs = appendErr(errs, "first_name", validation.Validate(f.FirstName,
		validation.Required.Error("First name must be specified"),
		validation.RuneLength(1, 100).Error("First name must be at most 100 characters"),
	))
	errs = appendErr(errs, "family_name", validation.Validate(f.FamilyName,
		validation.Required.Error("Family name must be specified"),
		validation.RuneLength(1, 100).Error("Family name must be at most 100 characters"),
	))
	errs = appendErr(errs, "date_of_birth", validation.Validate(f.DateOfBirth,
		dateRule("Invalid date of birth"),
	))
	errs = appendErr(errs, "date_of_death", validation.Validate(f.DateOfDeath,
		dateRule("Invalid date of death"),
	))
	return errs
}

// AuthorFormFromEntity pre-fills the form with an author's stored fields,
// used when rendering the update form.
func AuthorFormFromEntity(a entities.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: DateValue(a.DateOfBirth),
		DateOfDeath: DateValue(a.DateOfDeath),
	}
}

// Author builds the entity from a validated form.
func (f AuthorForm) Author() entities.Author {
	return entities.Author{
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: parseDate(f.DateOfBirth),
		DateOfDeath: parseDate(f.DateOfDeath),
	}
}
