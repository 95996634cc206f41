package forms

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"locallibrary/internal/entities"
)

// BookInstanceForm carries the raw values of the copy create/update form.
type BookInstanceForm struct {
	BookID  string
	Imprint string
	Status  string
	DueBack string
}

// Validate checks every field rule and returns the violations in form order.
// Status is optional; when present it must be one of the known statuses.
func (f BookInstanceForm) Validate() Errors {
	var errs Errors
	errs = appendErr(errs, "book", validation.Validate(f.BookID,
		validation.Required.Error("Book must be specified"),
		is.Digit.Error("Book must be a valid selection"),
	))
	errs = appendErr(errs, "imprint", validation.Validate(f.Imprint,
		validation.Required.Error("Imprint must be specified"),
	))
	if f.Status != "" && !entities.InstanceStatus(f.Status).Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
	}
	errs = appendErr(errs, "due_back", validation.Validate(f.DueBack,
		dateRule("Invalid date"),
	))
	return errs
}

// BookInstanceFormFromEntity pre-fills the form with a copy's stored
// fields, used when rendering the update form.
func BookInstanceFormFromEntity(bi entities.BookInstance) BookInstanceForm {
	return BookInstanceForm{
		BookID:  strconv.FormatUint(uint64(bi.BookID), 10),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: DateValue(bi.DueBack),
	}
}

// BookInstance builds the entity from a validated form. An empty status
// defaults to maintenance.
func (f BookInstanceForm) BookInstance() entities.BookInstance {
	bookID, _ := strconv.ParseUint(f.BookID, 10, 32)
	status := entities.InstanceStatus(f.Status)
	if status == "" {
		status = entities.StatusMaintenance
	}
	return entities.BookInstance{
		BookID:  uint(bookID),
		Imprint: f.Imprint,
		Status:  status,
		DueBack: parseDate(f.DueBack),
	}
}
