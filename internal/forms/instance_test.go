package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locallibrary/internal/entities"
)

func TestBookInstanceForm_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := BookInstanceForm{BookID: "1", Imprint: "HarperCollins", Status: "loaned", DueBack: "2024-06-01"}
		assert.Empty(t, form.Validate())
	})

	t.Run("missing book and imprint", func(t *testing.T) {
		errs := BookInstanceForm{}.Validate()

		require.Len(t, errs, 2)
		assert.Equal(t, "book", errs[0].Field)
		assert.Equal(t, "imprint", errs[1].Field)
	})

	t.Run("unknown status", func(t *testing.T) {
		form := BookInstanceForm{BookID: "1", Imprint: "i", Status: "lost"}
		errs := form.Validate()

		assert.Equal(t, "Invalid status", errs.For("status"))
	})

	t.Run("invalid due date", func(t *testing.T) {
		form := BookInstanceForm{BookID: "1", Imprint: "i", DueBack: "June 1st"}
		errs := form.Validate()

		assert.Equal(t, "Invalid date", errs.For("due_back"))
	})
}

func TestBookInstanceForm_BookInstance(t *testing.T) {
	t.Run("empty status defaults to maintenance", func(t *testing.T) {
		form := BookInstanceForm{BookID: "3", Imprint: "i"}
		instance := form.BookInstance()

		assert.Equal(t, uint(3), instance.BookID)
		assert.Equal(t, entities.StatusMaintenance, instance.Status)
		assert.Nil(t, instance.DueBack)
	})

	t.Run("due date parsed", func(t *testing.T) {
		form := BookInstanceForm{BookID: "3", Imprint: "i", Status: "loaned", DueBack: "2024-06-01"}
		instance := form.BookInstance()

		require.NotNil(t, instance.DueBack)
		assert.Equal(t, entities.StatusLoaned, instance.Status)
	})
}
