package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locallibrary/internal/entities"
)

func TestIndexController_Home(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	author := entities.Author{FirstName: "Jane", FamilyName: "Austen"}
	require.NoError(t, db.DB.Create(&author).Error)
	book := entities.Book{Title: "Emma", AuthorID: author.ID}
	require.NoError(t, db.DB.Create(&book).Error)
	require.NoError(t, db.DB.Create(&entities.BookInstance{BookID: book.ID, Imprint: "a", Status: entities.StatusAvailable}).Error)
	require.NoError(t, db.DB.Create(&entities.BookInstance{BookID: book.ID, Imprint: "b", Status: entities.StatusLoaned}).Error)

	w := get(router, "/catalog")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>Books:</strong> 1")
	assert.Contains(t, body, "<strong>Copies:</strong> 2")
	assert.Contains(t, body, "<strong>Copies available:</strong> 1")
	assert.Contains(t, body, "<strong>Authors:</strong> 1")
	assert.Contains(t, body, "<strong>Genres:</strong> 0")
}
