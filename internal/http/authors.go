package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"locallibrary/internal/database"
	"locallibrary/internal/entities"
	"locallibrary/internal/forms"
)

// AuthorsController serves the author pages and forms.
type AuthorsController struct {
	authors AuthorStore
	books   BookStore
	*Renderer
}

// NewAuthorsController creates a new authors controller.
func NewAuthorsController(authors AuthorStore, books BookStore, r *Renderer) *AuthorsController {
	return &AuthorsController{authors: authors, books: books, Renderer: r}
}

// List shows all authors sorted by family name.
func (ctl *AuthorsController) List(c *gin.Context) {
	authors, err := ctl.authors.GetAll(c.Request.Context())
	if err != nil {
		ctl.Error(c, err, "author list")
		return
	}
	ctl.HTML(c, http.StatusOK, "author_list", gin.H{
		"Title":   "Author List",
		"Authors": authors,
	})
}

// Detail shows one author together with every book referencing them.
// The two reads are independent and fetched concurrently.
func (ctl *AuthorsController) Detail(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Author")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var author *entities.Author
	var books []entities.Book
	g.Go(func() error {
		var err error
		author, err = ctl.authors.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = ctl.books.GetByAuthor(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "author")
		return
	}

	ctl.HTML(c, http.StatusOK, "author_detail", gin.H{
		"Title":  "Author Detail",
		"Author": author,
		"Books":  books,
	})
}

// CreateForm shows an empty author form.
func (ctl *AuthorsController) CreateForm(c *gin.Context) {
	ctl.HTML(c, http.StatusOK, "author_form", gin.H{
		"Title": "Create Author",
		"Form":  forms.AuthorForm{},
	})
}

// Create validates the submitted form and persists a new author. On
// validation failure the form is re-rendered with the entered values.
func (ctl *AuthorsController) Create(c *gin.Context) {
	form := authorFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		ctl.HTML(c, http.StatusOK, "author_form", gin.H{
			"Title":  "Create Author",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	author := form.Author()
	if err := ctl.authors.Create(c.Request.Context(), &author); err != nil {
		ctl.Error(c, err, "author create")
		return
	}
	ctl.Flash(c, "Author created")
	c.Redirect(http.StatusFound, author.URL())
}

// UpdateForm shows the author form pre-filled with the stored fields.
func (ctl *AuthorsController) UpdateForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Author")
	if !ok {
		return
	}
	author, err := ctl.authors.GetByID(c.Request.Context(), id)
	if err != nil {
		ctl.Error(c, err, "author")
		return
	}
	ctl.HTML(c, http.StatusOK, "author_form", gin.H{
		"Title": "Update Author",
		"Form":  forms.AuthorFormFromEntity(*author),
	})
}

// Update validates the submitted form and replaces the author's fields in
// place; the identity is preserved.
func (ctl *AuthorsController) Update(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Author")
	if !ok {
		return
	}

	form := authorFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		ctl.HTML(c, http.StatusOK, "author_form", gin.H{
			"Title":  "Update Author",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	author := form.Author()
	if err := ctl.authors.Update(c.Request.Context(), id, &author); err != nil {
		ctl.Error(c, err, "author")
		return
	}
	ctl.Flash(c, "Author updated")
	c.Redirect(http.StatusFound, author.URL())
}

// DeleteForm shows the delete confirmation page with every dependent book.
// A missing author soft-fails with a redirect to the list.
func (ctl *AuthorsController) DeleteForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Author")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var author *entities.Author
	var books []entities.Book
	g.Go(func() error {
		var err error
		author, err = ctl.authors.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = ctl.books.GetByAuthor(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		ctl.Error(c, err, "author")
		return
	}

	ctl.HTML(c, http.StatusOK, "author_delete", gin.H{
		"Title":  "Delete Author",
		"Author": author,
		"Books":  books,
	})
}

// Delete removes the author unless books still reference them. A blocked
// delete re-renders the confirmation page listing the dependents.
func (ctl *AuthorsController) Delete(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Author")
	if !ok {
		return
	}

	deleted, err := ctl.authors.DeleteIfUnreferenced(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Already gone, nothing left to delete
			c.Redirect(http.StatusFound, "/catalog/authors")
			return
		}
		ctl.Error(c, err, "author delete")
		return
	}

	if !deleted {
		author, err := ctl.authors.GetByID(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "author")
			return
		}
		books, err := ctl.books.GetByAuthor(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "author books")
			return
		}
		ctl.HTML(c, http.StatusOK, "author_delete", gin.H{
			"Title":  "Delete Author",
			"Author": author,
			"Books":  books,
		})
		return
	}

	ctl.Flash(c, "Author deleted")
	c.Redirect(http.StatusFound, "/catalog/authors")
}

// authorFormFromRequest binds and trims the author form fields.
func authorFormFromRequest(c *gin.Context) forms.AuthorForm {
	return forms.AuthorForm{
		FirstName:   strings.TrimSpace(c.PostForm("first_name")),
		FamilyName:  strings.TrimSpace(c.PostForm("family_name")),
		DateOfBirth: strings.TrimSpace(c.PostForm("date_of_birth")),
		DateOfDeath: strings.TrimSpace(c.PostForm("date_of_death")),
	}
}
