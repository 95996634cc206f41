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

// BooksController serves the book pages and forms.
type BooksController struct {
	books     BookStore
	authors   AuthorStore
	genres    GenreStore
	instances InstanceStore
	*Renderer
}

// NewBooksController creates a new books controller.
func NewBooksController(books BookStore, authors AuthorStore, genres GenreStore, instances InstanceStore, r *Renderer) *BooksController {
	return &BooksController{
		books:     books,
		authors:   authors,
		genres:    genres,
		instances: instances,
		Renderer:  r,
	}
}

// GenreOption is a genre with its selection state for the book form.
type GenreOption struct {
	entities.Genre
	Checked bool
}

// markSelected flags the genres already attached to the submitted form.
func markSelected(genres []entities.Genre, form forms.BookForm) []GenreOption {
	options := make([]GenreOption, len(genres))
	for i, g := range genres {
		options[i] = GenreOption{Genre: g, Checked: form.HasGenre(g.ID)}
	}
	return options
}

// List shows all books with their authors resolved.
func (ctl *BooksController) List(c *gin.Context) {
	books, err := ctl.books.GetAllSummaries(c.Request.Context())
	if err != nil {
		ctl.Error(c, err, "book list")
		return
	}
	ctl.HTML(c, http.StatusOK, "book_list", gin.H{
		"Title": "Book List",
		"Books": books,
	})
}

// Detail shows one book, its resolved references and all of its copies.
func (ctl *BooksController) Detail(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var book *entities.Book
	var copies []entities.BookInstance
	g.Go(func() error {
		var err error
		book, err = ctl.books.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = ctl.instances.GetByBook(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "book")
		return
	}

	ctl.HTML(c, http.StatusOK, "book_detail", gin.H{
		"Title":     book.Title,
		"Book":      book,
		"Instances": copies,
	})
}

// selectionLists fetches the author and genre lists the book form needs,
// concurrently.
func (ctl *BooksController) selectionLists(c *gin.Context) ([]entities.Author, []entities.Genre, error) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	var authors []entities.Author
	var genres []entities.Genre
	g.Go(func() error {
		var err error
		authors, err = ctl.authors.GetAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = ctl.genres.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// CreateForm shows the book form with its author and genre selections.
func (ctl *BooksController) CreateForm(c *gin.Context) {
	authors, genres, err := ctl.selectionLists(c)
	if err != nil {
		ctl.Error(c, err, "book form")
		return
	}
	ctl.HTML(c, http.StatusOK, "book_form", gin.H{
		"Title":   "Create Book",
		"Form":    forms.BookForm{},
		"Authors": authors,
		"Genres":  markSelected(genres, forms.BookForm{}),
	})
}

// Create validates the submitted form and persists a new book. On
// validation failure the form is re-rendered with the entered values and
// the previously selected genres checked.
func (ctl *BooksController) Create(c *gin.Context) {
	form := bookFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		authors, genres, err := ctl.selectionLists(c)
		if err != nil {
			ctl.Error(c, err, "book form")
			return
		}
		ctl.HTML(c, http.StatusOK, "book_form", gin.H{
			"Title":   "Create Book",
			"Form":    form,
			"Errors":  errs,
			"Authors": authors,
			"Genres":  markSelected(genres, form),
		})
		return
	}

	book := form.Book()
	if err := ctl.books.Create(c.Request.Context(), &book, form.GenreIDSet()); err != nil {
		ctl.Error(c, err, "book create")
		return
	}
	ctl.Flash(c, "Book created")
	c.Redirect(http.StatusFound, book.URL())
}

// UpdateForm shows the book form pre-filled with the stored fields,
// currently attached genres checked.
func (ctl *BooksController) UpdateForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var book *entities.Book
	var authors []entities.Author
	var genres []entities.Genre
	g.Go(func() error {
		var err error
		book, err = ctl.books.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = ctl.authors.GetAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = ctl.genres.GetAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "book")
		return
	}

	form := forms.BookFormFromEntity(*book)
	ctl.HTML(c, http.StatusOK, "book_form", gin.H{
		"Title":   "Update Book",
		"Form":    form,
		"Authors": authors,
		"Genres":  markSelected(genres, form),
	})
}

// Update validates the submitted form and replaces the book's fields and
// genre set in place; the identity is preserved.
func (ctl *BooksController) Update(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book")
	if !ok {
		return
	}

	form := bookFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		authors, genres, err := ctl.selectionLists(c)
		if err != nil {
			ctl.Error(c, err, "book form")
			return
		}
		ctl.HTML(c, http.StatusOK, "book_form", gin.H{
			"Title":   "Update Book",
			"Form":    form,
			"Errors":  errs,
			"Authors": authors,
			"Genres":  markSelected(genres, form),
		})
		return
	}

	book := form.Book()
	if err := ctl.books.Update(c.Request.Context(), id, &book, form.GenreIDSet()); err != nil {
		ctl.Error(c, err, "book")
		return
	}
	ctl.Flash(c, "Book updated")
	c.Redirect(http.StatusFound, book.URL())
}

// DeleteForm shows the delete confirmation page with every dependent copy.
// A missing book soft-fails with a redirect to the list.
func (ctl *BooksController) DeleteForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var book *entities.Book
	var copies []entities.BookInstance
	g.Go(func() error {
		var err error
		book, err = ctl.books.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = ctl.instances.GetByBook(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/books")
			return
		}
		ctl.Error(c, err, "book")
		return
	}

	ctl.HTML(c, http.StatusOK, "book_delete", gin.H{
		"Title":     "Delete Book",
		"Book":      book,
		"Instances": copies,
	})
}

// Delete removes the book unless copies still reference it. A blocked
// delete re-renders the confirmation page listing the dependents.
func (ctl *BooksController) Delete(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book")
	if !ok {
		return
	}

	deleted, err := ctl.books.DeleteIfUnreferenced(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/books")
			return
		}
		ctl.Error(c, err, "book delete")
		return
	}

	if !deleted {
		book, err := ctl.books.GetByID(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "book")
			return
		}
		copies, err := ctl.instances.GetByBook(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "book copies")
			return
		}
		ctl.HTML(c, http.StatusOK, "book_delete", gin.H{
			"Title":     "Delete Book",
			"Book":      book,
			"Instances": copies,
		})
		return
	}

	ctl.Flash(c, "Book deleted")
	c.Redirect(http.StatusFound, "/catalog/books")
}

// bookFormFromRequest binds and trims the book form fields. PostFormArray
// yields one element per submitted genre value, a single element when the
// transport sent a scalar and an empty slice when the field was omitted,
// which is exactly the coercion the genre set needs.
func bookFormFromRequest(c *gin.Context) forms.BookForm {
	return forms.BookForm{
		Title:    strings.TrimSpace(c.PostForm("title")),
		AuthorID: strings.TrimSpace(c.PostForm("author")),
		Summary:  strings.TrimSpace(c.PostForm("summary")),
		ISBN:     strings.TrimSpace(c.PostForm("isbn")),
		GenreIDs: c.PostFormArray("genre"),
	}
}
