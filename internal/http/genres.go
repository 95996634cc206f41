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

// GenresController serves the genre pages and forms.
type GenresController struct {
	genres GenreStore
	books  BookStore
	*Renderer
}

// NewGenresController creates a new genres controller.
func NewGenresController(genres GenreStore, books BookStore, r *Renderer) *GenresController {
	return &GenresController{genres: genres, books: books, Renderer: r}
}

// List shows all genres sorted by name.
func (ctl *GenresController) List(c *gin.Context) {
	genres, err := ctl.genres.GetAll(c.Request.Context())
	if err != nil {
		ctl.Error(c, err, "genre list")
		return
	}
	ctl.HTML(c, http.StatusOK, "genre_list", gin.H{
		"Title":  "Genre List",
		"Genres": genres,
	})
}

// Detail shows one genre together with every book carrying it.
func (ctl *GenresController) Detail(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Genre")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var genre *entities.Genre
	var books []entities.Book
	g.Go(func() error {
		var err error
		genre, err = ctl.genres.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = ctl.books.GetByGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "genre")
		return
	}

	ctl.HTML(c, http.StatusOK, "genre_detail", gin.H{
		"Title": "Genre Detail",
		"Genre": genre,
		"Books": books,
	})
}

// CreateForm shows an empty genre form.
func (ctl *GenresController) CreateForm(c *gin.Context) {
	ctl.HTML(c, http.StatusOK, "genre_form", gin.H{
		"Title": "Create Genre",
		"Form":  forms.GenreForm{},
	})
}

// Create validates the submitted form and persists a new genre. A genre
// whose exact name already exists is never inserted twice; the request is
// redirected to the existing record instead.
func (ctl *GenresController) Create(c *gin.Context) {
	form := genreFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		ctl.HTML(c, http.StatusOK, "genre_form", gin.H{
			"Title":  "Create Genre",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	existing, err := ctl.genres.GetByName(c.Request.Context(), form.Name)
	if err == nil {
		c.Redirect(http.StatusFound, existing.URL())
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		ctl.Error(c, err, "genre lookup")
		return
	}

	genre := form.Genre()
	if err := ctl.genres.Create(c.Request.Context(), &genre); err != nil {
		ctl.Error(c, err, "genre create")
		return
	}
	ctl.Flash(c, "Genre created")
	c.Redirect(http.StatusFound, genre.URL())
}

// UpdateForm shows the genre form pre-filled with the stored name.
func (ctl *GenresController) UpdateForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Genre")
	if !ok {
		return
	}
	genre, err := ctl.genres.GetByID(c.Request.Context(), id)
	if err != nil {
		ctl.Error(c, err, "genre")
		return
	}
	ctl.HTML(c, http.StatusOK, "genre_form", gin.H{
		"Title": "Update Genre",
		"Form":  forms.GenreFormFromEntity(*genre),
	})
}

// Update validates the submitted form and replaces the genre's name in
// place; the identity is preserved.
func (ctl *GenresController) Update(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Genre")
	if !ok {
		return
	}

	form := genreFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		ctl.HTML(c, http.StatusOK, "genre_form", gin.H{
			"Title":  "Update Genre",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	genre := form.Genre()
	if err := ctl.genres.Update(c.Request.Context(), id, &genre); err != nil {
		ctl.Error(c, err, "genre")
		return
	}
	ctl.Flash(c, "Genre updated")
	c.Redirect(http.StatusFound, genre.URL())
}

// DeleteForm shows the delete confirmation page with every dependent book.
// A missing genre soft-fails with a redirect to the list.
func (ctl *GenresController) DeleteForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Genre")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var genre *entities.Genre
	var books []entities.Book
	g.Go(func() error {
		var err error
		genre, err = ctl.genres.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = ctl.books.GetByGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/genres")
			return
		}
		ctl.Error(c, err, "genre")
		return
	}

	ctl.HTML(c, http.StatusOK, "genre_delete", gin.H{
		"Title": "Delete Genre",
		"Genre": genre,
		"Books": books,
	})
}

// Delete removes the genre unless books still carry it. A blocked delete
// re-renders the confirmation page listing the dependents.
func (ctl *GenresController) Delete(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Genre")
	if !ok {
		return
	}

	deleted, err := ctl.genres.DeleteIfUnreferenced(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/genres")
			return
		}
		ctl.Error(c, err, "genre delete")
		return
	}

	if !deleted {
		genre, err := ctl.genres.GetByID(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "genre")
			return
		}
		books, err := ctl.books.GetByGenre(c.Request.Context(), id)
		if err != nil {
			ctl.Error(c, err, "genre books")
			return
		}
		ctl.HTML(c, http.StatusOK, "genre_delete", gin.H{
			"Title": "Delete Genre",
			"Genre": genre,
			"Books": books,
		})
		return
	}

	ctl.Flash(c, "Genre deleted")
	c.Redirect(http.StatusFound, "/catalog/genres")
}

// genreFormFromRequest binds and trims the genre form fields.
func genreFormFromRequest(c *gin.Context) forms.GenreForm {
	return forms.GenreForm{
		Name: strings.TrimSpace(c.PostForm("name")),
	}
}
