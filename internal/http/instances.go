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

// InstancesController serves the book-copy pages and forms.
type InstancesController struct {
	instances InstanceStore
	books     BookStore
	*Renderer
}

// NewInstancesController creates a new instances controller.
func NewInstancesController(instances InstanceStore, books BookStore, r *Renderer) *InstancesController {
	return &InstancesController{instances: instances, books: books, Renderer: r}
}

// List shows all copies with their books resolved.
func (ctl *InstancesController) List(c *gin.Context) {
	copies, err := ctl.instances.GetAll(c.Request.Context())
	if err != nil {
		ctl.Error(c, err, "book instance list")
		return
	}
	ctl.HTML(c, http.StatusOK, "bookinstance_list", gin.H{
		"Title":     "Book Instance List",
		"Instances": copies,
	})
}

// Detail shows one copy with its book resolved.
func (ctl *InstancesController) Detail(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book instance")
	if !ok {
		return
	}
	instance, err := ctl.instances.GetByID(c.Request.Context(), id)
	if err != nil {
		ctl.Error(c, err, "book instance")
		return
	}
	ctl.HTML(c, http.StatusOK, "bookinstance_detail", gin.H{
		"Title":    "Book Instance",
		"Instance": instance,
	})
}

// CreateForm shows the copy form with its book selection list.
func (ctl *InstancesController) CreateForm(c *gin.Context) {
	books, err := ctl.books.GetAllSummaries(c.Request.Context())
	if err != nil {
		ctl.Error(c, err, "book instance form")
		return
	}
	ctl.HTML(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":    "Create Book Instance",
		"Form":     forms.BookInstanceForm{},
		"Books":    books,
		"Statuses": entities.InstanceStatuses,
	})
}

// Create validates the submitted form and persists a new copy. On
// validation failure the form is re-rendered with the entered values and
// the previously selected book.
func (ctl *InstancesController) Create(c *gin.Context) {
	form := instanceFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		books, err := ctl.books.GetAllSummaries(c.Request.Context())
		if err != nil {
			ctl.Error(c, err, "book instance form")
			return
		}
		ctl.HTML(c, http.StatusOK, "bookinstance_form", gin.H{
			"Title":    "Create Book Instance",
			"Form":     form,
			"Errors":   errs,
			"Books":    books,
			"Statuses": entities.InstanceStatuses,
		})
		return
	}

	instance := form.BookInstance()
	if err := ctl.instances.Create(c.Request.Context(), &instance); err != nil {
		ctl.Error(c, err, "book instance create")
		return
	}
	ctl.Flash(c, "Book instance created")
	c.Redirect(http.StatusFound, instance.URL())
}

// UpdateForm shows the copy form pre-filled with the stored fields plus
// the book selection list, fetched concurrently.
func (ctl *InstancesController) UpdateForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book instance")
	if !ok {
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var instance *entities.BookInstance
	var books []entities.Book
	g.Go(func() error {
		var err error
		instance, err = ctl.instances.GetByID(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = ctl.books.GetAllSummaries(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "book instance")
		return
	}

	ctl.HTML(c, http.StatusOK, "bookinstance_form", gin.H{
		"Title":    "Update Book Instance",
		"Form":     forms.BookInstanceFormFromEntity(*instance),
		"Books":    books,
		"Statuses": entities.InstanceStatuses,
	})
}

// Update validates the submitted form and replaces the copy's fields in
// place with a single persistence call; the identity is preserved.
func (ctl *InstancesController) Update(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book instance")
	if !ok {
		return
	}

	form := instanceFormFromRequest(c)
	if errs := form.Validate(); len(errs) > 0 {
		books, err := ctl.books.GetAllSummaries(c.Request.Context())
		if err != nil {
			ctl.Error(c, err, "book instance form")
			return
		}
		ctl.HTML(c, http.StatusOK, "bookinstance_form", gin.H{
			"Title":    "Update Book Instance",
			"Form":     form,
			"Errors":   errs,
			"Books":    books,
			"Statuses": entities.InstanceStatuses,
		})
		return
	}

	instance := form.BookInstance()
	if err := ctl.instances.Update(c.Request.Context(), id, &instance); err != nil {
		ctl.Error(c, err, "book instance")
		return
	}
	ctl.Flash(c, "Book instance updated")
	c.Redirect(http.StatusFound, instance.URL())
}

// DeleteForm shows the delete confirmation page. Copies have no
// dependents, so the page only confirms. A missing copy soft-fails with a
// redirect to the list.
func (ctl *InstancesController) DeleteForm(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book instance")
	if !ok {
		return
	}
	instance, err := ctl.instances.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.Redirect(http.StatusFound, "/catalog/bookinstances")
			return
		}
		ctl.Error(c, err, "book instance")
		return
	}
	ctl.HTML(c, http.StatusOK, "bookinstance_delete", gin.H{
		"Title":    "Delete Book Instance",
		"Instance": instance,
	})
}

// Delete removes a copy unconditionally; it is the leaf of the reference
// graph.
func (ctl *InstancesController) Delete(c *gin.Context) {
	id, ok := ctl.ParamID(c, "Book instance")
	if !ok {
		return
	}
	if err := ctl.instances.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, database.ErrNotFound) {
		ctl.Error(c, err, "book instance delete")
		return
	}
	ctl.Flash(c, "Book instance deleted")
	c.Redirect(http.StatusFound, "/catalog/bookinstances")
}

// instanceFormFromRequest binds and trims the copy form fields.
func instanceFormFromRequest(c *gin.Context) forms.BookInstanceForm {
	return forms.BookInstanceForm{
		BookID:  strings.TrimSpace(c.PostForm("book")),
		Imprint: strings.TrimSpace(c.PostForm("imprint")),
		Status:  strings.TrimSpace(c.PostForm("status")),
		DueBack: strings.TrimSpace(c.PostForm("due_back")),
	}
}
