package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"locallibrary/internal/entities"
)

// IndexController serves the home page with the catalog-wide counts.
type IndexController struct {
	authors   AuthorStore
	genres    GenreStore
	books     BookStore
	instances InstanceStore
	*Renderer
}

// NewIndexController creates a new index controller.
func NewIndexController(authors AuthorStore, genres GenreStore, books BookStore, instances InstanceStore, r *Renderer) *IndexController {
	return &IndexController{
		authors:   authors,
		genres:    genres,
		books:     books,
		instances: instances,
		Renderer:  r,
	}
}

// Home renders the counts of every collection plus the available copies.
// The five counts are independent reads, fetched concurrently.
func (ctl *IndexController) Home(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	var bookCount, instanceCount, availableCount, authorCount, genreCount int64
	g.Go(func() error {
		var err error
		bookCount, err = ctl.books.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		instanceCount, err = ctl.instances.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		availableCount, err = ctl.instances.CountByStatus(ctx, entities.StatusAvailable)
		return err
	})
	g.Go(func() error {
		var err error
		authorCount, err = ctl.authors.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		genreCount, err = ctl.genres.Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		ctl.Error(c, err, "catalog counts")
		return
	}

	ctl.HTML(c, http.StatusOK, "index", gin.H{
		"Title":          "Local Library Home",
		"BookCount":      bookCount,
		"InstanceCount":  instanceCount,
		"AvailableCount": availableCount,
		"AuthorCount":    authorCount,
		"GenreCount":     genreCount,
	})
}
