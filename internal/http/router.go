package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/sessions"
)

// RouterConfig carries every dependency the router needs. Using a config
// struct keeps the constructor signature stable as dependencies grow.
type RouterConfig struct {
	Authors   AuthorStore
	Genres    GenreStore
	Books     BookStore
	Instances InstanceStore

	Sessions      *sessions.Manager
	CSRFSecret    []byte
	SecureCookies bool

	TemplatesPath string
	StaticPath    string
	Version       string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before the session middleware so the session context
	// is layered on top of the CSRF request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	renderer := &Renderer{Sessions: cfg.Sessions}
	index := NewIndexController(cfg.Authors, cfg.Genres, cfg.Books, cfg.Instances, renderer)
	authors := NewAuthorsController(cfg.Authors, cfg.Books, renderer)
	genres := NewGenresController(cfg.Genres, cfg.Books, renderer)
	books := NewBooksController(cfg.Books, cfg.Authors, cfg.Genres, cfg.Instances, renderer)
	instances := NewInstancesController(cfg.Instances, cfg.Books, renderer)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.Version})
	})
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog")
	{
		catalog.GET("", index.Home)

		// Create routes are registered before the :id routes so that
		// "create" is never parsed as an identifier.
		catalog.GET("/authors", authors.List)
		catalog.GET("/author/create", authors.CreateForm)
		catalog.POST("/author/create", authors.Create)
		catalog.GET("/author/:id", authors.Detail)
		catalog.GET("/author/:id/update", authors.UpdateForm)
		catalog.POST("/author/:id/update", authors.Update)
		catalog.GET("/author/:id/delete", authors.DeleteForm)
		catalog.POST("/author/:id/delete", authors.Delete)

		catalog.GET("/genres", genres.List)
		catalog.GET("/genre/create", genres.CreateForm)
		catalog.POST("/genre/create", genres.Create)
		catalog.GET("/genre/:id", genres.Detail)
		catalog.GET("/genre/:id/update", genres.UpdateForm)
		catalog.POST("/genre/:id/update", genres.Update)
		catalog.GET("/genre/:id/delete", genres.DeleteForm)
		catalog.POST("/genre/:id/delete", genres.Delete)

		catalog.GET("/books", books.List)
		catalog.GET("/book/create", books.CreateForm)
		catalog.POST("/book/create", books.Create)
		catalog.GET("/book/:id", books.Detail)
		catalog.GET("/book/:id/update", books.UpdateForm)
		catalog.POST("/book/:id/update", books.Update)
		catalog.GET("/book/:id/delete", books.DeleteForm)
		catalog.POST("/book/:id/delete", books.Delete)

		catalog.GET("/bookinstances", instances.List)
		catalog.GET("/bookinstance/create", instances.CreateForm)
		catalog.POST("/bookinstance/create", instances.Create)
		catalog.GET("/bookinstance/:id", instances.Detail)
		catalog.GET("/bookinstance/:id/update", instances.UpdateForm)
		catalog.POST("/bookinstance/:id/update", instances.Update)
		catalog.GET("/bookinstance/:id/delete", instances.DeleteForm)
		catalog.POST("/bookinstance/:id/delete", instances.Delete)
	}

	return router
}
