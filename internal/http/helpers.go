package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/database"
	"locallibrary/internal/sessions"
)

// Renderer centralizes page rendering so every page carries the ambient
// template data: the CSRF token and any pending flash message.
type Renderer struct {
	// Sessions is nil when sessions are disabled; flash messages are then
	// silently dropped.
	Sessions *sessions.Manager
}

// HTML renders a template, injecting CSRF token and flash message.
func (r *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFToken"] = c.GetString("csrf_token")
	if r.Sessions != nil {
		data["Flash"] = r.Sessions.PopFlash(c.Request)
	}
	c.HTML(status, name, data)
}

// Error maps an operation failure onto the error page: a missing record
// becomes a 404, everything else a logged 500.
func (r *Renderer) Error(c *gin.Context, err error, context string) {
	if errors.Is(err, database.ErrNotFound) {
		r.HTML(c, http.StatusNotFound, "error", gin.H{
			"Title":   "Not Found",
			"Message": context + " not found",
		})
		return
	}
	log.Printf("Internal error (%s): %v", context, err)
	r.HTML(c, http.StatusInternalServerError, "error", gin.H{
		"Title":   "Server Error",
		"Message": "internal server error",
	})
}

// Flash records a one-shot confirmation message for the next page.
func (r *Renderer) Flash(c *gin.Context, message string) {
	if r.Sessions != nil {
		r.Sessions.Flash(c.Request, message)
	}
}

// ParamID extracts and validates an unsigned integer ID from URL
// parameters. An unparseable ID renders the 404 page and returns false.
func (r *Renderer) ParamID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		r.HTML(c, http.StatusNotFound, "error", gin.H{
			"Title":   "Not Found",
			"Message": resource + " not found",
		})
		return 0, false
	}
	return uint(id), true
}
