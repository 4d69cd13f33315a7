package delivery

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"cfresh_inventory/internal/domain"
	"cfresh_inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("Jan 2, 2006 3:04 PM")
		},
		"fieldErrors": func(fields map[string][]string, name string) []string {
			return fields[name]
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
}

func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if claims, ok := middleware.SessionFromContext(c); ok {
		data["Session"] = claims
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string][]string{}
	}
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, err error, action string) {
	status := mapErrorToStatus(err)
	render(c, status, "error.tmpl", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": userMessage(err, action),
	})
}

func renderNotFound(c *gin.Context) {
	renderError(c, domain.ErrNotFound, "find the page")
}
