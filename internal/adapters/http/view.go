package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/roommates/core/internal/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// HomePage is the view model of the index page
type HomePage struct {
	Title     string
	List      template.HTML
	Roommates []entities.Roommate
}

// RenderRoommateList renders roommates as an escaped Bootstrap list group.
// An empty collection renders an empty list container.
func RenderRoommateList(roommates []entities.Roommate) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "roommate_list", roommates); err != nil {
		return "", fmt.Errorf("render roommate list: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// TemplateRenderer renders the embedded HTML templates for echo
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer creates a renderer over the embedded templates
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{templates: templates}
}

// Render implements echo.Renderer
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
