package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// TemplateRenderer renders HTML templates from an embedded filesystem.
type TemplateRenderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewTemplateRenderer parses the layout, page, and partial templates from
// the given filesystem.
func NewTemplateRenderer(fsys fs.FS, logger *slog.Logger) (*TemplateRenderer, error) {
	// renderContent dispatches to the page's content template by name, which
	// {{template}} cannot do. The double pointer lets the func map reference
	// the template set before parsing finishes.
	var set *template.Template

	tmpl := template.New("").Funcs(template.FuncMap{
		"contentTemplate": ContentTemplateFor,
		"renderContent": func(page string, data any) (template.HTML, error) {
			if set == nil {
				return "", errors.New("templates not initialized")
			}
			var buf bytes.Buffer
			if err := set.ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - rendered by our own templates; user values were
			// already escaped during ExecuteTemplate above.
			return template.HTML(buf.String()), nil
		},
	})

	tmpl, err := tmpl.ParseFS(fsys, "*.tmpl", "pages/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	set = tmpl

	return &TemplateRenderer{templates: tmpl, logger: logger}, nil
}

// Render executes the full page layout with the given data and writes it to w.
// The layout dispatches to the page's content template via data.CurrentPage.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, status int, data *TemplateData) {
	tr.execute(w, "layout", status, data)
}

// RenderPartial executes a single named template, used for fragments that
// render without the surrounding layout.
func (tr *TemplateRenderer) RenderPartial(w http.ResponseWriter, name string, data *TemplateData) {
	tr.execute(w, name, http.StatusOK, data)
}

// execute renders into a buffer first so template errors never produce a
// half-written response.
func (tr *TemplateRenderer) execute(w http.ResponseWriter, name string, status int, data *TemplateData) {
	var buf bytes.Buffer
	if err := tr.templates.ExecuteTemplate(&buf, name, data); err != nil {
		tr.logger.Error("template render failed",
			slog.String("template", name),
			slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
