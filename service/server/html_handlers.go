package server

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer holds parsed HTML templates
type TemplateRenderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewTemplateRenderer creates a new template renderer from embedded files
func NewTemplateRenderer(logger *slog.Logger) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &TemplateRenderer{
		templates: tmpl,
		logger:    logger,
	}, nil
}

// RenderStatus renders into a buffer first so a template failure never
// leaves a half-written page behind.
func (tr *TemplateRenderer) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := tr.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// page is the data every page template receives.
type page struct {
	Title string
	Nav   string
	Data  any
}

// renderPage writes a page unless the client already went away.
func renderPage(w http.ResponseWriter, r *http.Request, tr *TemplateRenderer, logger *slog.Logger, status int, name string, p page) {
	if err := r.Context().Err(); err != nil {
		logger.Debug("client gone before render", "page", name, "error", err)
		return
	}
	if err := tr.RenderStatus(w, status, name, p); err != nil {
		logger.Error("failed to render template", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
