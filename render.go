package main

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	pageTemplate  = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/page.html"))
	errorTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/error.html"))
)

func writeHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	// Buffered so a template failure can still become a 500.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("unable to render template", "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", "da")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writePage(w http.ResponseWriter, content *PageContent) {
	writeHTML(w, http.StatusOK, pageTemplate, content)
}

// writeError renders err as a Danish error page with a status matching its
// class.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	page := classify(err)
	level := slog.LevelWarn
	if page.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"url", r.URL.String(),
		"status", page.Status,
		"error", err)
	writeHTML(w, page.Status, errorTemplate, page)
}
