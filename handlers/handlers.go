package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/icco/launchdash/handlers/templates"
	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/layout"
)

type errorData struct {
	Message string
}

func renderError(w http.ResponseWriter, message string, status int) {
	tmpl, err := templates.ParseTemplates("base.html", "error.html")
	if err != nil {
		slog.Error("Failed to parse error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", errorData{Message: message}); err != nil {
		slog.Error("Failed to execute error template", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}

// HandleDashboard serves the dashboard page built from l.
func HandleDashboard(l layout.Layout) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tmpl, err := templates.ParseTemplates("base.html", "dashboard.html")
		if err != nil {
			slog.Error("Failed to parse template", slog.Any("error", err))
			renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "base", l); err != nil {
			slog.Error("Failed to execute template", slog.Any("error", err))
			renderError(w, "Something went wrong while displaying the page.", http.StatusInternalServerError)
			return
		}
	}
}

// HandleLayout serves the control declarations as JSON.
func HandleLayout(l layout.Layout) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, l)
	}
}

// HandleStats serves the dataset summary as JSON.
func HandleStats(ds *dataset.Dataset) http.HandlerFunc {
	stats := dataset.Summarize(ds)
	return func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, stats)
	}
}

// HandleNotFound renders the HTML error page for unknown routes.
func HandleNotFound(w http.ResponseWriter, req *http.Request) {
	renderError(w, "We couldn't find that page.", http.StatusNotFound)
}
