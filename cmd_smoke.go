package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/icco/launchdash/lib/figures"
	"github.com/spf13/cobra"
)

var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Exercise every endpoint in-process against the configured dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		app, err := NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("Failed to load dataset", slog.Any("error", err))
			return err
		}
		defer func() { _ = app.Close() }()

		return smoke(app, logger)
	},
}

func init() {
	rootCmd.AddCommand(smokeCmd)
}

type smokeCheck struct {
	name        string
	method      string
	target      string
	body        string
	status      int
	contentType string
	contains    string
}

func smokeChecks(site string) []smokeCheck {
	q := url.Values{"site": {site}}.Encode()
	return []smokeCheck{
		{name: "Dashboard page", method: http.MethodGet, target: "/", status: http.StatusOK, contentType: "text/html", contains: "success-pie-chart"},
		{name: "Health", method: http.MethodGet, target: "/healthz", status: http.StatusOK, contentType: "application/json", contains: `"ok"`},
		{name: "Layout", method: http.MethodGet, target: "/api/layout", status: http.StatusOK, contentType: "application/json", contains: "payloadslider"},
		{name: "Stats", method: http.MethodGet, target: "/api/stats", status: http.StatusOK, contentType: "application/json", contains: "total_launches"},
		{name: "Pie figure for all sites", method: http.MethodGet, target: "/api/figures/pie", status: http.StatusOK, contentType: "application/json", contains: `"title":"ALL"`},
		{name: "Pie figure for one site", method: http.MethodGet, target: "/api/figures/pie?" + q, status: http.StatusOK, contentType: "application/json"},
		{name: "Scatter figure", method: http.MethodGet, target: "/api/figures/scatter?low=0&high=10000", status: http.StatusOK, contentType: "application/json", contains: `"kind":"scatter"`},
		{name: "Scatter figure with bad bound", method: http.MethodGet, target: "/api/figures/scatter?low=heavy", status: http.StatusBadRequest, contentType: "application/json", contains: "invalid low"},
		{name: "Update", method: http.MethodPost, target: "/api/update", body: fmt.Sprintf(`{"site": %q, "payload": [0, 10000]}`, site), status: http.StatusOK, contentType: "application/json", contains: `"scatter"`},
		{name: "Update with bad body", method: http.MethodPost, target: "/api/update", body: `{"payload": [1]}`, status: http.StatusBadRequest, contentType: "application/json"},
		{name: "Pie chart", method: http.MethodGet, target: "/charts/pie.png?" + q, status: http.StatusOK, contentType: "image/png"},
		{name: "Scatter chart", method: http.MethodGet, target: "/charts/scatter.png?low=0&high=10000", status: http.StatusOK, contentType: "image/png"},
		{name: "Unknown page", method: http.MethodGet, target: "/launches", status: http.StatusNotFound, contentType: "text/html"},
	}
}

// smoke sends every check through the app router and returns an error naming
// the checks that failed.
func smoke(app *App, logger *slog.Logger) error {
	logger.Info("=== TESTING ENDPOINTS ===")

	site := figures.AllSites
	if sites := app.ds.Sites(); len(sites) > 0 {
		site = sites[0]
	}

	var failed []string
	for _, c := range smokeChecks(site) {
		if !runSmokeCheck(app.router, c, logger) {
			failed = append(failed, c.name)
		}
	}

	logger.Info("=== ENDPOINT TESTING COMPLETED ===", slog.Int("failed", len(failed)))
	if len(failed) > 0 {
		return fmt.Errorf("smoke checks failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func runSmokeCheck(h http.Handler, c smokeCheck, logger *slog.Logger) bool {
	var req *http.Request
	if c.body == "" {
		req = httptest.NewRequest(c.method, c.target, nil)
	} else {
		req = httptest.NewRequest(c.method, c.target, strings.NewReader(c.body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	body := w.Body.String()
	logger.Info(c.name+" response",
		slog.String("target", c.target),
		slog.Int("status", w.Code),
		slog.String("content_type", w.Header().Get("Content-Type")),
		slog.Int("body_length", len(body)))

	ok := true
	if w.Code != c.status {
		logger.Error("Unexpected status code", slog.String("check", c.name), slog.Int("want", c.status), slog.Int("got", w.Code))
		ok = false
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), c.contentType) {
		logger.Error("Unexpected content type", slog.String("check", c.name), slog.String("want", c.contentType))
		ok = false
	}
	if c.contains != "" && !strings.Contains(body, c.contains) {
		logger.Error("Response is missing expected content",
			slog.String("check", c.name),
			slog.String("want", c.contains),
			slog.String("body_preview", body[:min(200, len(body))]))
		ok = false
	}
	if strings.Contains(body, "template:") || strings.Contains(body, "error executing template") {
		logger.Error("Template error detected", slog.String("check", c.name), slog.String("body_preview", body[:min(500, len(body))]))
		ok = false
	}
	return ok
}
