package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/figures"
	"github.com/icco/launchdash/lib/render"
	"github.com/icco/launchdash/lib/validation"
)

// maxUpdateBody caps update request bodies; a valid one is well under 1 KiB.
const maxUpdateBody = 16 << 10

// UpdateResponse carries both figures recomputed for one set of inputs.
type UpdateResponse struct {
	Pie     figures.Figure `json:"pie"`
	Scatter figures.Figure `json:"scatter"`
}

func defaultRange(ds *dataset.Dataset) figures.PayloadRange {
	lo, hi := ds.PayloadBounds()
	return figures.PayloadRange{Low: lo, High: hi}
}

// scatterInputs reads the site and payload range from the query string.
func scatterInputs(ds *dataset.Dataset, req *http.Request) (string, figures.PayloadRange, error) {
	q := req.URL.Query()
	rng, err := validation.PayloadRangeParams(q, defaultRange(ds))
	return validation.SiteParam(q), rng, err
}

// HandlePieFigure serves the pie figure for the site query parameter.
func HandlePieFigure(ds *dataset.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		site := validation.SiteParam(req.URL.Query())
		writeJSON(w, figures.Pie(ds.Records(), site))
	}
}

// HandleScatterFigure serves the scatter figure for the site, low and high query parameters.
func HandleScatterFigure(ds *dataset.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		site, rng, err := scatterInputs(ds, req)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}
		writeJSON(w, figures.Scatter(ds.Records(), site, rng))
	}
}

// HandleUpdate recomputes both figures from a JSON body holding the dashboard inputs.
func HandleUpdate(ds *dataset.Dataset) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxUpdateBody))
		if err != nil {
			validation.WriteError(w, fmt.Errorf("failed to read request body: %w", err), http.StatusBadRequest)
			return
		}

		update, err := validation.ValidateAndParseUpdateRequest(body)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}

		records := ds.Records()
		writeJSON(w, UpdateResponse{
			Pie:     figures.Pie(records, update.Site),
			Scatter: figures.Scatter(records, update.Site, update.PayloadRange(defaultRange(ds))),
		})
	}
}

func writePNG(w http.ResponseWriter, fig figures.Figure, opts render.Options) {
	var buf bytes.Buffer
	if err := render.PNG(&buf, fig, opts); err != nil {
		slog.Error("Failed to render chart",
			slog.String("kind", string(fig.Kind)),
			slog.String("title", fig.Title),
			slog.Any("error", err))
		validation.WriteError(w, errors.New("failed to render chart"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write chart", slog.Any("error", err))
	}
}

// HandlePieChart serves the pie figure rendered as a PNG.
func HandlePieChart(ds *dataset.Dataset, opts render.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		site := validation.SiteParam(req.URL.Query())
		writePNG(w, figures.Pie(ds.Records(), site), opts)
	}
}

// HandleScatterChart serves the scatter figure rendered as a PNG.
func HandleScatterChart(ds *dataset.Dataset, opts render.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		site, rng, err := scatterInputs(ds, req)
		if err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}
		writePNG(w, figures.Scatter(ds.Records(), site, rng), opts)
	}
}
