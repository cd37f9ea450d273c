package handlers

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icco/launchdash/lib/config"
	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/figures"
	"github.com/icco/launchdash/lib/layout"
	"github.com/icco/launchdash/lib/render"
	"github.com/icco/launchdash/lib/types"
	"github.com/icco/launchdash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *dataset.Dataset {
	return dataset.New([]models.LaunchRecord{
		{LaunchSite: "A", PayloadMassKg: 500, Class: 1, BoosterVersionCategory: "v1"},
		{LaunchSite: "A", PayloadMassKg: 1500, Class: 0, BoosterVersionCategory: "v1"},
		{LaunchSite: "B", PayloadMassKg: 2000, Class: 1, BoosterVersionCategory: "v2"},
	})
}

func serve(h http.HandlerFunc, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeFigure(t *testing.T, w *httptest.ResponseRecorder) figures.Figure {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var fig figures.Figure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fig))
	return fig
}

func TestHandleDashboard(t *testing.T) {
	l := layout.Build(config.DefaultConfig().Dashboard, 500, 2000)
	w := serve(HandleDashboard(l), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "SpaceX Launch Records Dashboard")
	for _, id := range []string{layout.SiteDropdownID, layout.PieChartID, layout.PayloadSliderID, layout.ScatterChartID} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `<option value="ALL" selected>All Sites</option>`)
	assert.Contains(t, body, `<option value="KSC LC-39A">KSC LC-39A</option>`)
	assert.Contains(t, body, `value="500"`)
	assert.Contains(t, body, `value="2000"`)
	assert.NotContains(t, body, "template:")
}

func TestHandleNotFound(t *testing.T) {
	w := serve(HandleNotFound, http.MethodGet, "/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "We couldn&#39;t find that page.")
}

func TestHandleLayout(t *testing.T) {
	l := layout.Build(config.DefaultConfig().Dashboard, 500, 2000)
	w := serve(HandleLayout(l), http.MethodGet, "/api/layout", "")

	var decoded layout.Layout
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, l, decoded)
}

func TestHandlePieFigure(t *testing.T) {
	ds := testDataset()

	fig := decodeFigure(t, serve(HandlePieFigure(ds), http.MethodGet, "/api/figures/pie?site=A", ""))
	assert.Equal(t, "A", fig.Title)
	assert.Equal(t, []figures.Slice{{Label: "0", Value: 1}, {Label: "1", Value: 1}}, fig.Slices)

	fig = decodeFigure(t, serve(HandlePieFigure(ds), http.MethodGet, "/api/figures/pie", ""))
	assert.Equal(t, figures.AllSites, fig.Title)
	assert.Len(t, fig.Slices, 2)

	fig = decodeFigure(t, serve(HandlePieFigure(ds), http.MethodGet, "/api/figures/pie?site=Z", ""))
	assert.Equal(t, "Z", fig.Title)
	assert.Empty(t, fig.Slices)
}

func TestSiteIsLiteralOnEveryEndpoint(t *testing.T) {
	ds := testDataset()

	fig := decodeFigure(t, serve(HandlePieFigure(ds), http.MethodGet, "/api/figures/pie?site=+A+", ""))
	assert.Equal(t, " A ", fig.Title)
	assert.Empty(t, fig.Slices)

	w := serve(HandleUpdate(ds), http.MethodPost, "/api/update", `{"site": " A ", "payload": [0, 10000]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fig, resp.Pie)
	assert.Equal(t, " A ", resp.Scatter.Title)
	assert.Zero(t, resp.Scatter.PointCount())
}

func TestHandleScatterFigure(t *testing.T) {
	ds := testDataset()

	fig := decodeFigure(t, serve(HandleScatterFigure(ds), http.MethodGet, "/api/figures/scatter?site=ALL&low=1000&high=2500", ""))
	assert.Equal(t, 2, fig.PointCount())
	for _, s := range fig.Series {
		for _, p := range s.Points {
			assert.Greater(t, p.X, 1000.0)
			assert.Less(t, p.X, 2500.0)
		}
	}

	// Without bounds the dataset min and max are used, and both sit on the
	// exclusive edges.
	fig = decodeFigure(t, serve(HandleScatterFigure(ds), http.MethodGet, "/api/figures/scatter", ""))
	assert.Equal(t, 1, fig.PointCount())
	require.NotNil(t, fig.Range)
	assert.Equal(t, figures.PayloadRange{Low: 500, High: 2000}, *fig.Range)
}

func TestHandleScatterFigure_BadBounds(t *testing.T) {
	w := serve(HandleScatterFigure(testDataset()), http.MethodGet, "/api/figures/scatter?low=lots", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid low")
}

func TestHandleUpdate(t *testing.T) {
	ds := testDataset()
	w := serve(HandleUpdate(ds), http.MethodPost, "/api/update", `{"site": "A", "payload": [0, 1000]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp UpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.Pie.Title)
	assert.Len(t, resp.Pie.Slices, 2)
	assert.Equal(t, "A", resp.Scatter.Title)
	assert.Equal(t, 1, resp.Scatter.PointCount())
}

func TestHandleUpdate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "bad payload", body: `{"site": "A", "payload": "wide"}`},
		{name: "extra field", body: `{"site": "A", "user": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(HandleUpdate(testDataset()), http.MethodPost, "/api/update", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleCharts(t *testing.T) {
	ds := testDataset()
	opts := render.Options{Width: 320, Height: 240}

	tests := []struct {
		name   string
		h      http.HandlerFunc
		target string
	}{
		{name: "pie", h: HandlePieChart(ds, opts), target: "/charts/pie.png?site=ALL"},
		{name: "pie unknown site", h: HandlePieChart(ds, opts), target: "/charts/pie.png?site=Z"},
		{name: "scatter", h: HandleScatterChart(ds, opts), target: "/charts/scatter.png?site=A&low=0&high=10000"},
		{name: "scatter empty", h: HandleScatterChart(ds, opts), target: "/charts/scatter.png?low=5000&high=6000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(tt.h, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

			img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, 320, img.Bounds().Dx())
		})
	}
}

func TestHandleScatterChart_BadBounds(t *testing.T) {
	w := serve(HandleScatterChart(testDataset(), render.Options{}), http.MethodGet, "/charts/scatter.png?high=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStats(t *testing.T) {
	w := serve(HandleStats(testDataset()), http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats types.StatsData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalLaunches)
	assert.Equal(t, 2, stats.Successes)
	require.Len(t, stats.Sites, 2)
	assert.Equal(t, "A", stats.Sites[0].Site)
}
