// Package layout declares the static dashboard controls and the IDs they are bound to.
package layout

import (
	"github.com/icco/launchdash/lib/config"
	"github.com/icco/launchdash/lib/figures"
)

// Component IDs. The page script and the update endpoint address controls by these.
const (
	SiteDropdownID  = "enter_site"
	PieChartID      = "success-pie-chart"
	PayloadSliderID = "payloadslider"
	ScatterChartID  = "success-payload-scatter-chart"
)

// Option is one entry of a dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown is a single-select control.
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labelled tick on a slider.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// RangeSlider selects a numeric [low, high] pair.
type RangeSlider struct {
	ID    string               `json:"id"`
	Label string               `json:"label"`
	Min   float64              `json:"min"`
	Max   float64              `json:"max"`
	Step  float64              `json:"step"`
	Marks []Mark               `json:"marks"`
	Value figures.PayloadRange `json:"value"`
}

// Graph is a placeholder that a rendered figure is drawn into.
type Graph struct {
	ID       string `json:"id"`
	Figure   string `json:"figure"`   // JSON endpoint
	ImageURL string `json:"imageUrl"` // PNG endpoint
}

// Heading is the page title and its inline style.
type Heading struct {
	Text      string `json:"text"`
	TextAlign string `json:"textAlign"`
	Color     string `json:"color"`
	FontSize  int    `json:"fontSize"`
}

// Layout is the complete set of controls rendered on the dashboard page.
type Layout struct {
	Heading       Heading     `json:"heading"`
	SiteDropdown  Dropdown    `json:"siteDropdown"`
	PieChart      Graph       `json:"pieChart"`
	PayloadSlider RangeSlider `json:"payloadSlider"`
	ScatterChart  Graph       `json:"scatterChart"`
}

// Build declares the dashboard controls. The slider starts on the observed
// payload bounds of the dataset.
func Build(cfg config.DashboardConfig, minPayload, maxPayload float64) Layout {
	options := make([]Option, 0, len(cfg.Sites)+1)
	for _, site := range cfg.Sites {
		options = append(options, Option{Label: site, Value: site})
	}
	options = append(options, Option{Label: "All Sites", Value: figures.AllSites})

	return Layout{
		Heading: Heading{
			Text:      cfg.Title,
			TextAlign: "center",
			Color:     "#503D36",
			FontSize:  40,
		},
		SiteDropdown: Dropdown{
			ID:          SiteDropdownID,
			Options:     options,
			Value:       figures.AllSites,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		PieChart: Graph{
			ID:       PieChartID,
			Figure:   "/api/figures/pie",
			ImageURL: "/charts/pie.png",
		},
		PayloadSlider: RangeSlider{
			ID:    PayloadSliderID,
			Label: "Payload range (Kg):",
			Min:   cfg.Slider.Min,
			Max:   cfg.Slider.Max,
			Step:  cfg.Slider.Step,
			Marks: []Mark{
				{Value: 0, Label: "0"},
				{Value: 100, Label: "100"},
			},
			Value: figures.PayloadRange{Low: minPayload, High: maxPayload},
		},
		ScatterChart: Graph{
			ID:       ScatterChartID,
			Figure:   "/api/figures/scatter",
			ImageURL: "/charts/scatter.png",
		},
	}
}

// HasSite reports whether value is one of the dropdown options.
func (l Layout) HasSite(value string) bool {
	for _, opt := range l.SiteDropdown.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
