// Package figures turns the launch dataset and the dashboard inputs into chart
// descriptions. Every function here is pure: it reads the records it is given and
// returns a new Figure without touching shared state.
package figures

import "github.com/icco/launchdash/lib/dataset"

// AllSites is the dropdown value that selects every launch site.
const AllSites = "ALL"

// Kind identifies how a Figure is drawn.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Axis labels of the scatter chart, named after the dataset columns they plot.
const (
	ScatterXLabel = dataset.ColumnPayloadMass
	ScatterYLabel = dataset.ColumnClass
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Point is one marker on the scatter chart.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Site string  `json:"site"`
}

// Series groups the scatter points sharing a booster version category.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Figure is a framework-neutral chart description.
type Figure struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Slices []Slice  `json:"slices,omitempty"`
	Series []Series `json:"series,omitempty"`

	// Range is the payload window a scatter figure was filtered with.
	Range *PayloadRange `json:"range,omitempty"`
}

// Total returns the sum of all slice values.
func (f Figure) Total() float64 {
	var total float64
	for _, s := range f.Slices {
		total += s.Value
	}
	return total
}

// PointCount returns the number of scatter points across all series.
func (f Figure) PointCount() int {
	n := 0
	for _, s := range f.Series {
		n += len(s.Points)
	}
	return n
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		return f.Total() == 0
	case KindScatter:
		return f.PointCount() == 0
	default:
		return true
	}
}

// PayloadRange is the payload window selected on the slider. Bounds are
// exclusive: a payload equal to Low or High is outside the range.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether payload lies strictly between Low and High.
func (r PayloadRange) Contains(payload float64) bool {
	return payload > r.Low && payload < r.High
}
