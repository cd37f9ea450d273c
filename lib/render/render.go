// Package render draws figures as PNG images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/icco/launchdash/lib/figures"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default image size used when Options leaves a dimension unset.
const (
	DefaultWidth  = 800
	DefaultHeight = 450
)

// Options controls the rendered image size.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// palette follows the qualitative colour order most plotting tools default to, so
// booster categories and sites keep stable colours between charts.
var palette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
	drawing.ColorFromHex("ff97ff"),
	drawing.ColorFromHex("fecb52"),
}

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// PNG renders fig to w. Figures with nothing to draw produce a blank image that
// still carries the title.
func PNG(w io.Writer, fig figures.Figure, opts Options) error {
	width, height := opts.size()

	if fig.Empty() {
		return png.Encode(w, blank(width, height, fig.Title, "No launches match the current selection"))
	}

	switch fig.Kind {
	case figures.KindPie:
		return renderPie(w, fig, width, height)
	case figures.KindScatter:
		return renderScatter(w, fig, width, height)
	default:
		return fmt.Errorf("unsupported figure kind %q", fig.Kind)
	}
}

func renderPie(w io.Writer, fig figures.Figure, width, height int) error {
	values := make([]chart.Value, 0, len(fig.Slices))
	for i, s := range fig.Slices {
		// Zero-valued wedges have no area; they stay in the figure but not in the image.
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, strconv.FormatFloat(s.Value, 'f', -1, 64)),
			Value: s.Value,
			Style: chart.Style{FillColor: paletteColor(i), StrokeColor: drawing.ColorWhite},
		})
	}

	pie := chart.PieChart{
		Title:  fig.Title,
		Width:  width,
		Height: height,
		Values: values,
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// pointStyle draws markers only, without connecting lines.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func renderScatter(w io.Writer, fig figures.Figure, width, height int) error {
	series := make([]chart.Series, 0, len(fig.Series))
	for i, s := range fig.Series {
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.X
			ys[j] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(paletteColor(i)),
		})
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fig.XLabel,
			Range: xRange(fig),
		},
		YAxis: chart.YAxis{
			Name:  fig.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

// xRange pins the x axis to the selected payload window so the chart does not
// rescale as points enter and leave it. Without a usable window it pads the data
// extent, which also keeps a single point from collapsing the range.
func xRange(fig figures.Figure) *chart.ContinuousRange {
	if fig.Range != nil && fig.Range.High > fig.Range.Low {
		return &chart.ContinuousRange{Min: fig.Range.Low, Max: fig.Range.High}
	}

	first := true
	var lo, hi float64
	for _, s := range fig.Series {
		for _, p := range s.Points {
			if first || p.X < lo {
				lo = p.X
			}
			if first || p.X > hi {
				hi = p.X
			}
			first = false
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// blank returns a plain image with the title and a short message centred on it.
func blank(w, h int, title, message string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawCentered(img, face, title, 28, color.RGBA{R: 0x50, G: 0x3d, B: 0x36, A: 0xff})
	drawCentered(img, face, message, h/2, color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff})
	return img
}

func drawCentered(img *image.RGBA, face font.Face, text string, y int, col color.Color) {
	if text == "" {
		return
	}
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (img.Bounds().Dx() - tw) / 2
	if x < 0 {
		x = 0
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
