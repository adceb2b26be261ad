package render

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/i474232898/bikeshare-dashboard/internal/chart"
)

// Format selects the output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown chart format")

// ParseFormat maps a user-facing string to a Format; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Renderer draws a chart spec.
type Renderer interface {
	Render(w io.Writer, spec chart.Spec) error
}

var (
	colorBase        = drawing.ColorFromHex("ADD8E6") // lightblue
	colorHighlight   = drawing.ColorFromHex("FFA500") // orange
	colorTrend       = drawing.ColorFromHex("008000") // green
	colorPlaceholder = drawing.ColorFromHex("D3D3D3")

	// casual, registered, total
	tripleColors = []drawing.Color{
		drawing.ColorFromHex("0000FF"),
		drawing.ColorFromHex("FFA500"),
		drawing.ColorFromHex("008000"),
	}
)

// maxTicks bounds the number of labelled ticks on a trend x-axis.
const maxTicks = 12

// GoChart renders specs with go-chart.
type GoChart struct {
	Format Format
	Width  int
	Height int
}

// NewGoChart returns a renderer with the given canvas size.
func NewGoChart(format Format, width, height int) *GoChart {
	return &GoChart{Format: format, Width: width, Height: height}
}

func (g *GoChart) provider() (gochart.RendererProvider, error) {
	switch g.Format {
	case "", FormatPNG:
		return gochart.PNG, nil
	case FormatSVG:
		return gochart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, g.Format)
	}
}

// Render draws spec into w. An empty spec produces a "no data" placeholder.
func (g *GoChart) Render(w io.Writer, spec chart.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	rp, err := g.provider()
	if err != nil {
		return err
	}

	if spec.Empty() {
		return g.placeholder(spec).Render(rp, w)
	}

	switch spec.Kind {
	case chart.KindTrend:
		return g.trend(spec).Render(rp, w)
	case chart.KindRankedBar:
		return g.rankedBar(spec).Render(rp, w)
	case chart.KindGroupedTriple:
		return g.groupedTriple(spec).Render(rp, w)
	default:
		return fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
}

func (g *GoChart) trend(spec chart.Spec) gochart.Chart {
	values := spec.Series[0].Values
	xs := make([]float64, len(values))
	ys := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}

	step := len(spec.Categories)/maxTicks + 1
	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < len(spec.Categories); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: spec.Categories[i]})
	}

	// A single point has no x extent; widen the axis so the range is non-zero.
	xRange := &gochart.ContinuousRange{Min: 0, Max: float64(max(len(values)-1, 1))}

	return gochart.Chart{
		Title:  spec.Title,
		Width:  g.Width,
		Height: g.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{Name: spec.XLabel, Ticks: ticks, Range: xRange},
		YAxis: gochart.YAxis{Name: spec.YLabel, Range: valueRange(values)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Series[0].Name,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: colorTrend,
					StrokeWidth: 2,
					DotColor:    colorTrend,
					DotWidth:    3,
				},
			},
		},
	}
}

func (g *GoChart) rankedBar(spec chart.Spec) gochart.BarChart {
	values := spec.Series[0].Values
	bars := make([]gochart.Value, 0, len(values))
	for i, v := range values {
		fill := colorBase
		if i == spec.Highlighted {
			fill = colorHighlight
		}
		bars = append(bars, gochart.Value{
			Label: spec.Categories[i],
			Value: float64(v),
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return g.barChart(spec, bars, values)
}

func (g *GoChart) groupedTriple(spec chart.Spec) gochart.BarChart {
	var all []int64
	bars := make([]gochart.Value, 0, len(spec.Categories)*len(spec.Series))
	for i, category := range spec.Categories {
		for s, series := range spec.Series {
			label := ""
			if s == len(spec.Series)/2 {
				label = category
			}
			color := tripleColors[s%len(tripleColors)]
			bars = append(bars, gochart.Value{
				Label: label,
				Value: float64(series.Values[i]),
				Style: gochart.Style{FillColor: color, StrokeColor: color},
			})
			all = append(all, series.Values[i])
		}
	}
	return g.barChart(spec, bars, all)
}

func (g *GoChart) barChart(spec chart.Spec, bars []gochart.Value, values []int64) gochart.BarChart {
	return gochart.BarChart{
		Title:  spec.Title,
		Width:  g.Width,
		Height: g.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarSpacing: 4,
		YAxis:      gochart.YAxis{Name: spec.YLabel, Range: valueRange(values)},
		Bars:       bars,
	}
}

func (g *GoChart) placeholder(spec chart.Spec) gochart.Chart {
	return gochart.Chart{
		Title:  spec.Title + " (no data)",
		Width:  g.Width,
		Height: g.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxis: gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style:   gochart.Style{StrokeColor: colorPlaceholder},
			},
		},
	}
}

// valueRange anchors the y-axis at zero and keeps it non-degenerate when every
// value is zero.
func valueRange(values []int64) *gochart.ContinuousRange {
	var top int64
	for _, v := range values {
		if v > top {
			top = v
		}
	}
	return &gochart.ContinuousRange{Min: 0, Max: float64(max(top, 1))}
}
