// Package chart renders the dashboard's bar and histogram charts as SVG or
// PNG with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/himanishpuri/SongDash/internal/stats"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrUnknownFormat is returned for an image format other than svg or png.
var ErrUnknownFormat = errors.New("unknown chart format")

// NoDataLabel labels the placeholder bar drawn for an empty dataset.
const NoDataLabel = "No data"

const (
	defaultWidth  = 800
	defaultHeight = 450
	barWidth      = 40
	barSpacing    = 20
)

var (
	barColor     = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	densityColor = drawing.Color{R: 214, G: 39, B: 40, A: 255}
)

// defaultFont is go-chart's bundled font, loaded once and shared by every
// render.
var defaultFont = sync.OnceValues(chart.GetDefaultFont)

// Options are the labels and size of a chart. Zero sizes use the defaults.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// ParseFormat accepts "svg", "png" or a file name ending in either; empty
// means svg.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "", s == "svg", strings.HasSuffix(s, ".svg"):
		return FormatSVG, nil
	case s == "png", strings.HasSuffix(s, ".png"):
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Bar draws one bar per label. With no labels a single empty bar marked
// NoDataLabel is drawn instead.
func Bar(w io.Writer, f Format, opts Options, labels []string, values []float64) error {
	if len(labels) != len(values) {
		return fmt.Errorf("bar chart: %d labels for %d values", len(labels), len(values))
	}

	bars := make([]chart.Value, 0, len(labels))
	top := 0.0
	for i, l := range labels {
		bars = append(bars, chart.Value{
			Label: l,
			Value: values[i],
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		top = math.Max(top, values[i])
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: NoDataLabel, Value: 0})
	}

	font, err := defaultFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	width, height := opts.size()
	width = max(width, len(bars)*(barWidth+barSpacing)+160)

	bc := chart.BarChart{
		Title:      opts.Title,
		Font:       font,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, niceCeil(top))},
		},
		Bars: bars,
	}
	if err := bc.Render(f.provider(), w); err != nil {
		return fmt.Errorf("rendering %q: %w", opts.Title, err)
	}
	return nil
}

// Histogram draws h as a filled step outline with the density curve laid
// over it. An empty histogram falls back to the Bar placeholder.
func Histogram(w io.Writer, f Format, opts Options, h stats.Histogram, density stats.Curve) error {
	if h.Bins() == 0 || h.Total() == 0 {
		return Bar(w, f, opts, nil, nil)
	}

	xs, ys := stepOutline(h)
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Count",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: barColor,
				StrokeWidth: 1.5,
				FillColor:   barColor.WithAlpha(96),
			},
		},
	}
	top := float64(h.MaxCount())
	if !density.Empty() {
		series = append(series, chart.ContinuousSeries{
			Name:    "Density",
			XValues: density.X,
			YValues: density.Y,
			Style: chart.Style{
				StrokeColor: densityColor,
				StrokeWidth: 2,
			},
		})
		top = math.Max(top, density.MaxY())
	}

	font, err := defaultFont()
	if err != nil {
		return fmt.Errorf("loading font: %w", err)
	}
	width, height := opts.size()
	lo, hi := h.Edges[0], h.Edges[len(h.Edges)-1]
	if !density.Empty() {
		lo = math.Min(lo, density.X[0])
		hi = math.Max(hi, density.X[len(density.X)-1])
	}

	c := chart.Chart{
		Title:      opts.Title,
		Font:       font,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  opts.XLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, niceCeil(top*1.05))},
		},
		Series: series,
	}
	if err := c.Render(f.provider(), w); err != nil {
		return fmt.Errorf("rendering %q: %w", opts.Title, err)
	}
	return nil
}

// stepOutline traces the top of every bin, starting and ending on the
// x axis.
func stepOutline(h stats.Histogram) ([]float64, []float64) {
	xs := make([]float64, 0, 2*h.Bins()+2)
	ys := make([]float64, 0, 2*h.Bins()+2)
	xs = append(xs, h.Edges[0])
	ys = append(ys, 0)
	for i, c := range h.Counts {
		xs = append(xs, h.Edges[i], h.Edges[i+1])
		ys = append(ys, float64(c), float64(c))
	}
	xs = append(xs, h.Edges[len(h.Edges)-1])
	ys = append(ys, 0)
	return xs, ys
}

func niceCeil(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Ceil(v)
}
