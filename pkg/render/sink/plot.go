package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/drainplan/pkg/layout"
)

// Default chart size.
const (
	DefaultChartWidth  = 10 * vg.Inch
	DefaultChartHeight = 3 * vg.Inch
)

var (
	colorDrainage = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorMullion  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorProfile  = color.RGBA{R: 51, G: 51, B: 51, A: 255}
)

// Vertical label rows of the chart, in data units around the profile at y=0.
const (
	rowGap      = 0.55
	rowDrainage = 0.25
	rowMullion  = -0.3
)

// ChartOption configures [RenderPNG] and [RenderPDF].
type ChartOption func(*chartRenderer)

type chartRenderer struct {
	width, height vg.Length
	title         string
	gapLabels     bool
}

// WithSize sets the chart size. Non-positive values are ignored.
func WithSize(w, h vg.Length) ChartOption {
	return func(r *chartRenderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

// WithChartTitle sets the chart title.
func WithChartTitle(s string) ChartOption { return func(r *chartRenderer) { r.title = s } }

// WithoutChartGapLabels drops the drainage gap widths.
func WithoutChartGapLabels() ChartOption { return func(r *chartRenderer) { r.gapLabels = false } }

// RenderPNG draws l as a PNG chart.
func RenderPNG(l layout.Layout, opts ...ChartOption) ([]byte, error) {
	return renderChart(l, "png", opts)
}

// RenderPDF draws l as a single-page PDF chart.
func RenderPDF(l layout.Layout, opts ...ChartOption) ([]byte, error) {
	return renderChart(l, "pdf", opts)
}

func renderChart(l layout.Layout, format string, opts []ChartOption) ([]byte, error) {
	r := chartRenderer{width: DefaultChartWidth, height: DefaultChartHeight, gapLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	p, err := buildPlot(l, r)
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(r.width, r.height, format)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", format, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func buildPlot(l layout.Layout, r chartRenderer) (*plot.Plot, error) {
	length := l.Params.Length

	p := plot.New()
	p.Title.Text = r.title
	p.X.Label.Text = "position"
	p.X.Min, p.X.Max = -0.02*length, 1.02*length
	p.Y.Min, p.Y.Max = -0.6, 0.8
	p.HideY()

	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: length, Y: 0}})
	if err != nil {
		return nil, fmt.Errorf("profile line: %w", err)
	}
	line.LineStyle.Color = colorProfile
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	if len(l.Mullions) > 0 {
		s, err := pointSeries(l.Mullions, colorMullion, draw.BoxGlyph{})
		if err != nil {
			return nil, fmt.Errorf("mullions: %w", err)
		}
		labels, err := labelRow(l.Mullions, l.Mullions, rowMullion)
		if err != nil {
			return nil, fmt.Errorf("mullion labels: %w", err)
		}
		p.Add(s, labels)
		p.Legend.Add("mullion", s)
	}

	if len(l.Drainage) > 0 {
		s, err := pointSeries(l.Drainage, colorDrainage, draw.CircleGlyph{})
		if err != nil {
			return nil, fmt.Errorf("drainage: %w", err)
		}
		labels, err := labelRow(l.Drainage, l.Drainage, rowDrainage)
		if err != nil {
			return nil, fmt.Errorf("drainage labels: %w", err)
		}
		p.Add(s, labels)
		p.Legend.Add("drainage", s)
	}

	if r.gapLabels && len(l.DrainageGaps) > 0 {
		mids := make([]float64, len(l.DrainageGaps))
		widths := make([]float64, len(l.DrainageGaps))
		for i, g := range l.DrainageGaps {
			mids[i], widths[i] = g.Mid, g.Width
		}
		labels, err := labelRow(mids, widths, rowGap)
		if err != nil {
			return nil, fmt.Errorf("gap labels: %w", err)
		}
		p.Add(labels)
	}

	p.Legend.Top = true
	return p, nil
}

func pointSeries(xs []float64, c color.Color, shape draw.GlyphDrawer) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, len(xs))
	for i, x := range xs {
		pts[i].X = x
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(4)
	s.GlyphStyle.Shape = shape
	return s, nil
}

// labelRow places the two-decimal text of values[i] at (xs[i], y).
func labelRow(xs, values []float64, y float64) (*plotter.Labels, error) {
	pts := make(plotter.XYs, len(xs))
	text := make([]string, len(xs))
	for i, x := range xs {
		pts[i] = plotter.XY{X: x, Y: y}
		text[i] = fmt.Sprintf("%.2f", values[i])
	}
	return plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: text})
}
