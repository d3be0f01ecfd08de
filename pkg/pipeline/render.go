package pipeline

import (
	"fmt"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(l layout.Layout, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatSVG:
		data = sink.RenderSVG(l, buildSVGOptions(opts)...)
	case FormatPNG:
		data, err = sink.RenderPNG(l, buildChartOptions(opts)...)
	case FormatPDF:
		data, err = sink.RenderPDF(l, buildChartOptions(opts)...)
	case FormatJSON:
		data, err = sink.RenderJSON(l, sink.WithJSONName(opts.Name))
	case FormatText:
		data = []byte(sink.RenderText(l))
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithWidth(opts.Width)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.NoGapLabels {
		svgOpts = append(svgOpts, sink.WithoutGapLabels())
	}
	if opts.MullionGaps {
		svgOpts = append(svgOpts, sink.WithMullionGaps())
	}
	return svgOpts
}

// buildChartOptions builds PNG/PDF options. Pixel sizes map to chart lengths
// at 96 dpi.
func buildChartOptions(opts Options) []sink.ChartOption {
	chartOpts := []sink.ChartOption{
		sink.WithSize(pixels(opts.Width), pixels(opts.Height)),
	}
	if opts.Title != "" {
		chartOpts = append(chartOpts, sink.WithChartTitle(opts.Title))
	}
	if opts.NoGapLabels {
		chartOpts = append(chartOpts, sink.WithoutChartGapLabels())
	}
	return chartOpts
}

func pixels(px float64) vg.Length {
	return vg.Length(px) * vg.Inch / chartDPI
}
