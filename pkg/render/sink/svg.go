package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/drainplan/pkg/layout"
)

// DefaultWidth is the SVG width in pixels when [WithWidth] is not given.
const DefaultWidth = 900.0

const (
	svgHeight    = 180.0
	svgMargin    = 48.0
	svgBaseline  = 100.0
	pointRadius  = 4.5
	mullionWidth = 6.0
)

const profileCSS = `
    .profile { stroke: #333; stroke-width: 3; }
    .drainage { fill: #d62728; }
    .drainage.violation { stroke: #ff9900; stroke-width: 2; }
    .mullion { fill: #1f77b4; }
    .label { font: 11px sans-serif; text-anchor: middle; }
    .label.drainage-label { fill: #d62728; }
    .label.mullion-label { fill: #1f77b4; }
    .label.gap-label { fill: #666; font-size: 10px; }
    .title { font: bold 13px sans-serif; fill: #333; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width       float64
	title       string
	gapLabels   bool
	mullionGaps bool
}

// WithWidth sets the image width in pixels. Non-positive values are ignored.
func WithWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithTitle draws a caption in the top left corner.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithoutGapLabels drops the drainage gap widths.
func WithoutGapLabels() SVGOption { return func(r *svgRenderer) { r.gapLabels = false } }

// WithMullionGaps also labels the gaps between mullions, below the line.
func WithMullionGaps() SVGOption { return func(r *svgRenderer) { r.mullionGaps = true } }

// RenderSVG draws l as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, gapLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	sx := scaleX(l.Params.Length, r.width)
	flagged := violatingPoints(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, svgHeight, r.width, svgHeight)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", profileCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="24">%s</text>`+"\n", svgMargin, html.EscapeString(r.title))
	}

	fmt.Fprintf(&buf, `  <line class="profile" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
		sx(0), svgBaseline, sx(l.Params.Length), svgBaseline)

	for i, m := range l.Mullions {
		fmt.Fprintf(&buf, `  <rect class="mullion" id="mullion-%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			i, sx(m)-mullionWidth/2, svgBaseline-mullionWidth*1.5, mullionWidth, mullionWidth*3)
		renderLabel(&buf, "mullion-label", sx(m), svgBaseline+26, m)
	}

	for i, d := range l.Drainage {
		class := "drainage"
		if flagged[i] {
			class += " violation"
		}
		fmt.Fprintf(&buf, `  <circle class="%s" id="drainage-%d" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
			class, i, sx(d), svgBaseline, pointRadius)
		renderLabel(&buf, "drainage-label", sx(d), svgBaseline-14, d)
	}

	if r.gapLabels {
		for _, g := range l.DrainageGaps {
			renderLabel(&buf, "gap-label", sx(g.Mid), svgBaseline-34, g.Width)
		}
	}
	if r.mullionGaps {
		for _, g := range l.MullionGaps {
			renderLabel(&buf, "gap-label", sx(g.Mid), svgBaseline+46, g.Width)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLabel(buf *bytes.Buffer, class string, x, y, v float64) {
	fmt.Fprintf(buf, `  <text class="label %s" x="%.1f" y="%.1f">%.2f</text>`+"\n", class, x, y, v)
}

// scaleX maps profile coordinates to pixels inside the horizontal margins.
func scaleX(length, width float64) func(float64) float64 {
	span := width - 2*svgMargin
	return func(x float64) float64 {
		if length <= 0 {
			return svgMargin
		}
		return svgMargin + x/length*span
	}
}

// violatingPoints marks drainage indexes that take part in a violation.
func violatingPoints(l layout.Layout) map[int]bool {
	if len(l.Violations) == 0 {
		return nil
	}
	index := make(map[float64]int, len(l.Drainage))
	for i, d := range l.Drainage {
		index[d] = i
	}
	flagged := make(map[int]bool)
	for _, v := range l.Violations {
		if i, ok := index[v.At]; ok {
			flagged[i] = true
		}
		if v.Kind != layout.KindClearance {
			if i, ok := index[v.Other]; ok {
				flagged[i] = true
			}
		}
	}
	return flagged
}
