// Package sink turns a computed [layout.Layout] into output formats.
//
// # Overview
//
// Every sink draws the same picture of a frame profile: the profile as a
// horizontal line, drainage holes as red points labelled with their position
// above the line, mullions as blue points labelled below it, and the width of
// every drainage gap at the gap's midpoint.
//
//   - SVG: [RenderSVG], hand-written markup with CSS classes per element
//   - PNG and PDF: [RenderPNG] and [RenderPDF], a gonum plot chart
//   - JSON: [RenderJSON], the layout with both point lists and their gaps
//   - Text: [RenderText], a terminal table of both point lists
//
// Basic usage:
//
//	l, _ := layout.Compute(profile.Default())
//	svg := sink.RenderSVG(l, sink.WithWidth(1200))
//	png, err := sink.RenderPNG(l, sink.WithSize(8*vg.Inch, 3*vg.Inch))
//
// Unlike SVG, the chart formats need no external tools: gonum renders PNG and
// PDF in process.
//
// # Adding New Formats
//
//  1. Create a renderer function: func RenderFoo(l layout.Layout, opts ...FooOption) ([]byte, error)
//  2. Add a format constant and its content type in pkg/pipeline
//  3. Dispatch the format in pipeline.Render
//
// [layout.Layout]: github.com/matzehuels/drainplan/pkg/layout.Layout
package sink
