// Package render groups the output side of drainplan.
//
// # Overview
//
// Rendering is a pure function of a computed layout and a handful of display
// options. All formats live in the [sink] subpackage:
//
//   - SVG, written by hand with one CSS class per element kind
//   - PNG and PDF, drawn with gonum plot
//   - JSON, the layout document that 'render --from' reads back
//   - Text, a lipgloss table for terminals
//
// The pipeline package picks the sink per requested format and caches the
// bytes it returns.
//
// [sink]: github.com/matzehuels/drainplan/pkg/render/sink
package render
