// Package pipeline provides the layout → render pipeline for drainplan.
//
// This package implements the complete pipeline that is used by the CLI, the
// batch runner and the HTTP API. By centralizing this logic, every entry point
// computes, caches and renders a frame the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Place mullions, seed drainage candidates and resolve them
//     against clearance and spacing constraints
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Params:  profile.Default(),
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.Layout(ctx, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drainplan/pkg/cache"
	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 900.0

	// DefaultHeight is the default chart height in pixels. SVG output has a
	// fixed height and ignores it.
	DefaultHeight = 288.0

	// DefaultWorkers is the batch concurrency used when none is given.
	DefaultWorkers = 4

	// chartDPI converts pixel sizes to chart lengths.
	chartDPI = 96
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// formatOrder lists formats in the order they are reported.
var formatOrder = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatText}

// ContentType returns the MIME type of a format, or "" when it is unknown.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatText:
		return "text/plain; charset=utf-8"
	}
	return ""
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Params        profile.Params `json:"params"`
	MaxIterations int            `json:"max_iterations,omitempty"`
	Refresh       bool           `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Name        string   `json:"name,omitempty"` // Frame name, recorded in JSON output
	Title       string   `json:"title,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
	NoGapLabels bool     `json:"no_gap_labels,omitempty"`
	MullionGaps bool     `json:"mullion_gaps,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout layout.Layout

	// LayoutHash is the content hash of the layout, stable across runs.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Mullions   int
	Drainage   int
	Iterations int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SortFormats returns formats deduplicated and in canonical order.
// Unknown formats are dropped.
func SortFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formatOrder {
		if slices.Contains(formats, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout fills policy defaults in Params and validates them.
func (o *Options) ValidateForLayout() error {
	o.Params.SetDefaults()
	if o.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_iterations must be >= 0, got %d", o.MaxIterations)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Params.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be >= 0")
	}
	return ValidateFormats(o.Formats)
}

// ResolveOptions returns the engine options selected by o.
func (o *Options) ResolveOptions() []layout.ResolveOption {
	if o.MaxIterations > 0 {
		return []layout.ResolveOption{layout.WithMaxIterations(o.MaxIterations)}
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	n := o.MaxIterations
	if n == 0 {
		n = layout.DefaultMaxIterations
	}
	return cache.LayoutKeyOpts{MaxIterations: n}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		GapLabels:   !o.NoGapLabels,
		MullionGaps: o.MullionGaps,
	}
	switch format {
	case FormatSVG:
		k.Width = o.Width
	case FormatPNG, FormatPDF:
		k.Width, k.Height = o.Width, o.Height
	case FormatJSON:
		k.Title = o.Name
		k.GapLabels, k.MullionGaps = false, false
	case FormatText:
		k.Title = ""
		k.GapLabels, k.MullionGaps = false, false
	}
	return k
}
