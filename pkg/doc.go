// Package pkg provides the core libraries for drainplan.
//
// # Overview
//
// drainplan places drainage points along a window frame profile so that they
// keep clear of the mullions and respect a minimum and maximum spacing. The
// pkg directory is organized into four main areas:
//
//  1. [profile] and [layout] - Domain logic (parameters, mullions, seeding, resolution)
//  2. [render] - Output formats (SVG, PNG, PDF, JSON, text)
//  3. [cache] and [config] - Infrastructure (layout cache, frame files)
//  4. [pipeline] - Orchestration (layout → render, batches)
//
// # Architecture
//
// The typical data flow through drainplan:
//
//	Params (flags, frame file, HTTP request)
//	         ↓
//	    [layout] package (mullions → seed → resolve → gaps + violations)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON/text)
//	         ↓
//	    files or HTTP responses
//
// # Quick Start
//
// Compute the standard frame and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/drainplan/pkg/layout"
//	    "github.com/matzehuels/drainplan/pkg/profile"
//	    "github.com/matzehuels/drainplan/pkg/render/sink"
//	)
//
//	l, err := layout.Compute(profile.Default())
//	if err != nil {
//	    return err // invalid parameters only
//	}
//	for _, v := range l.Violations {
//	    fmt.Println(v)
//	}
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
// [profile] - The parameter set of one computation, its defaults, validation
// and the rounding rules shared by every stage.
//
// [layout] - Mullion placement, drainage seeding strategies, the clearance
// and spacing resolver, gap computation and violation reporting.
//
// [render/sink] - Renderers for every output format.
//
// [pipeline] - Cached layout and render stages shared by the CLI, batch runs
// and the HTTP server.
//
// [cache] - Null, file and Redis backends for layouts and artifacts.
//
// [config] - TOML frame files describing a batch of profiles.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured error codes.
//
// [profile]: github.com/matzehuels/drainplan/pkg/profile
// [layout]: github.com/matzehuels/drainplan/pkg/layout
// [render]: github.com/matzehuels/drainplan/pkg/render
// [render/sink]: github.com/matzehuels/drainplan/pkg/render/sink
// [pipeline]: github.com/matzehuels/drainplan/pkg/pipeline
// [cache]: github.com/matzehuels/drainplan/pkg/cache
// [config]: github.com/matzehuels/drainplan/pkg/config
// [observability]: github.com/matzehuels/drainplan/pkg/observability
// [errors]: github.com/matzehuels/drainplan/pkg/errors
package pkg
