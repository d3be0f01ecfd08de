package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/pipeline"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// addParamFlags binds one flag per profile parameter, defaulting to the
// standard frame.
func addParamFlags(fs *pflag.FlagSet, p *profile.Params) {
	*p = profile.Default()

	fs.Float64VarP(&p.Length, "length", "L", p.Length, "profile length")
	fs.Float64Var(&p.EdgeOffset, "edge-offset", p.EdgeOffset, "distance of the first and last drainage point from the profile ends")
	fs.Float64Var(&p.MinSpacing, "min-spacing", p.MinSpacing, "minimum distance between drainage points")
	fs.Float64Var(&p.MaxSpacing, "max-spacing", p.MaxSpacing, "maximum distance between drainage points")
	fs.Float64Var(&p.MinClearance, "clearance", p.MinClearance, "minimum distance between a drainage point and a mullion")
	fs.IntVarP(&p.MullionCount, "mullions", "m", p.MullionCount, "number of mullions")

	fs.StringVar((*string)(&p.EdgePolicy), "edge-policy", string(p.EdgePolicy), "mullion placement: interior, inclusive")
	fs.StringVar((*string)(&p.Strategy), "strategy", string(p.Strategy), "seeding strategy: edge-symmetric, mullion-relative, parity-aware")
	fs.StringVar((*string)(&p.Target), "target", string(p.Target), "gap fill spacing: max, midrange")
	fs.StringVar((*string)(&p.Clamp), "clamp", string(p.Clamp), "clamp interval: profile, edge")
}

// addRunFlags binds the resolver and cache flags shared by compute commands.
func addRunFlags(fs *pflag.FlagSet, opts *pipeline.Options, noCache *bool) {
	fs.IntVar(&opts.MaxIterations, "max-iterations", layout.DefaultMaxIterations, "bound on clearance/spacing rounds")
	fs.BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	fs.BoolVar(noCache, "no-cache", false, "disable caching")
}

// addRenderFlags binds the artifact appearance flags.
func addRenderFlags(fs *pflag.FlagSet, opts *pipeline.Options) {
	fs.StringVar(&opts.Title, "title", "", "caption drawn on the image")
	fs.Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "image width in pixels")
	fs.Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "chart height in pixels (png, pdf)")
	fs.BoolVar(&opts.NoGapLabels, "no-gap-labels", false, "omit drainage gap widths")
	fs.BoolVar(&opts.MullionGaps, "mullion-gaps", false, "label gaps between mullions (svg)")
}
