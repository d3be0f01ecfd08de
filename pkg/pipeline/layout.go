package pipeline

import (
	"github.com/matzehuels/drainplan/pkg/layout"
)

// ComputeLayout runs the engine for opts.Params without touching any cache.
// Invalid parameters fail with an INVALID_* error code; infeasible
// constraints are reported on the returned layout.
func ComputeLayout(opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	return layout.Compute(opts.Params, opts.ResolveOptions()...)
}
