package layout

import (
	"github.com/matzehuels/drainplan/pkg/profile"
)

// Layout is the complete result of one computation: both point lists, their
// gaps, and how resolution went.
type Layout struct {
	Params profile.Params `json:"params"`

	Mullions []float64 `json:"mullions"`
	Seed     []float64 `json:"seed"`
	Drainage []float64 `json:"drainage"`

	MullionGaps  []Gap `json:"mullion_gaps"`
	DrainageGaps []Gap `json:"drainage_gaps"`

	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
	Violations []Violation `json:"violations,omitempty"`
}

// Satisfied reports whether resolution converged with no constraint left
// violated.
func (l Layout) Satisfied() bool {
	return l.Converged && len(l.Violations) == 0
}

// Compute runs the whole engine for p: mullions, seeding, resolution and
// gap computation. Policy fields left empty in p take their defaults.
//
// The only error is an invalid configuration
// ([errors.ErrCodeInvalidConfig] or [errors.ErrCodeInvalidStrategy]);
// infeasible constraints end up in [Layout.Violations] instead.
//
// [errors.ErrCodeInvalidConfig]: github.com/matzehuels/drainplan/pkg/errors.ErrCodeInvalidConfig
// [errors.ErrCodeInvalidStrategy]: github.com/matzehuels/drainplan/pkg/errors.ErrCodeInvalidStrategy
func Compute(p profile.Params, opts ...ResolveOption) (Layout, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return Layout{}, err
	}

	mullions, err := Mullions(p.Length, p.MullionCount, p.EdgePolicy)
	if err != nil {
		return Layout{}, err
	}

	seed := Seed(p, mullions)
	res := Resolve(seed, mullions, p, opts...)

	return Layout{
		Params:       p,
		Mullions:     mullions,
		Seed:         seed,
		Drainage:     res.Points,
		MullionGaps:  Gaps(mullions),
		DrainageGaps: Gaps(res.Points),
		Iterations:   res.Iterations,
		Converged:    res.Converged,
		Violations:   Check(res.Points, mullions, p),
	}, nil
}
