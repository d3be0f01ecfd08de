package profile

import (
	"math"
	"strings"

	"github.com/matzehuels/drainplan/pkg/errors"
)

// EdgePolicy selects whether the profile ends count as mullions.
type EdgePolicy string

const (
	// EdgeInterior places mullions strictly inside the profile.
	EdgeInterior EdgePolicy = "interior"
	// EdgeInclusive adds the profile ends (0 and L) to the interior mullions.
	EdgeInclusive EdgePolicy = "inclusive"
)

// Strategy selects how the initial drainage candidates are seeded.
type Strategy string

const (
	// StrategyEdgeSymmetric seeds both edge points and the profile centre.
	StrategyEdgeSymmetric Strategy = "edge-symmetric"
	// StrategyMullionRelative seeds the edge points and subdivides every span
	// between consecutive anchors (edge points and interior mullions).
	StrategyMullionRelative Strategy = "mullion-relative"
	// StrategyParityAware seeds the edge points and adds the centre only for an
	// even mullion count.
	StrategyParityAware Strategy = "parity-aware"
)

// Target selects the spacing used to decide how many points fill a gap.
type Target string

const (
	// TargetMax fills gaps using MaxSpacing as the desired distance.
	TargetMax Target = "max"
	// TargetMidrange fills gaps using (MinSpacing+MaxSpacing)/2.
	TargetMidrange Target = "midrange"
)

// ClampMode selects the interval drainage points are clamped to.
type ClampMode string

const (
	// ClampProfile clamps to [0, L].
	ClampProfile ClampMode = "profile"
	// ClampEdge clamps to [EdgeOffset, L-EdgeOffset].
	ClampEdge ClampMode = "edge"
)

// Defaults taken from the standard window frame the tool was built around.
const (
	DefaultLength       = 3.0
	DefaultEdgeOffset   = 0.16
	DefaultMinSpacing   = 0.45
	DefaultMaxSpacing   = 0.65
	DefaultMinClearance = 0.04
	DefaultMullionCount = 4
)

// MaxPoints bounds the number of drainage points a configuration may imply.
// Configurations beyond it are rejected rather than computed.
const MaxPoints = 10000

// Params is the immutable input of a single layout computation.
// Lengths share one unit (metres in the defaults); the engine does not care
// which, as long as they are consistent.
type Params struct {
	Length       float64    `json:"length" toml:"length"`
	EdgeOffset   float64    `json:"edge_offset" toml:"edge_offset"`
	MinSpacing   float64    `json:"min_spacing" toml:"min_spacing"`
	MaxSpacing   float64    `json:"max_spacing" toml:"max_spacing"`
	MinClearance float64    `json:"min_clearance" toml:"min_clearance"`
	MullionCount int        `json:"mullion_count" toml:"mullion_count"`
	EdgePolicy   EdgePolicy `json:"edge_policy,omitempty" toml:"edge_policy"`
	Strategy     Strategy   `json:"strategy,omitempty" toml:"strategy"`
	Target       Target     `json:"target,omitempty" toml:"target"`
	Clamp        ClampMode  `json:"clamp,omitempty" toml:"clamp"`
}

// Default returns the parameter set of the standard 3 m frame with four mullions.
func Default() Params {
	return Params{
		Length:       DefaultLength,
		EdgeOffset:   DefaultEdgeOffset,
		MinSpacing:   DefaultMinSpacing,
		MaxSpacing:   DefaultMaxSpacing,
		MinClearance: DefaultMinClearance,
		MullionCount: DefaultMullionCount,
		EdgePolicy:   EdgeInterior,
		Strategy:     StrategyEdgeSymmetric,
		Target:       TargetMax,
		Clamp:        ClampProfile,
	}
}

// SetDefaults fills empty policy fields with their defaults and lower-cases
// the ones that are set. Numeric fields are left alone: zero is a legal value
// for most of them.
func (p *Params) SetDefaults() {
	d := Default()
	p.EdgePolicy = EdgePolicy(normalize(string(p.EdgePolicy), string(d.EdgePolicy)))
	p.Strategy = Strategy(normalize(string(p.Strategy), string(d.Strategy)))
	p.Target = Target(normalize(string(p.Target), string(d.Target)))
	p.Clamp = ClampMode(normalize(string(p.Clamp), string(d.Clamp)))
}

func normalize(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

// Validate checks the structural preconditions of a computation.
// Every failure carries [errors.ErrCodeInvalidConfig], except an unknown
// seeding strategy which carries [errors.ErrCodeInvalidStrategy].
func (p Params) Validate() error {
	if err := errors.ValidatePositive("length", p.Length); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"edge_offset", p.EdgeOffset},
		{"min_spacing", p.MinSpacing},
		{"max_spacing", p.MaxSpacing},
		{"min_clearance", p.MinClearance},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if p.EdgeOffset >= p.Length/2 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"edge_offset must be < length/2 (%g), got %g", p.Length/2, p.EdgeOffset)
	}
	if p.MinSpacing > p.MaxSpacing {
		return errors.New(errors.ErrCodeInvalidConfig,
			"min_spacing (%g) must be <= max_spacing (%g)", p.MinSpacing, p.MaxSpacing)
	}
	if p.MullionCount < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"mullion_count must be >= 1, got %d", p.MullionCount)
	}
	if p.MullionCount > MaxPoints {
		return errors.New(errors.ErrCodeInvalidConfig,
			"mullion_count must be <= %d, got %d", MaxPoints, p.MullionCount)
	}
	if n := p.Length / math.Max(p.MaxSpacing, Unit); n > MaxPoints {
		return errors.New(errors.ErrCodeInvalidConfig,
			"length/max_spacing implies more than %d drainage points", MaxPoints)
	}

	if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "edge_policy", string(p.EdgePolicy),
		string(EdgeInterior), string(EdgeInclusive)); err != nil {
		return err
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidStrategy, "strategy", string(p.Strategy),
		string(StrategyEdgeSymmetric), string(StrategyMullionRelative), string(StrategyParityAware)); err != nil {
		return err
	}
	if err := errors.ValidateChoice(errors.ErrCodeInvalidConfig, "target", string(p.Target),
		string(TargetMax), string(TargetMidrange)); err != nil {
		return err
	}
	return errors.ValidateChoice(errors.ErrCodeInvalidConfig, "clamp", string(p.Clamp),
		string(ClampProfile), string(ClampEdge))
}

// DesiredSpacing returns the distance used to size gap subdivisions.
func (p Params) DesiredSpacing() float64 {
	if p.Target == TargetMidrange {
		return (p.MinSpacing + p.MaxSpacing) / 2
	}
	return p.MaxSpacing
}

// Bounds returns the clamp interval selected by p.Clamp.
func (p Params) Bounds() (lower, upper float64) {
	if p.Clamp == ClampEdge {
		return p.EdgeOffset, p.Length - p.EdgeOffset
	}
	return 0, p.Length
}

// WantsCenter reports whether the seed list includes the profile centre.
func (p Params) WantsCenter() bool {
	switch p.Strategy {
	case StrategyEdgeSymmetric:
		return true
	case StrategyParityAware:
		return p.MullionCount%2 == 0
	}
	return false
}
