package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/drainplan/pkg/profile"
)

// ViolationKind names the constraint a [Violation] breaks.
type ViolationKind string

const (
	// KindClearance: a drainage point is closer than MinClearance to a mullion.
	KindClearance ViolationKind = "clearance"
	// KindMinSpacing: two adjacent drainage points are closer than MinSpacing.
	KindMinSpacing ViolationKind = "min_spacing"
	// KindMaxSpacing: two adjacent drainage points are farther than MaxSpacing.
	KindMaxSpacing ViolationKind = "max_spacing"
)

// Violation is a constraint left unsatisfied after resolution.
type Violation struct {
	Kind ViolationKind `json:"kind"`
	// At is the drainage point (clearance) or the left point of the pair (spacing).
	At float64 `json:"at"`
	// Other is the mullion (clearance) or the right point of the pair (spacing).
	Other float64 `json:"other"`
	// Distance is the measured distance, Limit the bound it breaks.
	Distance float64 `json:"distance"`
	Limit    float64 `json:"limit"`
}

func (v Violation) String() string {
	switch v.Kind {
	case KindClearance:
		return fmt.Sprintf("drainage %.2f is %.2f from mullion %.2f (clearance %.2f)", v.At, v.Distance, v.Other, v.Limit)
	case KindMinSpacing:
		return fmt.Sprintf("gap %.2f..%.2f is %.2f (min %.2f)", v.At, v.Other, v.Distance, v.Limit)
	default:
		return fmt.Sprintf("gap %.2f..%.2f is %.2f (max %.2f)", v.At, v.Other, v.Distance, v.Limit)
	}
}

// Check lists every clearance and spacing constraint that drainage breaks.
// drainage must be sorted. Clearance violations come first, in drainage
// order, followed by spacing violations from left to right.
func Check(drainage, mullions []float64, p profile.Params) []Violation {
	var out []Violation
	if p.MinClearance > 0 {
		for _, d := range drainage {
			for _, m := range mullions {
				if dist := math.Abs(d - m); dist < p.MinClearance-eps {
					out = append(out, Violation{
						Kind: KindClearance, At: d, Other: m,
						Distance: profile.Round(dist), Limit: p.MinClearance,
					})
				}
			}
		}
	}
	for _, g := range Gaps(drainage) {
		gap := g.End - g.Start
		switch {
		case gap < p.MinSpacing-eps:
			out = append(out, Violation{
				Kind: KindMinSpacing, At: g.Start, Other: g.End,
				Distance: g.Width, Limit: p.MinSpacing,
			})
		case gap > p.MaxSpacing+eps:
			out = append(out, Violation{
				Kind: KindMaxSpacing, At: g.Start, Other: g.End,
				Distance: g.Width, Limit: p.MaxSpacing,
			})
		}
	}
	return out
}
