package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/drainplan/pkg/profile"
)

// eps absorbs floating-point noise when comparing rounded coordinates.
const eps = 1e-9

// Seed builds the initial drainage candidates for p relative to mullions.
//
// Every strategy starts from the two edge points EdgeOffset and
// Length-EdgeOffset:
//
//   - [profile.StrategyEdgeSymmetric] adds the centre and fills the gaps
//     between the seeded points.
//   - [profile.StrategyParityAware] adds the centre only for an even mullion
//     count, then fills gaps.
//   - [profile.StrategyMullionRelative] subdivides every span between
//     consecutive anchors (edge points and mullions inside them). Spans next to
//     a mullion always receive at least their midpoint.
//
// The result is sorted and rounded. p is assumed valid.
func Seed(p profile.Params, mullions []float64) []float64 {
	left := profile.Round(p.EdgeOffset)
	right := profile.Round(p.Length - p.EdgeOffset)

	if p.Strategy == profile.StrategyMullionRelative {
		return seedMullionRelative(p, left, right, mullions)
	}

	seeds := []float64{left, right}
	if p.WantsCenter() {
		seeds = append(seeds, profile.Round(p.Length/2))
	}
	return FillGaps(seeds, p.MaxSpacing, p.DesiredSpacing())
}

// FillGaps subdivides every gap wider than maxSpacing.
//
// A gap of width w receives k = floor(w/desired) evenly spaced points, which
// makes k+1 intervals each shorter than desired. When rounding pushes one of
// them past maxSpacing the gap gets one more point. No gap of the result is
// wider than maxSpacing, so FillGaps is idempotent: running it on its own
// output inserts nothing. The input is not modified; the result is sorted and
// rounded.
func FillGaps(points []float64, maxSpacing, desired float64) []float64 {
	sorted := profile.RoundAll(points)
	sort.Float64s(sorted)
	if len(sorted) < 2 {
		return sorted
	}

	out := make([]float64, 0, len(sorted))
	out = append(out, sorted[0])
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if b-a > maxSpacing+eps {
			out = append(out, split(a, b, maxSpacing, desired, 1)...)
		}
		out = append(out, b)
	}
	return out
}

func seedMullionRelative(p profile.Params, left, right float64, mullions []float64) []float64 {
	anchors := []float64{left}
	inner := append([]float64(nil), mullions...)
	sort.Float64s(inner)
	for _, m := range inner {
		if m > left+eps && m < right-eps && !profile.Equal(m, anchors[len(anchors)-1]) {
			anchors = append(anchors, m)
		}
	}
	anchors = append(anchors, right)

	desired := p.DesiredSpacing()
	last := len(anchors) - 1

	out := []float64{left}
	for i := 1; i <= last; i++ {
		a, b := anchors[i-1], anchors[i]
		parts := 1
		if i > 1 || i < last { // bounded by at least one mullion
			parts = 2
		}
		if b-a > p.MaxSpacing+eps {
			out = append(out, split(a, b, p.MaxSpacing, desired, parts)...)
		} else {
			out = append(out, subdivide(a, b, parts)...)
		}
	}
	return append(out, right)
}

// split returns the rounded points dividing [a, b] into at least minParts
// equal parts and at least floor((b-a)/desired)+1 of them. Parts are added
// until every rounded interval is at most maxSpacing or the parts reach
// [profile.Unit].
func split(a, b, maxSpacing, desired float64, minParts int) []float64 {
	if desired <= 0 {
		return subdivide(a, b, minParts)
	}
	n := max(minParts, int(math.Floor((b-a)/desired+eps))+1)
	limit := max(n, int(math.Ceil((b-a)/profile.Unit-eps)))
	for {
		pts := subdivide(a, b, n)
		if n >= limit || fits(a, b, pts, maxSpacing) {
			return pts
		}
		n++
	}
}

// fits reports whether no interval of a, pts..., b is wider than maxSpacing.
func fits(a, b float64, pts []float64, maxSpacing float64) bool {
	prev := a
	for _, p := range append(pts, b) {
		if p-prev > maxSpacing+eps {
			return false
		}
		prev = p
	}
	return true
}

// subdivide returns the n-1 rounded interior points splitting [a, b] into n
// equal parts.
func subdivide(a, b float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	step := (b - a) / float64(n)
	pts := make([]float64, 0, n-1)
	for j := 1; j < n; j++ {
		pts = append(pts, profile.Round(a+float64(j)*step))
	}
	return pts
}
