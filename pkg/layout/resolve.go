package layout

import (
	"math"
	"slices"
	"sort"

	"github.com/matzehuels/drainplan/pkg/profile"
)

// DefaultMaxIterations bounds the clearance/spacing fixed-point loop.
const DefaultMaxIterations = 16

// Resolution is the outcome of [Resolve].
type Resolution struct {
	// Points is the final drainage list: clamped, deduplicated, ascending.
	Points []float64
	// Iterations is the number of clearance+spacing rounds that ran.
	Iterations int
	// Converged is false when the loop stopped at the iteration bound while
	// points were still moving.
	Converged bool
}

// ResolveOption configures [Resolve] and [Compute].
type ResolveOption func(*resolver)

type resolver struct {
	maxIterations int
}

// WithMaxIterations sets the iteration bound of the fixed-point loop.
// Values below one are ignored.
func WithMaxIterations(n int) ResolveOption {
	return func(r *resolver) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// Resolve corrects seed against mullions and the constraints in p.
//
// Each round applies a clearance pass and then a spacing pass to a fresh copy
// of the previous round's points. Rounds repeat until one of them changes
// nothing or the iteration bound is hit. The surviving points are clamped to
// p.Bounds, deduplicated at [profile.Precision] and sorted.
//
// Resolve never fails. Constraints that cannot be met together are left
// violated; use [Check] to list them.
func Resolve(seed, mullions []float64, p profile.Params, opts ...ResolveOption) Resolution {
	r := resolver{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&r)
	}

	cur := profile.RoundAll(seed)
	sort.Float64s(cur)

	res := Resolution{}
	for res.Iterations < r.maxIterations {
		next := spacingPass(clearancePass(cur, mullions, p.MinClearance), p.MinSpacing, p.MaxSpacing)
		res.Iterations++
		if slices.Equal(next, cur) {
			res.Converged = true
			break
		}
		cur = next
	}

	lower, upper := p.Bounds()
	res.Points = dedupSorted(clamp(cur, profile.CeilUnit(lower), profile.FloorUnit(upper)))
	return res
}

// clearancePass pushes every point closer than clearance to a mullion out to
// exactly clearance on its own side. Mullions are visited in list order and a
// later mullion may move a point again.
func clearancePass(points, mullions []float64, clearance float64) []float64 {
	out := slices.Clone(points)
	if clearance <= 0 {
		return out
	}
	for _, m := range mullions {
		for i, p := range out {
			if math.Abs(p-m) >= clearance-eps {
				continue
			}
			if p < m {
				out[i] = profile.Round(m - clearance)
			} else {
				out[i] = profile.Round(m + clearance)
			}
		}
	}
	return out
}

// spacingPass sorts points and sweeps adjacent pairs once, left to right.
// A gap below minSpacing moves the right point to left+minSpacing. A gap above
// maxSpacing gets its rounded midpoint and the sweep continues after the
// original right point. Halves that end up below minSpacing are pushed apart
// in the next round.
func spacingPass(points []float64, minSpacing, maxSpacing float64) []float64 {
	sorted := slices.Clone(points)
	sort.Float64s(sorted)
	if len(sorted) < 2 {
		return sorted
	}

	out := make([]float64, 0, len(sorted)+len(sorted)/2)
	out = append(out, sorted[0])
	for _, p := range sorted[1:] {
		left := out[len(out)-1]
		gap := p - left
		switch {
		case gap < minSpacing-eps:
			p = profile.Round(left + minSpacing)
		case gap > maxSpacing+eps && gap >= 2*profile.Unit-eps:
			out = append(out, profile.Round((left+p)/2))
		}
		out = append(out, p)
	}
	return out
}

func clamp(points []float64, lower, upper float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = math.Max(math.Min(p, upper), lower)
	}
	return out
}

// dedupSorted sorts points and drops coordinates equal at [profile.Precision].
func dedupSorted(points []float64) []float64 {
	sorted := slices.Clone(points)
	sort.Float64s(sorted)
	out := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if len(out) > 0 && profile.Equal(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
