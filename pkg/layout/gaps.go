package layout

import "github.com/matzehuels/drainplan/pkg/profile"

// Gap is the distance between two adjacent points, with the midpoint where a
// renderer places its label.
type Gap struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Width float64 `json:"width"`
	Mid   float64 `json:"mid"`
}

// Gaps returns the gaps between consecutive entries of points, which must be
// ordered. Lists with fewer than two points have no gaps.
func Gaps(points []float64) []Gap {
	if len(points) < 2 {
		return []Gap{}
	}
	gaps := make([]Gap, len(points)-1)
	for i := range gaps {
		a, b := points[i], points[i+1]
		gaps[i] = Gap{
			Start: a,
			End:   b,
			Width: profile.Round(b - a),
			Mid:   (a + b) / 2,
		}
	}
	return gaps
}
