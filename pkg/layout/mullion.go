package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// Mullions returns count mullion positions evenly spaced across [0, length].
//
// With [profile.EdgeInterior] the points are i*length/(count+1) for
// i = 1..count. [profile.EdgeInclusive] additionally includes 0 and length,
// so the result has count+2 points. Coordinates are rounded to
// [profile.Precision] and returned in ascending order. Rounding never merges
// points: the count is exact even when neighbours round to the same value.
//
// No point lies beyond length. When length is not on the 0.01 grid the
// inclusive end mullion, and any interior point that would round past it, is
// floored to the last grid value inside the frame: 2.999 ends at 2.99, not 3.00.
//
// A count below one or a non-positive length fails with
// [errors.ErrCodeInvalidConfig].
func Mullions(length float64, count int, policy profile.EdgePolicy) ([]float64, error) {
	if err := errors.ValidatePositive("length", length); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mullion_count must be >= 1, got %d", count)
	}
	if policy != profile.EdgeInterior && policy != profile.EdgeInclusive {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid edge_policy: %q", policy)
	}

	// Round(length) either equals FloorUnit(length) or exceeds length.
	end := profile.FloorUnit(length)
	step := length / float64(count+1)

	points := make([]float64, 0, count+2)
	for i := 1; i <= count; i++ {
		points = append(points, math.Min(profile.Round(float64(i)*step), end))
	}
	if policy == profile.EdgeInclusive {
		points = append(points, 0, end)
		sort.Float64s(points)
	}
	return points, nil
}
