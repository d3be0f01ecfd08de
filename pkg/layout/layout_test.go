package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/profile"
)

func TestComputeDefault(t *testing.T) {
	l, err := Compute(profile.Default())
	require.NoError(t, err)

	assert.Equal(t, []float64{0.6, 1.2, 1.8, 2.4}, l.Mullions)
	assert.Equal(t, []float64{0.16, 0.61, 1.05, 1.5, 1.95, 2.39, 2.84}, l.Seed)
	// 0.61 and 2.39 are pushed clear of the 0.6 and 2.4 mullions, and the
	// spacing pass then shifts every later point to keep 0.45 apart.
	assert.Equal(t, []float64{0.16, 0.64, 1.09, 1.54, 1.99, 2.44, 2.89}, l.Drainage)
	assert.True(t, l.Converged)
	assert.Equal(t, 2, l.Iterations)
	assert.Empty(t, l.Violations)
	assert.True(t, l.Satisfied())

	assert.Len(t, l.MullionGaps, 3)
	assert.Len(t, l.DrainageGaps, 6)
}

func TestComputeReportsInfeasibleSpacing(t *testing.T) {
	p := profile.Default()
	p.MinSpacing = 0.6

	l, err := Compute(p)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.16, 0.76, 1.36, 1.96, 2.56, 3}, l.Drainage)
	require.Len(t, l.Violations, 1)
	assert.Equal(t, KindMinSpacing, l.Violations[0].Kind)
	assert.Equal(t, "gap 2.56..3.00 is 0.44 (min 0.60)", l.Violations[0].String())
	assert.False(t, l.Satisfied())
}

func TestComputeFillsPolicyDefaults(t *testing.T) {
	p := profile.Default()
	p.EdgePolicy, p.Strategy, p.Target, p.Clamp = "", " Edge-Symmetric ", "", ""

	l, err := Compute(p)
	require.NoError(t, err)
	assert.Equal(t, profile.StrategyEdgeSymmetric, l.Params.Strategy)
	assert.Equal(t, profile.EdgeInterior, l.Params.EdgePolicy)
	assert.Equal(t, profile.TargetMax, l.Params.Target)
	assert.Equal(t, profile.ClampProfile, l.Params.Clamp)
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*profile.Params)
		code   errors.Code
	}{
		{"zero length", func(p *profile.Params) { p.Length = 0 }, errors.ErrCodeInvalidConfig},
		{"zero mullions", func(p *profile.Params) { p.MullionCount = 0 }, errors.ErrCodeInvalidConfig},
		{"min above max", func(p *profile.Params) { p.MinSpacing = 0.9 }, errors.ErrCodeInvalidConfig},
		{"unknown strategy", func(p *profile.Params) { p.Strategy = "zigzag" }, errors.ErrCodeInvalidStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.Default()
			tt.mutate(&p)
			_, err := Compute(p)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestComputeClampEdge(t *testing.T) {
	p := profile.Default()
	p.Strategy = profile.StrategyMullionRelative

	wide, err := Compute(p)
	require.NoError(t, err)
	assert.Equal(t, 3.0, wide.Drainage[len(wide.Drainage)-1])

	p.Clamp = profile.ClampEdge
	l, err := Compute(p)
	require.NoError(t, err)
	for _, d := range l.Drainage {
		assert.GreaterOrEqual(t, d, 0.16)
		assert.LessOrEqual(t, d, 2.84)
	}
}

func TestComputeNotConverged(t *testing.T) {
	p := profile.Default()
	p.Strategy = profile.StrategyMullionRelative

	l, err := Compute(p, WithMaxIterations(1))
	require.NoError(t, err)
	assert.False(t, l.Converged)
	assert.Equal(t, 1, l.Iterations)
	assert.False(t, l.Satisfied())
}

// randomParams returns valid parameters covering short, long, dense and
// sparse frames.
func randomParams(r *rand.Rand) profile.Params {
	length := profile.Round(0.5 + r.Float64()*6)
	minS := profile.Round(r.Float64() * 0.6)
	maxS := profile.Round(minS + 0.05 + r.Float64()*0.8)
	strategies := []profile.Strategy{profile.StrategyEdgeSymmetric, profile.StrategyMullionRelative, profile.StrategyParityAware}
	return profile.Params{
		Length:       length,
		EdgeOffset:   profile.Round(r.Float64() * length * 0.2),
		MinSpacing:   minS,
		MaxSpacing:   maxS,
		MinClearance: profile.Round(r.Float64() * 0.1),
		MullionCount: 1 + r.Intn(9),
		EdgePolicy:   []profile.EdgePolicy{profile.EdgeInterior, profile.EdgeInclusive}[r.Intn(2)],
		Strategy:     strategies[r.Intn(len(strategies))],
		Target:       []profile.Target{profile.TargetMax, profile.TargetMidrange}[r.Intn(2)],
		Clamp:        []profile.ClampMode{profile.ClampProfile, profile.ClampEdge}[r.Intn(2)],
	}
}

func TestComputeBoundedAndSorted(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := randomParams(r)
		l, err := Compute(p)
		require.NoError(t, err, "params %+v", p)

		for _, m := range l.Mullions {
			assert.True(t, m >= 0 && m <= p.Length, "mullion %v outside [0, %v]", m, p.Length)
		}
		for j, d := range l.Drainage {
			assert.True(t, d >= 0 && d <= p.Length, "drainage %v outside [0, %v]", d, p.Length)
			assert.Equal(t, profile.Round(d), d, "drainage %v not rounded", d)
			if j > 0 {
				assert.Less(t, profile.Key(l.Drainage[j-1]), profile.Key(d), "drainage not strictly ascending: %v", l.Drainage)
			}
		}
		assert.LessOrEqual(t, l.Iterations, DefaultMaxIterations)
	}
}

func TestComputeDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		p := randomParams(r)
		a, err := Compute(p)
		require.NoError(t, err)
		b, err := Compute(p)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}
