package sink

import (
	"encoding/json"

	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name    string
	compact bool
	seed    bool
}

// WithJSONName records the frame name in the output, for batch runs.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONCompact drops indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONSeed includes the unresolved seed list.
func WithJSONSeed() JSONOption { return func(r *jsonRenderer) { r.seed = true } }

type jsonOutput struct {
	Name         string             `json:"name,omitempty"`
	Params       profile.Params     `json:"params"`
	Mullions     []float64          `json:"mullions"`
	Drainage     []float64          `json:"drainage"`
	Seed         []float64          `json:"seed,omitempty"`
	MullionGaps  []layout.Gap       `json:"mullion_gaps"`
	DrainageGaps []layout.Gap       `json:"drainage_gaps"`
	Iterations   int                `json:"iterations"`
	Converged    bool               `json:"converged"`
	Violations   []layout.Violation `json:"violations"`
}

// RenderJSON exports l with both point lists, their gaps and the resolution
// outcome. Violations are always present, as an empty list when there are
// none, so consumers need no nil check.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:         r.name,
		Params:       l.Params,
		Mullions:     nonNil(l.Mullions),
		Drainage:     nonNil(l.Drainage),
		MullionGaps:  nonNil(l.MullionGaps),
		DrainageGaps: nonNil(l.DrainageGaps),
		Iterations:   l.Iterations,
		Converged:    l.Converged,
		Violations:   nonNil(l.Violations),
	}
	if r.seed {
		out.Seed = l.Seed
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON reads a document written by [RenderJSON] back into a layout.
func ParseJSON(data []byte) (layout.Layout, error) {
	var in jsonOutput
	if err := json.Unmarshal(data, &in); err != nil {
		return layout.Layout{}, err
	}
	return layout.Layout{
		Params:       in.Params,
		Mullions:     in.Mullions,
		Seed:         in.Seed,
		Drainage:     in.Drainage,
		MullionGaps:  in.MullionGaps,
		DrainageGaps: in.DrainageGaps,
		Iterations:   in.Iterations,
		Converged:    in.Converged,
		Violations:   in.Violations,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
