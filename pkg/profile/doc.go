// Package profile defines the validated parameter set of a frame profile.
//
// # Overview
//
// A profile is a 1-D segment [0, L] (a window frame) carrying two point sets:
// fixed mullions and drainage holes. [Params] holds everything a computation
// needs: the profile length, the edge offset of the outermost drainage holes,
// the minimum and maximum spacing between drainage holes, the minimum
// clearance between a drainage hole and a mullion, and the mullion count.
//
// Four policy fields select between the layout variants the engine supports:
//
//   - [EdgePolicy]: whether the profile ends count as mullions
//   - [Strategy]: how drainage candidates are seeded
//   - [Target]: which distance sizes gap subdivisions
//   - [ClampMode]: which interval final points are clamped to
//
// # Validation
//
// [Params.Validate] rejects structurally invalid input (L <= 0, mullion count
// below one, min spacing above max spacing, an edge offset reaching the
// centre). Geometric conflicts between otherwise valid constraints are not
// validation errors; the layout engine degrades and reports them.
//
// # Rounding
//
// All coordinates are rounded to [Precision] decimal places with [Round].
// Rounding is idempotent: Round(Round(x)) == Round(x).
package profile
