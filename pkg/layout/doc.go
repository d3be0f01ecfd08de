// Package layout computes mullion and drainage hole positions along a profile.
//
// # Overview
//
// A computation runs in four stages, each exposed on its own so callers and
// tests can drive them individually:
//
//  1. [Mullions]: evenly spaced support points across [0, L]
//  2. [Seed]: initial drainage candidates from the edge points, an optional
//     centre point and gap filling
//  3. [Resolve]: a bounded fixed-point loop of clearance and spacing passes,
//     followed by clamping, deduplication and sorting
//  4. [Gaps]: pairwise distances and label positions for rendering
//
// [Compute] chains all four for a [profile.Params] and returns a [Layout].
//
// # Infeasible Constraints
//
// Spacing and clearance rules can contradict each other on short profiles or
// densely mullioned frames. The engine never fails on such input: it returns
// the best layout it reached and lists what is still broken in
// [Layout.Violations]. [Layout.Converged] is false when the resolver gave up
// at its iteration bound (see [WithMaxIterations]).
//
// # Determinism
//
// Every coordinate is rounded to [profile.Precision] as soon as it is
// computed, and all stages are pure functions of their inputs. Identical
// parameters always produce identical layouts, which is what lets the
// pipeline cache them by parameter hash.
package layout
