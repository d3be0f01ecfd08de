// Package config loads frame files: TOML documents describing a batch of
// profiles to lay out.
//
// # Format
//
// Top-level keys set defaults for every frame; each [[frame]] table names one
// profile and overrides any of them. An optional [output] table selects the
// output directory and formats for batch runs.
//
//	length = 3.0
//	mullion_count = 4
//	strategy = "edge-symmetric"
//
//	[output]
//	dir = "plans"
//	formats = ["svg", "json"]
//
//	[[frame]]
//	name = "north"
//
//	[[frame]]
//	name = "door"
//	length = 2.2
//	mullion_count = 1
//	clamp = "edge"
//
// Top-level keys that are not defined keep the values of [profile.Default].
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/drainplan/pkg/errors"
	"github.com/matzehuels/drainplan/pkg/profile"
)

// File is a decoded and validated frame file.
type File struct {
	Defaults profile.Params
	Output   Output
	Frames   []Frame
}

// Output holds batch output settings. Empty fields are left to the caller.
type Output struct {
	Dir     string
	Formats []string
}

// Frame is one named profile of a file.
type Frame struct {
	Name   string
	Params profile.Params
}

type fileConfig struct {
	Length       float64       `toml:"length"`
	EdgeOffset   float64       `toml:"edge_offset"`
	MinSpacing   float64       `toml:"min_spacing"`
	MaxSpacing   float64       `toml:"max_spacing"`
	MinClearance float64       `toml:"min_clearance"`
	MullionCount int           `toml:"mullion_count"`
	EdgePolicy   string        `toml:"edge_policy"`
	Strategy     string        `toml:"strategy"`
	Target       string        `toml:"target"`
	Clamp        string        `toml:"clamp"`
	Output       outputConfig  `toml:"output"`
	Frames       []frameConfig `toml:"frame"`
}

type outputConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"`
}

// frameConfig uses pointers: a nil field inherits the file default.
type frameConfig struct {
	Name         string   `toml:"name"`
	Length       *float64 `toml:"length"`
	EdgeOffset   *float64 `toml:"edge_offset"`
	MinSpacing   *float64 `toml:"min_spacing"`
	MaxSpacing   *float64 `toml:"max_spacing"`
	MinClearance *float64 `toml:"min_clearance"`
	MullionCount *int     `toml:"mullion_count"`
	EdgePolicy   *string  `toml:"edge_policy"`
	Strategy     *string  `toml:"strategy"`
	Target       *string  `toml:"target"`
	Clamp        *string  `toml:"clamp"`
}

// Load reads and validates the frame file at path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "frame file %s", path)
	}
	if err != nil {
		return File{}, fmt.Errorf("open frame file: %w", err)
	}
	defer f.Close()

	file, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Decode reads and validates a frame file from r.
func Decode(r io.Reader) (File, error) {
	var raw fileConfig
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse frame file")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
	}

	defaults := applyDefaults(profile.Default(), raw, meta)

	if len(raw.Frames) == 0 {
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "frame file defines no [[frame]] tables")
	}

	file := File{
		Defaults: defaults,
		Output: Output{
			Dir:     strings.TrimSpace(raw.Output.Dir),
			Formats: normalizeFormats(raw.Output.Formats),
		},
		Frames: make([]Frame, 0, len(raw.Frames)),
	}

	seen := make(map[string]bool, len(raw.Frames))
	for i, fc := range raw.Frames {
		name := strings.TrimSpace(fc.Name)
		if name == "" {
			name = fmt.Sprintf("frame-%d", i+1)
		}
		if err := validateName(name); err != nil {
			return File{}, err
		}
		if seen[name] {
			return File{}, errors.New(errors.ErrCodeInvalidConfig, "duplicate frame name %q", name)
		}
		seen[name] = true

		p := applyOverrides(defaults, fc)
		p.SetDefaults()
		if err := p.Validate(); err != nil {
			return File{}, fmt.Errorf("frame %q: %w", name, err)
		}
		file.Frames = append(file.Frames, Frame{Name: name, Params: p})
	}
	return file, nil
}

// validateName rejects frame names that are not a single local file name.
// Batch output is written to <dir>/<name>.<format>.
func validateName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || !filepath.IsLocal(name) {
		return errors.New(errors.ErrCodeInvalidConfig, "frame name %q must be a plain file name", name)
	}
	return nil
}

func applyDefaults(p profile.Params, raw fileConfig, meta toml.MetaData) profile.Params {
	if meta.IsDefined("length") {
		p.Length = raw.Length
	}
	if meta.IsDefined("edge_offset") {
		p.EdgeOffset = raw.EdgeOffset
	}
	if meta.IsDefined("min_spacing") {
		p.MinSpacing = raw.MinSpacing
	}
	if meta.IsDefined("max_spacing") {
		p.MaxSpacing = raw.MaxSpacing
	}
	if meta.IsDefined("min_clearance") {
		p.MinClearance = raw.MinClearance
	}
	if meta.IsDefined("mullion_count") {
		p.MullionCount = raw.MullionCount
	}
	if meta.IsDefined("edge_policy") {
		p.EdgePolicy = profile.EdgePolicy(raw.EdgePolicy)
	}
	if meta.IsDefined("strategy") {
		p.Strategy = profile.Strategy(raw.Strategy)
	}
	if meta.IsDefined("target") {
		p.Target = profile.Target(raw.Target)
	}
	if meta.IsDefined("clamp") {
		p.Clamp = profile.ClampMode(raw.Clamp)
	}
	return p
}

func applyOverrides(p profile.Params, fc frameConfig) profile.Params {
	if fc.Length != nil {
		p.Length = *fc.Length
	}
	if fc.EdgeOffset != nil {
		p.EdgeOffset = *fc.EdgeOffset
	}
	if fc.MinSpacing != nil {
		p.MinSpacing = *fc.MinSpacing
	}
	if fc.MaxSpacing != nil {
		p.MaxSpacing = *fc.MaxSpacing
	}
	if fc.MinClearance != nil {
		p.MinClearance = *fc.MinClearance
	}
	if fc.MullionCount != nil {
		p.MullionCount = *fc.MullionCount
	}
	if fc.EdgePolicy != nil {
		p.EdgePolicy = profile.EdgePolicy(*fc.EdgePolicy)
	}
	if fc.Strategy != nil {
		p.Strategy = profile.Strategy(*fc.Strategy)
	}
	if fc.Target != nil {
		p.Target = profile.Target(*fc.Target)
	}
	if fc.Clamp != nil {
		p.Clamp = profile.ClampMode(*fc.Clamp)
	}
	return p
}

func normalizeFormats(in []string) []string {
	out := make([]string, 0, len(in))
	for _, f := range in {
		v := strings.ToLower(strings.TrimSpace(f))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
