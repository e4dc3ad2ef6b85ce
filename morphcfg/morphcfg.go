// Package morphcfg holds the resolved configuration for a single morph
// run (spec.md §6 CLI surface). There is no config-file format: the
// teacher's own CLI tools (cmd/trace, cmd/bake) and the original Rust
// front-end both take flags directly, so morphcfg is a plain struct
// filled in by cmd/morph's flag parsing rather than a parser of its own.
package morphcfg

// Config is the fully resolved set of knobs for one morph invocation.
type Config struct {
	// OBJ1, OBJ2 are the positional input mesh paths.
	OBJ1, OBJ2 string

	// Output is the ratio-interpolated mesh's destination path. Empty
	// means no single-ratio mesh is written.
	Output string

	// Ratio is the interpolation parameter in [0,1] used for Output.
	Ratio float64

	// EdgeOnly emits overlay edges as degenerate triangles instead of
	// tracing faces, for visualizing the overlay itself.
	EdgeOnly bool

	// SphereOnly skips back-projection: vertex pairs carry the shared
	// sphere position on both sides.
	SphereOnly bool

	// Scale forces both point clouds to the same bounding-box extent
	// rather than only the larger of the two.
	Scale bool

	// Verbose enables progress logging to stderr.
	Verbose bool

	// Sweep, when > 0, additionally writes Sweep+1 interpolated meshes at
	// evenly spaced ratios from 0 to 1 instead of (or alongside) Output.
	Sweep int
}

// Validate checks the invariants Config's fields must satisfy before a run
// starts: Ratio in [0,1], Sweep non-negative, both inputs given.
func (c Config) Validate() error {
	if c.OBJ1 == "" || c.OBJ2 == "" {
		return errMissingInput
	}
	if c.Ratio < 0 || c.Ratio > 1 {
		return errRatioRange
	}
	if c.Sweep < 0 {
		return errNegativeSweep
	}
	return nil
}
