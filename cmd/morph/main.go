// Command morph merges two closed triangular meshes via the spherical
// topology merge and emits an interpolated mesh (spec.md §6 CLI surface).
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"spheremorph/mesh"
	"spheremorph/morph"
	"spheremorph/morphcfg"
	"spheremorph/morpherr"
	"spheremorph/objio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("morph", flag.ContinueOnError)
	output := fs.String("output", "", "path for the ratio-interpolated mesh (also -o)")
	fs.StringVar(output, "o", "", "shorthand for -output")
	ratio := fs.Float64("ratio", 0.5, "interpolation ratio in [0,1] (also -r)")
	fs.Float64Var(ratio, "r", 0.5, "shorthand for -ratio")
	edgeOnly := fs.Bool("edge", false, "emit overlay edges as degenerate triangles (also -e)")
	fs.BoolVar(edgeOnly, "e", false, "shorthand for -edge")
	sphereOnly := fs.Bool("sphere", false, "skip back-projection (also -p)")
	fs.BoolVar(sphereOnly, "p", false, "shorthand for -sphere")
	scale := fs.Bool("scale", false, "normalize both point clouds to the same bounding-box extent (also -s)")
	fs.BoolVar(scale, "s", false, "shorthand for -scale")
	verbose := fs.Bool("verbose", false, "log progress to stderr (also -v)")
	fs.BoolVar(verbose, "v", false, "shorthand for -verbose")
	sweep := fs.Int("sweep", 0, "also write N+1 interpolated meshes at evenly spaced ratios")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	pos := fs.Args()
	if len(pos) != 2 {
		fmt.Fprintln(os.Stderr, "usage: morph [flags] OBJ1 OBJ2")
		fs.PrintDefaults()
		return 1
	}

	cfg := morphcfg.Config{
		OBJ1: pos[0], OBJ2: pos[1],
		Output: *output, Ratio: *ratio,
		EdgeOnly: *edgeOnly, SphereOnly: *sphereOnly, Scale: *scale,
		Verbose: *verbose, Sweep: *sweep,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "morph:", err)
		return 1
	}

	if err := morphMain(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "morph:", err)
		return exitCodeFor(err)
	}
	return 0
}

func morphMain(cfg morphcfg.Config) error {
	logf := func(string, ...any) {}
	if cfg.Verbose {
		logf = log.New(os.Stderr, "morph: ", 0).Printf
	}

	logf("loading %s", cfg.OBJ1)
	m1, err := objio.Load(cfg.OBJ1)
	if err != nil {
		return err
	}
	logf("loading %s", cfg.OBJ2)
	m2, err := objio.Load(cfg.OBJ2)
	if err != nil {
		return err
	}

	logf("projecting both meshes onto the common sphere")
	p1, err := mesh.NewProjection(m1)
	if err != nil {
		return err
	}
	p2, err := mesh.NewProjection(m2)
	if err != nil {
		return err
	}

	logf("computing overlay and tracing faces")
	mm, err := morph.Merge(p1, p2, morph.Options{
		SphereOnly: cfg.SphereOnly,
		EdgeOnly:   cfg.EdgeOnly,
		Scale:      cfg.Scale,
	})
	if err != nil {
		return err
	}

	dumpPath := mergedDumpPath(cfg.OBJ1, cfg.OBJ2)
	logf("writing merged dump to %s", dumpPath)
	if err := objio.SaveMerged(dumpPath, mm); err != nil {
		return err
	}

	if cfg.Output != "" {
		logf("writing ratio %.3f to %s", cfg.Ratio, cfg.Output)
		if err := objio.Save(cfg.Output, mm.Interpolate(cfg.Ratio)); err != nil {
			return err
		}
	}

	if cfg.Sweep > 0 {
		ext := filepath.Ext(cfg.Output)
		stem := strings.TrimSuffix(cfg.Output, ext)
		if stem == "" {
			stem = mergedDumpPath(cfg.OBJ1, cfg.OBJ2)
			stem = strings.TrimSuffix(stem, filepath.Ext(stem))
			ext = ".obj"
		}
		for i := 0; i <= cfg.Sweep; i++ {
			r := float64(i) / float64(cfg.Sweep)
			path := fmt.Sprintf("%s_sweep%03d%s", stem, i, ext)
			logf("writing sweep ratio %.3f to %s", r, path)
			if err := objio.Save(path, mm.Interpolate(r)); err != nil {
				return err
			}
		}
	}

	return nil
}

// mergedDumpPath derives <stem1>_<stem2>.obj from both input paths'
// basenames, matching the original implementation's always-written merged
// dump (main.rs).
func mergedDumpPath(obj1, obj2 string) string {
	stem := func(p string) string {
		b := filepath.Base(p)
		return strings.TrimSuffix(b, filepath.Ext(b))
	}
	return stem(obj1) + "_" + stem(obj2) + ".obj"
}

// exitCodeFor maps a morpherr error kind to the process exit code of
// spec.md §6/§7: 2 parse, 3 projection, 4 topology, 5 domain, 1 otherwise.
func exitCodeFor(err error) int {
	var parseErr *morpherr.ParseError
	var projErr *morpherr.ProjectionError
	var topoErr *morpherr.TopologyError
	var domainErr *morpherr.DomainError
	switch {
	case errors.As(err, &parseErr):
		return 2
	case errors.As(err, &projErr):
		return 3
	case errors.As(err, &topoErr):
		return 4
	case errors.As(err, &domainErr):
		return 5
	default:
		return 1
	}
}
