// Command gotessel is the CLI driver described in SPEC_FULL.md section 6.5:
// it reads a YAML config naming a raw field file, dimensions, basis,
// isovalue and output path/format, and writes the extracted mesh in one of
// four formats. It is glue around package tessel, not part of the core
// extraction algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ifilot/gotessel"
	"github.com/ifilot/gotessel/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "gotessel:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("gotessel", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "gotessel.yaml", "path to YAML config")
	isoOverride := flags.Float64("isovalue", 0, "override the config isovalue")
	formatOverride := flags.StringP("format", "f", "", "override the config output format (ply, stl, 3mf, svg)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if flags.Changed("isovalue") {
		cfg.Isovalue = *isoOverride
	}
	if *formatOverride != "" {
		cfg.Format = *formatOverride
	}

	if cfg.Format == "svg" {
		return runCrossSection(cfg)
	}
	return runExtract(cfg)
}

func runExtract(cfg config) error {
	data, err := loadField(cfg.FieldFile, cfg.Dims)
	if err != nil {
		return err
	}
	mesh, err := tessel.MarchingCubes(data, cfg.Dims, cfg.Basis, cfg.Isovalue, tessel.Options{})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output %q: %w", cfg.Output, err)
	}
	defer out.Close()

	switch cfg.Format {
	case "", "ply":
		return render.WritePLY(out, mesh, false)
	case "ply-ascii":
		return render.WritePLY(out, mesh, true)
	case "stl":
		return render.WriteSTL(out, mesh)
	case "3mf":
		return render.Write3MF(out, mesh)
	default:
		return fmt.Errorf("unknown output format %q", cfg.Format)
	}
}

func runCrossSection(cfg config) error {
	data, err := loadField(cfg.FieldFile, cfg.Dims)
	if err != nil {
		return err
	}
	f, basis, err := tessel.NewFieldAndBasis(data, cfg.Dims, cfg.Basis)
	if err != nil {
		return err
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output %q: %w", cfg.Output, err)
	}
	defer out.Close()

	return render.WriteCrossSectionSVG(out, f, basis, cfg.Axis, cfg.Level, cfg.Isovalue)
}
