package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the on-disk YAML shape read by the driver, per SPEC_FULL.md
// section 6.5: a field file, its dimensions and basis, an isovalue, and an
// output path/format. Flags in main.go may override Isovalue and Format
// without editing the file.
type config struct {
	FieldFile string     `yaml:"field_file"`
	Dims      [3]int     `yaml:"dims"`
	Basis     [9]float64 `yaml:"basis"`
	Isovalue  float64    `yaml:"isovalue"`
	Output    string     `yaml:"output"`
	Format    string     `yaml:"format"` // "ply", "stl", "3mf", or "svg"

	// CrossSection fields, only consulted when Format == "svg".
	Axis  int `yaml:"axis"`
	Level int `yaml:"level"`
}

func loadConfig(path string) (config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	var c config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return c, nil
}

// loadField reads a raw little-endian float64 field file: dims.X*dims.Y*dims.Z
// consecutive float64 samples, no header.
func loadField(path string, dims [3]int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field file %q: %w", path, err)
	}
	n := dims[0] * dims[1] * dims[2]
	want := n * 8
	if len(raw) != want {
		return nil, fmt.Errorf("field file %q: got %d bytes, want %d for dims %v", path, len(raw), want, dims)
	}
	data := make([]float64, n)
	for i := range data {
		bits := binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
		data[i] = math.Float64frombits(bits)
	}
	return data, nil
}
