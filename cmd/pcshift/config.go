package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig holds the estimation parameters that can come from a YAML
// parameter file. Flags given on the command line override file values.
type fileConfig struct {
	// Window is the apodization window name (see the window package).
	Window string `yaml:"window"`

	// WindowAlpha is the taper parameter for parametric windows.
	WindowAlpha float64 `yaml:"windowAlpha"`

	// Band keeps only the centered fraction of the spectrum, in (0, 1].
	Band float64 `yaml:"band"`

	// Workers caps the number of goroutines; 0 selects one per CPU.
	Workers int `yaml:"workers"`

	// Refine enables subsample peak refinement.
	Refine bool `yaml:"refine"`

	// Spacing is the per-axis physical sample spacing (row, column).
	Spacing []float64 `yaml:"spacing"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Window:      "hann",
		WindowAlpha: 0.5,
		Band:        1,
		Refine:      true,
	}
}

// loadConfig reads a YAML parameter file over the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// parseSpacing parses a comma-separated list of positive per-axis sample
// spacings, e.g. "0.5,0.5".
func parseSpacing(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("spacing %q: %w", p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("spacing %q: must be positive", p)
		}
		out = append(out, v)
	}
	return out, nil
}
