// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// Config with defaults applied.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r. Unknown keys are errors.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	cfg.Defaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FormatOf is the registry key for s: its Format, or the lower-cased file
// extension.
func FormatOf(s Source) string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(s.Path), "."))
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q is invalid; valid values: text, json", cfg.LogFormat))
	}

	if len(cfg.Sources) == 0 {
		errs = append(errs, errors.New("sources: at least one source is required"))
	}
	for i, s := range cfg.Sources {
		prefix := fmt.Sprintf("sources[%d]", i)
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("%s.path is required", prefix))
		} else if FormatOf(s) == "" {
			errs = append(errs, fmt.Errorf("%s: cannot tell the format of %q; set format", prefix, s.Path))
		}
		if s.Gain < 0 {
			errs = append(errs, fmt.Errorf("%s.gain %.2f must not be negative", prefix, s.Gain))
		}
	}

	if cfg.Output.Rate < 0 {
		errs = append(errs, fmt.Errorf("output.rate %d must be positive", cfg.Output.Rate))
	}
	if cfg.Output.FrameSize < 0 {
		errs = append(errs, fmt.Errorf("output.frame_size %d must be positive", cfg.Output.FrameSize))
	}
	switch cfg.Output.BitDepth {
	case 0, 8, 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("output.bit_depth %d is invalid; valid values: 8, 16, 24, 32", cfg.Output.BitDepth))
	}

	if cfg.Effects.MaxGain < 0 {
		errs = append(errs, fmt.Errorf("effects.max_gain %.2f must not be negative", cfg.Effects.MaxGain))
	}
	if cfg.Effects.Mix < 0 || cfg.Effects.Mix > 1 {
		errs = append(errs, fmt.Errorf("effects.mix %.2f is out of range [0, 1]", cfg.Effects.Mix))
	}
	if cfg.Effects.SpatialBlend < 0 || cfg.Effects.SpatialBlend > 1 {
		errs = append(errs, fmt.Errorf("effects.spatial_blend %.2f is out of range [0, 1]", cfg.Effects.SpatialBlend))
	}

	if cfg.Orbit.Period < 0 || cfg.Orbit.Step < 0 {
		errs = append(errs, errors.New("orbit: period and step must not be negative"))
	}

	return errors.Join(errs...)
}
