// SPDX-License-Identifier: EPL-2.0

// Package config holds the YAML configuration of the spatialize example.
package config

import (
	"log/slog"
	"time"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to a slog level. Empty means info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root of the configuration file.
type Config struct {
	LogLevel  LogLevel `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"` // "text" or "json"

	Metrics MetricsConfig `yaml:"metrics"`
	Sources []Source      `yaml:"sources"`
	Output  Output        `yaml:"output"`
	Effects Effects       `yaml:"effects"`
	Orbit   Orbit         `yaml:"orbit"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `yaml:"addr"`
}

// Source is one input file placed in the scene.
type Source struct {
	Path string `yaml:"path"`
	// Format is the registry key; defaults to the file extension.
	Format string `yaml:"format"`
	// Gain is the initial linear gain. Zero means 1.
	Gain float64 `yaml:"gain"`
	// Phase offsets this source along the orbit, in radians.
	Phase float64 `yaml:"phase"`
}

// Output describes what the mix is rendered to.
type Output struct {
	Rate      int `yaml:"rate"`
	FrameSize int `yaml:"frame_size"`
	// WavPath writes the mix to a file. Empty plays through the sound card.
	WavPath  string `yaml:"wav_path"`
	BitDepth int    `yaml:"bit_depth"`
	// Buffer is the device buffer length when playing live.
	Buffer time.Duration `yaml:"buffer"`
}

// Effects configures the per-source processing chain.
type Effects struct {
	Smoothing    bool    `yaml:"smoothing"`
	MaxGain      float64 `yaml:"max_gain"`
	SpatialBlend float64 `yaml:"spatial_blend"`
	// Impulse is an optional WAV impulse response applied after panning.
	Impulse   string  `yaml:"impulse"`
	Mix       float64 `yaml:"mix"`
	Normalize bool    `yaml:"normalize"`
}

// Orbit moves every source around the listener.
type Orbit struct {
	Period time.Duration `yaml:"period"`
	Step   time.Duration `yaml:"step"`
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.LogLevel == "" {
		c.LogLevel = LogInfo
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Output.Rate == 0 {
		c.Output.Rate = 48000
	}
	if c.Output.FrameSize == 0 {
		c.Output.FrameSize = 512
	}
	if c.Output.BitDepth == 0 {
		c.Output.BitDepth = 16
	}
	if c.Effects.MaxGain == 0 {
		c.Effects.MaxGain = 4
	}
	if c.Effects.Mix == 0 {
		c.Effects.Mix = 1
	}
	if c.Effects.SpatialBlend == 0 {
		c.Effects.SpatialBlend = 1
	}
	if c.Orbit.Period == 0 {
		c.Orbit.Period = 8 * time.Second
	}
	if c.Orbit.Step == 0 {
		c.Orbit.Step = 20 * time.Millisecond
	}
	for i := range c.Sources {
		if c.Sources[i].Gain == 0 {
			c.Sources[i].Gain = 1
		}
	}
}
