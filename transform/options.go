// SPDX-License-Identifier: EPL-2.0

package transform

import (
	"log/slog"

	"github.com/ik5/audframe/internal/observe"
)

const defaultMaxIdleNodes = 4

// Config holds the optional settings of a Transform.
type Config struct {
	Logger       *slog.Logger
	Metrics      *observe.Metrics
	Name         string
	MaxIdleNodes int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		Logger:       slog.Default(),
		Name:         "transform",
		MaxIdleNodes: defaultMaxIdleNodes,
	}
}

// WithLogger sets the logger used for lifecycle debug messages.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithMetrics records frame counts, processor latency and live nodes on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(cfg *Config) {
		cfg.Metrics = m
	}
}

// WithName labels log lines and metrics of this transform.
func WithName(name string) Option {
	return func(cfg *Config) {
		if name != "" {
			cfg.Name = name
		}
	}
}

// WithMaxIdleNodes bounds how many released nodes are kept for reuse.
// Zero disables reuse.
func WithMaxIdleNodes(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MaxIdleNodes = n
		}
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
