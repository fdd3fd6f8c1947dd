// Package config holds the pipeline configuration shared by the MCP server
// and the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// Config is the full set of tunables for one detection run.
type Config struct {
	AngleBins     int     `mapstructure:"angle_bins" yaml:"angle_bins" json:"angle_bins"`
	DistanceBins  int     `mapstructure:"distance_bins" yaml:"distance_bins" json:"distance_bins"`
	KernelSize    int     `mapstructure:"kernel_size" yaml:"kernel_size" json:"kernel_size"`
	PeakThreshold float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`

	// EdgeLevel is the minimum gray level (1-255) treated as an edge pixel.
	EdgeLevel int `mapstructure:"edge_level" yaml:"edge_level" json:"edge_level"`

	Workers     int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	RangePolicy string `mapstructure:"range_policy" yaml:"range_policy" json:"range_policy"`

	// LineColor and NormalColor are hex colors. An empty NormalColor disables
	// drawing normals.
	LineColor   string  `mapstructure:"line_color" yaml:"line_color" json:"line_color"`
	NormalColor string  `mapstructure:"normal_color" yaml:"normal_color" json:"normal_color"`
	LineWidth   float64 `mapstructure:"line_width" yaml:"line_width" json:"line_width"`

	// MaxLines caps the reported lines; 0 means unlimited.
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines" json:"max_lines"`
}

// Default returns the reference configuration: a 360x500 accumulator, a 21
// cell suppression window, lines in red and normals in green.
func Default() Config {
	return Config{
		AngleBins:     hough.DefaultAngleBins,
		DistanceBins:  hough.DefaultDistanceBins,
		KernelSize:    hough.DefaultKernelSize,
		PeakThreshold: hough.DefaultPeakThreshold,
		EdgeLevel:     1,
		Workers:       0,
		RangePolicy:   hough.RangeStrict.String(),
		LineColor:     "#FF0000",
		NormalColor:   "#00FF00",
		LineWidth:     1,
		MaxLines:      0,
	}
}

// Options converts the configuration into core options.
func (c Config) Options() (hough.Options, error) {
	policy, err := hough.ParseRangePolicy(c.RangePolicy)
	if err != nil {
		return hough.Options{}, err
	}
	return hough.DefaultOptions().
		WithBins(c.AngleBins, c.DistanceBins).
		WithKernelSize(c.KernelSize).
		WithPeakThreshold(c.PeakThreshold).
		WithWorkers(c.Workers).
		WithRangePolicy(policy), nil
}

// Validate checks every field. Core parameters are checked by hough.Options.
func (c Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if c.EdgeLevel < 1 || c.EdgeLevel > 255 {
		return fmt.Errorf("edge level must be within [1, 255] (got %d)", c.EdgeLevel)
	}
	if _, err := colorful.Hex(c.LineColor); err != nil {
		return fmt.Errorf("invalid line color %q: %w", c.LineColor, err)
	}
	if c.NormalColor != "" {
		if _, err := colorful.Hex(c.NormalColor); err != nil {
			return fmt.Errorf("invalid normal color %q: %w", c.NormalColor, err)
		}
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("line width must be > 0 (got %g)", c.LineWidth)
	}
	if c.MaxLines < 0 {
		return fmt.Errorf("max lines must be >= 0 (got %d)", c.MaxLines)
	}
	return nil
}

// FromEnv returns Default overridden by HOUGH_* environment variables.
// Unparseable values keep the default.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.AngleBins = parseIntOrDefault("HOUGH_ANGLE_BINS", cfg.AngleBins)
	cfg.DistanceBins = parseIntOrDefault("HOUGH_DISTANCE_BINS", cfg.DistanceBins)
	cfg.KernelSize = parseIntOrDefault("HOUGH_KERNEL_SIZE", cfg.KernelSize)
	cfg.PeakThreshold = parseFloatOrDefault("HOUGH_THRESHOLD", cfg.PeakThreshold)
	cfg.EdgeLevel = parseIntOrDefault("HOUGH_EDGE_LEVEL", cfg.EdgeLevel)
	cfg.Workers = parseIntOrDefault("HOUGH_WORKERS", cfg.Workers)
	cfg.RangePolicy = getEnvOrDefault("HOUGH_RANGE_POLICY", cfg.RangePolicy)
	cfg.LineColor = getEnvOrDefault("HOUGH_LINE_COLOR", cfg.LineColor)
	cfg.NormalColor = getEnvOrDefault("HOUGH_NORMAL_COLOR", cfg.NormalColor)
	cfg.LineWidth = parseFloatOrDefault("HOUGH_LINE_WIDTH", cfg.LineWidth)
	cfg.MaxLines = parseIntOrDefault("HOUGH_MAX_LINES", cfg.MaxLines)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
