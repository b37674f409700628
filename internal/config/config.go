// Package config assembles tool configuration from defaults, an optional
// YAML file, and EDACLI_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"edacli/internal/loader"
	"edacli/internal/quality"
)

const envPrefix = "EDACLI"

var validate = validator.New()

// LoaderConfig controls how files are parsed into datasets.
type LoaderConfig struct {
	Delimiter      string   `yaml:"delimiter" envconfig:"DELIMITER"`
	SheetName      string   `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	MissingMarkers []string `yaml:"missing_markers" envconfig:"MISSING_MARKERS"`
	TrimSpace      bool     `yaml:"trim_space" envconfig:"TRIM_SPACE"`
}

// Options returns the loader options for this configuration.
func (c LoaderConfig) Options() loader.Options {
	return loader.Options{
		Delimiter:      c.Delimiter,
		SheetName:      c.SheetName,
		MissingMarkers: c.MissingMarkers,
		TrimSpace:      c.TrimSpace,
	}
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format             string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	TopK               int    `yaml:"top_k" envconfig:"TOP_K" validate:"gte=0"`
	MaxCategoryColumns int    `yaml:"max_category_columns" envconfig:"MAX_CATEGORY_COLUMNS" validate:"gte=0"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// Config is the full tool configuration.
type Config struct {
	Loader  LoaderConfig   `yaml:"loader" envconfig:"LOADER"`
	Report  ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Quality quality.Policy `yaml:"quality" envconfig:"QUALITY"`
	Logging LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// Default returns the stock configuration.
func Default() Config {
	opts := loader.DefaultOptions()
	return Config{
		Loader: LoaderConfig{
			Delimiter:      opts.Delimiter,
			MissingMarkers: opts.MissingMarkers,
			TrimSpace:      opts.TrimSpace,
		},
		Report: ReportConfig{
			Format:             "text",
			TopK:               5,
			MaxCategoryColumns: 10,
		},
		Quality: quality.DefaultPolicy(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration. A non-empty path names a YAML file that
// must exist; environment variables override it; the result is
// validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
