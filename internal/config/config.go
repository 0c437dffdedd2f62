// Package config loads the butterfly command's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full tool configuration. Command-line flags override the
// values read from file.
type Config struct {
	// Scheme is the subdivision scheme name (see butterfly.ParseScheme).
	Scheme string `yaml:"scheme" validate:"oneof=butterfly linear boundary pascal"`
	// Iterations is the number of subdivision passes.
	Iterations int `yaml:"iterations" validate:"min=1,max=10"`
	// Workers is the number of goroutines per pass; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0"`

	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	Wireframe Wireframe `yaml:"wireframe"`
	Log       Log       `yaml:"log"`
}

// Wireframe configures the optional PNG preview.
type Wireframe struct {
	// Path is where the image is written. Empty disables the preview.
	Path        string  `yaml:"path"`
	Width       int     `yaml:"width" validate:"min=1,max=16384"`
	Height      int     `yaml:"height" validate:"min=1,max=16384"`
	Projection  string  `yaml:"projection" validate:"oneof=xy xz yz"`
	LineWidth   float64 `yaml:"line_width" validate:"gt=0"`
	Supersample int     `yaml:"supersample" validate:"min=1,max=8"`
}

// Log configures the slog handler installed by the command.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scheme:     "butterfly",
		Iterations: 1,
		Workers:    0,
		Wireframe: Wireframe{
			Width:       800,
			Height:      800,
			Projection:  "xy",
			LineWidth:   1,
			Supersample: 2,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads path over the defaults and validates the result. Keys that
// do not belong to Config are an error. An empty file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel returns the configured log level.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	// Validate has already restricted Level to names slog understands.
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
