// Package config defines the trainer's process configuration and how it
// is loaded.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/puimuri/trainer/internal/domain/builder"
	"github.com/puimuri/trainer/internal/domain/exercise"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. "127.0.0.1:8000".
	Addr string `koanf:"addr" validate:"required,hostname_port"`

	// FrontendDir is served at / when it exists.
	FrontendDir string `koanf:"frontend_dir"`

	// Sampling ranges for generated exercises.
	VoltageMin    float64 `koanf:"voltage_min"`
	VoltageMax    float64 `koanf:"voltage_max"`
	CurrentMin    float64 `koanf:"current_min"`
	CurrentMax    float64 `koanf:"current_max"`
	ResistanceMin float64 `koanf:"resistance_min"`
	ResistanceMax float64 `koanf:"resistance_max"`
	PowerMin      float64 `koanf:"power_min"`
	PowerMax      float64 `koanf:"power_max"`

	// Decimals is how many decimal places generated values keep.
	Decimals int `koanf:"decimals" validate:"gte=0,lte=6"`

	// GradeTolerance is the absolute difference under which a submitted
	// answer is accepted.
	GradeTolerance float64 `koanf:"grade_tolerance" validate:"gt=0"`

	// Seed makes exercise generation reproducible when non-zero.
	Seed int64 `koanf:"seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	d := builder.DefaultConfig()
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           "127.0.0.1:8000",
		FrontendDir:    "static",
		VoltageMin:     d.Voltage.Min,
		VoltageMax:     d.Voltage.Max,
		CurrentMin:     d.Current.Min,
		CurrentMax:     d.Current.Max,
		ResistanceMin:  d.Resistance.Min,
		ResistanceMax:  d.Resistance.Max,
		PowerMin:       d.Power.Min,
		PowerMax:       d.Power.Max,
		Decimals:       d.Decimals,
		GradeTolerance: exercise.DefaultGradeTolerance,
	}
}

// BuilderConfig converts the sampling settings into a builder.Config.
func (c *Config) BuilderConfig() (builder.Config, error) {
	cfg := builder.DefaultConfig()
	var err error
	if cfg, err = cfg.SetVoltageRange(c.VoltageMin, c.VoltageMax); err != nil {
		return cfg, err
	}
	if cfg, err = cfg.SetCurrentRange(c.CurrentMin, c.CurrentMax); err != nil {
		return cfg, err
	}
	if cfg, err = cfg.SetResistanceRange(c.ResistanceMin, c.ResistanceMax); err != nil {
		return cfg, err
	}
	if cfg, err = cfg.SetPowerRange(c.PowerMin, c.PowerMax); err != nil {
		return cfg, err
	}
	if cfg, err = cfg.SetDecimals(c.Decimals); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the sampling ranges.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.BuilderConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
