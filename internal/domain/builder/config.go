// Package builder generates random exercises from configured value ranges.
package builder

import (
	"fmt"

	"github.com/puimuri/trainer/internal/domain/circuit"
)

// Default sampling configuration constants.
const (
	defaultVoltageMin    = 1.0
	defaultVoltageMax    = 240.0
	defaultCurrentMin    = 0.1
	defaultCurrentMax    = 10.0
	defaultResistanceMin = 1.0
	defaultResistanceMax = 1000.0
	defaultPowerMin      = 1.0
	defaultPowerMax      = 2400.0

	// MaxDecimals bounds the rounding precision of sampled values.
	MaxDecimals = 6
)

// Range is a closed sampling interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewRange validates and returns a range.
func NewRange(minValue, maxValue float64) (Range, error) {
	if minValue > maxValue {
		return Range{}, fmt.Errorf("%w: min: %v, max: %v", ErrMinLargerThanMax, minValue, maxValue)
	}
	return Range{Min: minValue, Max: maxValue}, nil
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Config describes how exercises are generated. It is a plain value; the
// setters return an updated copy so calls can be chained.
type Config struct {
	Voltage    Range                `json:"voltage"`
	Current    Range                `json:"current"`
	Resistance Range                `json:"resistance"`
	Power      Range                `json:"power"`
	Type       circuit.ExerciseType `json:"exerciseType"`

	// Decimals is the number of decimal places kept after rounding a
	// sampled value. 0 yields whole units.
	Decimals int `json:"decimals"`
}

// DefaultConfig returns the stock ranges with whole-unit values.
func DefaultConfig() Config {
	return Config{
		Voltage:    Range{Min: defaultVoltageMin, Max: defaultVoltageMax},
		Current:    Range{Min: defaultCurrentMin, Max: defaultCurrentMax},
		Resistance: Range{Min: defaultResistanceMin, Max: defaultResistanceMax},
		Power:      Range{Min: defaultPowerMin, Max: defaultPowerMax},
		Type:       circuit.OhmsLaw,
		Decimals:   0,
	}
}

// SetVoltageRange replaces the voltage range.
func (c Config) SetVoltageRange(minValue, maxValue float64) (Config, error) {
	r, err := NewRange(minValue, maxValue)
	if err != nil {
		return c, fmt.Errorf("voltage range: %w", err)
	}
	c.Voltage = r
	return c, nil
}

// SetCurrentRange replaces the current range.
func (c Config) SetCurrentRange(minValue, maxValue float64) (Config, error) {
	r, err := NewRange(minValue, maxValue)
	if err != nil {
		return c, fmt.Errorf("current range: %w", err)
	}
	c.Current = r
	return c, nil
}

// SetResistanceRange replaces the resistance range.
func (c Config) SetResistanceRange(minValue, maxValue float64) (Config, error) {
	r, err := NewRange(minValue, maxValue)
	if err != nil {
		return c, fmt.Errorf("resistance range: %w", err)
	}
	c.Resistance = r
	return c, nil
}

// SetPowerRange replaces the power range.
func (c Config) SetPowerRange(minValue, maxValue float64) (Config, error) {
	r, err := NewRange(minValue, maxValue)
	if err != nil {
		return c, fmt.Errorf("power range: %w", err)
	}
	c.Power = r
	return c, nil
}

// SetType fixes the exercise family.
func (c Config) SetType(t circuit.ExerciseType) Config {
	c.Type = t
	return c
}

// SetDecimals sets how many decimal places sampled values keep.
func (c Config) SetDecimals(n int) (Config, error) {
	if n < 0 || n > MaxDecimals {
		return c, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDecimals, n, MaxDecimals)
	}
	c.Decimals = n
	return c, nil
}

// Validate checks every range, the rounding precision and the type.
func (c Config) Validate() error {
	var err error
	if _, err = c.SetVoltageRange(c.Voltage.Min, c.Voltage.Max); err != nil {
		return err
	}
	if _, err = c.SetCurrentRange(c.Current.Min, c.Current.Max); err != nil {
		return err
	}
	if _, err = c.SetResistanceRange(c.Resistance.Min, c.Resistance.Max); err != nil {
		return err
	}
	if _, err = c.SetPowerRange(c.Power.Min, c.Power.Max); err != nil {
		return err
	}
	if _, err = c.SetDecimals(c.Decimals); err != nil {
		return err
	}
	if !c.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidExerciseType, c.Type)
	}
	return nil
}

// rangeOf returns the configured range for v.
func (c Config) rangeOf(v circuit.Variable) Range {
	switch v {
	case circuit.Voltage:
		return c.Voltage
	case circuit.Current:
		return c.Current
	case circuit.Resistance:
		return c.Resistance
	default:
		return c.Power
	}
}
