// Package circuit defines the physical quantities, units and exercise
// families the trainer works with.
package circuit

import (
	"encoding/json"
	"fmt"
)

// Variable identifies a physical quantity in an equation.
type Variable int

// Supported quantities. The zero value is not a valid quantity.
const (
	Voltage Variable = iota + 1
	Current
	Resistance
	Power
)

var variableNames = map[Variable]string{
	Voltage:    "Voltage",
	Current:    "Current",
	Resistance: "Resistance",
	Power:      "Power",
}

var variableSymbols = map[Variable]string{
	Voltage:    "U",
	Current:    "I",
	Resistance: "R",
	Power:      "P",
}

// Valid reports whether v is one of the declared quantities.
func (v Variable) Valid() bool {
	_, ok := variableNames[v]
	return ok
}

func (v Variable) String() string {
	if name, ok := variableNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Variable(%d)", int(v))
}

// Symbol returns the letter used for v in formulas (U, I, R, P).
func (v Variable) Symbol() string {
	return variableSymbols[v]
}

// MarshalJSON encodes v by name.
func (v Variable) MarshalJSON() ([]byte, error) {
	name, ok := variableNames[v]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariable, int(v))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a quantity name.
func (v *Variable) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownVariable, err)
	}
	parsed, err := ParseVariable(name)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariable maps a name such as "Voltage" to its Variable.
func ParseVariable(name string) (Variable, error) {
	for v, n := range variableNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
}

// Unit is the unit a solved answer is expressed in.
type Unit int

// Supported units.
const (
	Volt Unit = iota + 1
	Ampere
	Ohm
	Watt
)

var unitNames = map[Unit]string{
	Volt:   "Volt",
	Ampere: "Ampere",
	Ohm:    "Ohm",
	Watt:   "Watt",
}

var unitSymbols = map[Unit]string{
	Volt:   "V",
	Ampere: "A",
	Ohm:    "Ω",
	Watt:   "W",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Symbol returns the short unit sign (V, A, Ω, W).
func (u Unit) Symbol() string {
	return unitSymbols[u]
}

// MarshalJSON encodes u by name.
func (u Unit) MarshalJSON() ([]byte, error) {
	name, ok := unitNames[u]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, int(u))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a unit name.
func (u *Unit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownUnit, err)
	}
	for unit, n := range unitNames {
		if n == name {
			*u = unit
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

// UnitOf returns the unit a quantity is measured in.
func UnitOf(v Variable) Unit {
	switch v {
	case Voltage:
		return Volt
	case Current:
		return Ampere
	case Resistance:
		return Ohm
	case Power:
		return Watt
	default:
		return 0
	}
}

// ExerciseType selects the family of formulas an exercise uses.
type ExerciseType int

// Exercise families.
const (
	OhmsLaw ExerciseType = iota + 1
	PowerLaw
	Combined
)

var exerciseTypeNames = map[ExerciseType]string{
	OhmsLaw:  "OhmsLaw",
	PowerLaw: "Power",
	Combined: "Combined",
}

// ExerciseTypes lists every exercise family in declaration order.
func ExerciseTypes() []ExerciseType {
	return []ExerciseType{OhmsLaw, PowerLaw, Combined}
}

// Valid reports whether t is one of the declared families.
func (t ExerciseType) Valid() bool {
	_, ok := exerciseTypeNames[t]
	return ok
}

func (t ExerciseType) String() string {
	if name, ok := exerciseTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ExerciseType(%d)", int(t))
}

// MarshalJSON encodes t by name.
func (t ExerciseType) MarshalJSON() ([]byte, error) {
	name, ok := exerciseTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownExerciseType, int(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes an exercise family name.
func (t *ExerciseType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownExerciseType, err)
	}
	parsed, err := ParseExerciseType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseExerciseType maps a name such as "OhmsLaw" to its ExerciseType.
func ParseExerciseType(name string) (ExerciseType, error) {
	for t, n := range exerciseTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExerciseType, name)
}
