// Package exercise holds the exercise model and the solver that derives
// answers for it.
package exercise

import (
	"encoding/json"
	"fmt"

	"github.com/puimuri/trainer/internal/domain/circuit"
)

// Given is a known quantity of an exercise. On the wire it is a
// two-element array: ["Voltage", 12].
type Given struct {
	Variable circuit.Variable
	Value    float64
}

// MarshalJSON encodes g as a [name, value] pair.
func (g Given) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{g.Variable, g.Value})
}

// UnmarshalJSON decodes a [name, value] pair.
func (g *Given) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedGiven, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: expected 2 elements, got %d", ErrMalformedGiven, len(pair))
	}
	if err := json.Unmarshal(pair[0], &g.Variable); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &g.Value); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedGiven, err)
	}
	return nil
}

// Exercise is a problem statement: one unknown and two known quantities.
type Exercise struct {
	Type    circuit.ExerciseType `json:"exerciseType"`
	Missing circuit.Variable     `json:"missingVariable"`
	Given   []Given              `json:"givenVariables"`

	// CorrectAnswer is computed by the generating side. It never crosses
	// the wire in either direction.
	CorrectAnswer *float64 `json:"-"`
}

// Value returns the given value for v, matching the tag exactly.
func (e Exercise) Value(v circuit.Variable) (float64, bool) {
	for _, g := range e.Given {
		if g.Variable == v {
			return g.Value, true
		}
	}
	return 0, false
}

// WithoutAnswer returns a copy of e with the hidden answer stripped, as a
// client would echo it back.
func (e Exercise) WithoutAnswer() Exercise {
	e.CorrectAnswer = nil
	e.Given = append([]Given(nil), e.Given...)
	return e
}

// Solution is the answer to an exercise together with its derivation.
type Solution struct {
	Steps  []string     `json:"steps"`
	Answer float64      `json:"answer"`
	Unit   circuit.Unit `json:"unit"`
}
