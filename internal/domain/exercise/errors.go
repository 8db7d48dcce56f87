package exercise

import (
	"errors"
	"fmt"

	"github.com/puimuri/trainer/internal/domain/circuit"
)

// Sentinel error kinds. Typed errors below match these through errors.Is.
var (
	ErrUnsupportedExercise = errors.New("unsupported exercise")
	ErrMissingVariable     = errors.New("variable is missing in definitions")
	ErrResolve             = errors.New("exercise solution does not match with solved solution")
	ErrNoCorrectAnswer     = errors.New("exercise has no correct answer")
	ErrMalformedGiven      = errors.New("malformed given variable")
	ErrNonFiniteAnswer     = errors.New("answer is not a finite number")
)

// MissingVariableError reports a required quantity absent from an exercise.
type MissingVariableError struct {
	Variable circuit.Variable
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingVariable, e.Variable)
}

// Is matches ErrMissingVariable.
func (e *MissingVariableError) Is(target error) bool {
	return target == ErrMissingVariable
}

// ResolveError reports that a recomputed answer disagrees with the answer
// stored in a generated exercise. It carries the recomputed solution.
type ResolveError struct {
	Solution Solution
	Expected float64
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: solved %v != expected %v", ErrResolve, e.Solution.Answer, e.Expected)
}

// Is matches ErrResolve.
func (e *ResolveError) Is(target error) bool {
	return target == ErrResolve
}
