package exercise

import "math"

// Tolerances used when comparing a submitted answer.
const (
	// DefaultPrecision applies to CheckAnswer when no precision is given.
	DefaultPrecision = 0.1
	// DefaultGradeTolerance applies to Grade when no tolerance is given.
	DefaultGradeTolerance = 0.01
)

// CheckAnswer reports whether submitted lies strictly within precision of
// correct. A non-positive precision selects DefaultPrecision.
func CheckAnswer(correct, submitted, precision float64) bool {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return math.Abs(submitted-correct) < precision
}

// CheckAnswer compares submitted against the hidden correct answer.
func (e Exercise) CheckAnswer(submitted, precision float64) (bool, error) {
	if e.CorrectAnswer == nil {
		return false, ErrNoCorrectAnswer
	}
	return CheckAnswer(*e.CorrectAnswer, submitted, precision), nil
}

// Grade solves ex and reports whether submitted is within tolerance of the
// derived answer. The solution is returned in both outcomes so the caller
// can show the derivation. A non-positive tolerance selects
// DefaultGradeTolerance.
func Grade(ex Exercise, submitted, tolerance float64) (Solution, bool, error) {
	if tolerance <= 0 {
		tolerance = DefaultGradeTolerance
	}
	solution, err := Solve(ex)
	if err != nil {
		return solution, false, err
	}
	return solution, math.Abs(submitted-solution.Answer) < tolerance, nil
}
