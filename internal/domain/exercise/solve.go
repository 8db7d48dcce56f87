package exercise

import (
	"fmt"
	"math"
	"strconv"

	"github.com/puimuri/trainer/internal/domain/circuit"
)

type formulaKey struct {
	exerciseType circuit.ExerciseType
	missing      circuit.Variable
}

// formula is one closed-form variant. operands are listed in the order
// they appear in template and eval; requires is the order the inputs are
// presented to the student.
type formula struct {
	requires [2]circuit.Variable
	operands [2]circuit.Variable
	template string
	eval     func(x, y float64) float64
}

func mul(x, y float64) float64 { return x * y }
func div(x, y float64) float64 { return x / y }
func squareDiv(x, y float64) float64 { return (x * x) / y }
func sqrtOfDiv(x, y float64) float64 { return math.Sqrt(x / y) }
func sqrtOfMul(x, y float64) float64 { return math.Sqrt(x * y) }
func vars(a, b circuit.Variable) [2]circuit.Variable { return [2]circuit.Variable{a, b} }

var formulas = map[formulaKey]formula{
	{circuit.OhmsLaw, circuit.Voltage}: {
		requires: vars(circuit.Resistance, circuit.Current),
		operands: vars(circuit.Resistance, circuit.Current),
		template: "%s * %s",
		eval:     mul,
	},
	{circuit.OhmsLaw, circuit.Current}: {
		requires: vars(circuit.Voltage, circuit.Resistance),
		operands: vars(circuit.Voltage, circuit.Resistance),
		template: "%s / %s",
		eval:     div,
	},
	{circuit.OhmsLaw, circuit.Resistance}: {
		requires: vars(circuit.Voltage, circuit.Current),
		operands: vars(circuit.Voltage, circuit.Current),
		template: "%s / %s",
		eval:     div,
	},
	{circuit.PowerLaw, circuit.Power}: {
		requires: vars(circuit.Voltage, circuit.Current),
		operands: vars(circuit.Voltage, circuit.Current),
		template: "%s * %s",
		eval:     mul,
	},
	{circuit.PowerLaw, circuit.Voltage}: {
		requires: vars(circuit.Power, circuit.Current),
		operands: vars(circuit.Power, circuit.Current),
		template: "%s / %s",
		eval:     div,
	},
	{circuit.PowerLaw, circuit.Current}: {
		requires: vars(circuit.Power, circuit.Voltage),
		operands: vars(circuit.Power, circuit.Voltage),
		template: "%s / %s",
		eval:     div,
	},
	{circuit.Combined, circuit.Power}: {
		requires: vars(circuit.Voltage, circuit.Resistance),
		operands: vars(circuit.Voltage, circuit.Resistance),
		template: "%s^2 / %s",
		eval:     squareDiv,
	},
	{circuit.Combined, circuit.Current}: {
		requires: vars(circuit.Power, circuit.Resistance),
		operands: vars(circuit.Power, circuit.Resistance),
		template: "√(%s / %s)",
		eval:     sqrtOfDiv,
	},
	{circuit.Combined, circuit.Voltage}: {
		requires: vars(circuit.Power, circuit.Resistance),
		operands: vars(circuit.Power, circuit.Resistance),
		template: "√(%s * %s)",
		eval:     sqrtOfMul,
	},
	{circuit.Combined, circuit.Resistance}: {
		requires: vars(circuit.Power, circuit.Voltage),
		operands: vars(circuit.Voltage, circuit.Power),
		template: "%s^2 / %s",
		eval:     squareDiv,
	},
}

// Requirements returns the two known quantities needed to solve for
// missing in an exercise of type t, in presentation order. ok is false
// when the combination has no formula.
func Requirements(t circuit.ExerciseType, missing circuit.Variable) (required [2]circuit.Variable, ok bool) {
	f, ok := formulas[formulaKey{t, missing}]
	if !ok {
		return required, false
	}
	return f.requires, true
}

// Solve derives the answer to ex and the steps leading to it.
//
// When ex carries a correct answer, the derived answer must match it
// exactly; otherwise a *ResolveError holding the derived solution is
// returned. Division by a zero input is not guarded and yields Inf or NaN.
func Solve(ex Exercise) (Solution, error) {
	f, ok := formulas[formulaKey{ex.Type, ex.Missing}]
	if !ok {
		return Solution{}, fmt.Errorf("%w: %s has no formula for %s", ErrUnsupportedExercise, ex.Type, ex.Missing)
	}

	values := make(map[circuit.Variable]float64, len(f.requires))
	for _, v := range f.requires {
		val, ok := ex.Value(v)
		if !ok {
			return Solution{}, &MissingVariableError{Variable: v}
		}
		values[v] = val
	}

	x, y := values[f.operands[0]], values[f.operands[1]]
	answer := f.eval(x, y)
	unit := circuit.UnitOf(ex.Missing)
	symbol := ex.Missing.Symbol()

	solution := Solution{
		Steps: []string{
			symbol + " = " + fmt.Sprintf(f.template, f.operands[0].Symbol(), f.operands[1].Symbol()),
			symbol + " = " + fmt.Sprintf(f.template, quantity(x, f.operands[0]), quantity(y, f.operands[1])),
			symbol + " = " + formatNumber(answer) + unit.Symbol(),
		},
		Answer: answer,
		Unit:   unit,
	}

	if ex.CorrectAnswer != nil && !sameFloat(answer, *ex.CorrectAnswer) {
		return solution, &ResolveError{Solution: solution, Expected: *ex.CorrectAnswer}
	}
	return solution, nil
}

func quantity(value float64, v circuit.Variable) string {
	return formatNumber(value) + circuit.UnitOf(v).Symbol()
}

// formatNumber prints the shortest representation that round-trips.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
