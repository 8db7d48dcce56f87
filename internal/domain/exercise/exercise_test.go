package exercise_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/puimuri/trainer/internal/domain/circuit"
	"github.com/puimuri/trainer/internal/domain/exercise"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExerciseJSON(t *testing.T) {
	Convey("Given a generated exercise with a hidden answer", t, func() {
		correct := 6.0
		ex := exercise.Exercise{
			Type:          circuit.OhmsLaw,
			Missing:       circuit.Resistance,
			Given:         given(circuit.Voltage, 12.0, circuit.Current, 2.0),
			CorrectAnswer: &correct,
		}

		Convey("When encoding it for the client", func() {
			data, err := json.Marshal(ex)

			Convey("Then camelCase keys are used and the answer is omitted", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual,
					`{"exerciseType":"OhmsLaw","missingVariable":"Resistance","givenVariables":[["Voltage",12],["Current",2]]}`)
				So(string(data), ShouldNotContainSubstring, "correctAnswer")
			})

			Convey("And decoding it solves to the same answer", func() {
				var decoded exercise.Exercise
				So(json.Unmarshal(data, &decoded), ShouldBeNil)
				So(decoded.CorrectAnswer, ShouldBeNil)
				So(decoded.Given, ShouldResemble, ex.Given)

				want, err := exercise.Solve(ex)
				So(err, ShouldBeNil)
				got, err := exercise.Solve(decoded)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, want)
			})
		})
	})

	Convey("Given a client body that tries to supply the answer", t, func() {
		body := `{"exerciseType":"Combined","missingVariable":"Current","givenVariables":[["Power",100],["Resistance",25]],"correctAnswer":99}`

		Convey("When decoding", func() {
			var ex exercise.Exercise
			err := json.Unmarshal([]byte(body), &ex)

			Convey("Then the answer is ignored", func() {
				So(err, ShouldBeNil)
				So(ex.CorrectAnswer, ShouldBeNil)
				So(ex.Type, ShouldEqual, circuit.Combined)
				So(ex.Missing, ShouldEqual, circuit.Current)
			})
		})
	})

	Convey("Given malformed given variables", t, func() {
		Convey("When a pair has one element", func() {
			var ex exercise.Exercise
			err := json.Unmarshal([]byte(`{"givenVariables":[["Voltage"]]}`), &ex)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "malformed given variable")
		})

		Convey("When the tag is unknown", func() {
			var g exercise.Given
			err := json.Unmarshal([]byte(`["Volts",1]`), &g)
			So(errors.Is(err, circuit.ErrUnknownVariable), ShouldBeTrue)
		})

		Convey("When the value is not a number", func() {
			var g exercise.Given
			err := json.Unmarshal([]byte(`["Voltage","12"]`), &g)
			So(errors.Is(err, exercise.ErrMalformedGiven), ShouldBeTrue)
		})
	})
}

func TestSolutionJSON(t *testing.T) {
	Convey("Given a solution", t, func() {
		solution := exercise.Solution{
			Steps:  []string{"R = U / I", "R = 12V / 2A", "R = 6Ω"},
			Answer: 6,
			Unit:   circuit.Ohm,
		}

		Convey("Then it encodes with steps, answer and unit", func() {
			data, err := json.Marshal(solution)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"steps":["R = U / I","R = 12V / 2A","R = 6Ω"],"answer":6,"unit":"Ohm"}`)
		})
	})
}

func TestExerciseValue(t *testing.T) {
	Convey("Given an exercise", t, func() {
		ex := exercise.Exercise{Given: given(circuit.Power, 5.0)}

		Convey("Then present values are found by tag", func() {
			v, ok := ex.Value(circuit.Power)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 5.0)
		})

		Convey("And absent values are reported", func() {
			_, ok := ex.Value(circuit.Voltage)
			So(ok, ShouldBeFalse)
		})
	})
}
