package exercise_test

import (
	"errors"
	"testing"

	"github.com/puimuri/trainer/internal/domain/circuit"
	"github.com/puimuri/trainer/internal/domain/exercise"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCheckAnswer(t *testing.T) {
	Convey("Given a correct answer of 6.0", t, func() {
		correct := 6.0

		Convey("When no precision is given", func() {
			Convey("Then answers within 0.1 are accepted", func() {
				So(exercise.CheckAnswer(correct, 6.05, 0), ShouldBeTrue)
				So(exercise.CheckAnswer(correct, 5.95, 0), ShouldBeTrue)
				So(exercise.CheckAnswer(correct, 6.15, 0), ShouldBeFalse)
			})
		})

		Convey("When precision 0.1 is given", func() {
			Convey("Then 6.05 passes and 6.15 fails", func() {
				So(exercise.CheckAnswer(correct, 6.05, 0.1), ShouldBeTrue)
				So(exercise.CheckAnswer(correct, 6.15, 0.1), ShouldBeFalse)
			})
		})

		Convey("When a tight precision is given", func() {
			Convey("Then the bound is strict", func() {
				So(exercise.CheckAnswer(correct, 6.0, 0.001), ShouldBeTrue)
				So(exercise.CheckAnswer(correct, 6.005, 0.001), ShouldBeFalse)
			})
		})
	})

	Convey("Given an exercise with a hidden answer", t, func() {
		correct := 6.0
		ex := exercise.Exercise{
			Type:          circuit.OhmsLaw,
			Missing:       circuit.Resistance,
			Given:         given(circuit.Voltage, 12.0, circuit.Current, 2.0),
			CorrectAnswer: &correct,
		}

		Convey("Then the method compares against it", func() {
			ok, err := ex.CheckAnswer(6.05, 0)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("When the answer is stripped", func() {
			_, err := ex.WithoutAnswer().CheckAnswer(6.0, 0)

			Convey("Then there is nothing to compare with", func() {
				So(errors.Is(err, exercise.ErrNoCorrectAnswer), ShouldBeTrue)
			})
		})
	})
}

func TestGrade(t *testing.T) {
	Convey("Given a client-echoed exercise", t, func() {
		ex := exercise.Exercise{
			Type:    circuit.PowerLaw,
			Missing: circuit.Power,
			Given:   given(circuit.Voltage, 10.0, circuit.Current, 2.0),
		}

		Convey("When the submitted answer is within 0.01", func() {
			solution, ok, err := exercise.Grade(ex, 20.005, 0)

			Convey("Then it is accepted with the derivation", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(solution.Answer, ShouldEqual, 20.0)
				So(solution.Steps, ShouldHaveLength, 3)
			})
		})

		Convey("When the submitted answer is off", func() {
			solution, ok, err := exercise.Grade(ex, 20.05, 0)

			Convey("Then it is rejected but the solution is still returned", func() {
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
				So(solution.Unit, ShouldEqual, circuit.Watt)
			})
		})

		Convey("When a looser tolerance is configured", func() {
			_, ok, err := exercise.Grade(ex, 20.05, 0.1)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a tampered exercise", t, func() {
		ex := exercise.Exercise{Type: circuit.PowerLaw, Missing: circuit.Power}

		Convey("Then grading surfaces the solve error", func() {
			_, ok, err := exercise.Grade(ex, 1, 0)
			So(ok, ShouldBeFalse)
			So(errors.Is(err, exercise.ErrMissingVariable), ShouldBeTrue)
		})
	})
}
