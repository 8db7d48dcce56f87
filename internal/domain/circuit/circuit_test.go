package circuit_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/puimuri/trainer/internal/domain/circuit"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVariable(t *testing.T) {
	Convey("Given the declared variables", t, func() {
		all := []circuit.Variable{circuit.Voltage, circuit.Current, circuit.Resistance, circuit.Power}

		Convey("Then each has a name, a symbol and a unit", func() {
			expected := []struct {
				name, symbol string
				unit         circuit.Unit
			}{
				{"Voltage", "U", circuit.Volt},
				{"Current", "I", circuit.Ampere},
				{"Resistance", "R", circuit.Ohm},
				{"Power", "P", circuit.Watt},
			}
			for i, v := range all {
				So(v.Valid(), ShouldBeTrue)
				So(v.String(), ShouldEqual, expected[i].name)
				So(v.Symbol(), ShouldEqual, expected[i].symbol)
				So(circuit.UnitOf(v), ShouldEqual, expected[i].unit)
			}
		})

		Convey("And the zero value is not a variable", func() {
			var zero circuit.Variable
			So(zero.Valid(), ShouldBeFalse)
			So(circuit.UnitOf(zero), ShouldEqual, circuit.Unit(0))
			_, err := json.Marshal(zero)
			So(err, ShouldNotBeNil)
		})

		Convey("When encoding to JSON", func() {
			data, err := json.Marshal(all)

			Convey("Then names are used", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `["Voltage","Current","Resistance","Power"]`)
			})
		})

		Convey("When decoding an unknown name", func() {
			var v circuit.Variable
			err := json.Unmarshal([]byte(`"Flux"`), &v)

			Convey("Then it should fail with ErrUnknownVariable", func() {
				So(errors.Is(err, circuit.ErrUnknownVariable), ShouldBeTrue)
			})
		})

		Convey("When decoding a number instead of a name", func() {
			var v circuit.Variable
			err := json.Unmarshal([]byte(`1`), &v)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestUnit(t *testing.T) {
	Convey("Given the declared units", t, func() {
		Convey("Then symbols match the SI signs", func() {
			So(circuit.Volt.Symbol(), ShouldEqual, "V")
			So(circuit.Ampere.Symbol(), ShouldEqual, "A")
			So(circuit.Ohm.Symbol(), ShouldEqual, "Ω")
			So(circuit.Watt.Symbol(), ShouldEqual, "W")
		})

		Convey("When round-tripping through JSON", func() {
			data, err := json.Marshal(circuit.Ohm)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `"Ohm"`)

			var u circuit.Unit
			So(json.Unmarshal(data, &u), ShouldBeNil)
			So(u, ShouldEqual, circuit.Ohm)
		})

		Convey("When decoding an unknown unit", func() {
			var u circuit.Unit
			err := json.Unmarshal([]byte(`"Tesla"`), &u)
			So(errors.Is(err, circuit.ErrUnknownUnit), ShouldBeTrue)
		})
	})
}

func TestExerciseType(t *testing.T) {
	Convey("Given the exercise types", t, func() {
		types := circuit.ExerciseTypes()

		Convey("Then there are three in declaration order", func() {
			So(types, ShouldResemble, []circuit.ExerciseType{circuit.OhmsLaw, circuit.PowerLaw, circuit.Combined})
		})

		Convey("And the power family is named Power on the wire", func() {
			data, err := json.Marshal(circuit.PowerLaw)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `"Power"`)
		})

		Convey("When parsing names", func() {
			for _, typ := range types {
				parsed, err := circuit.ParseExerciseType(typ.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, typ)
			}
		})

		Convey("When parsing an unknown name", func() {
			_, err := circuit.ParseExerciseType("Kirchhoff")
			So(errors.Is(err, circuit.ErrUnknownExerciseType), ShouldBeTrue)
		})
	})
}
