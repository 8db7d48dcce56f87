package circuit

import "errors"

// Sentinel kinds for decoding errors.
var (
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrUnknownUnit         = errors.New("unknown unit")
	ErrUnknownExerciseType = errors.New("unknown exercise type")
)
