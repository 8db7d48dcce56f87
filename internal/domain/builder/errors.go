package builder

import "errors"

// Sentinel kinds for builder errors.
var (
	ErrMinLargerThanMax    = errors.New("minimum value is larger than maximum value")
	ErrInvalidDecimals     = errors.New("invalid decimals")
	ErrInvalidExerciseType = errors.New("invalid exercise type")
	ErrBuild               = errors.New("build exercise failed")
)
