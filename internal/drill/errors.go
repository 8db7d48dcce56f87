package drill

import "errors"

var (
	// ErrInvalidConfig is returned when drill settings are unusable.
	ErrInvalidConfig = errors.New("invalid drill config")
	// ErrUnhealthy is returned when the trainer fails its health check.
	ErrUnhealthy = errors.New("trainer is not healthy")
	// ErrUnexpectedStatus is returned for an HTTP status the drill does not expect.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrVerification is returned when any round disagreed with the trainer
	// or could not complete.
	ErrVerification = errors.New("drill verification failed")
)
