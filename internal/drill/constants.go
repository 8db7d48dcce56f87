package drill

import "time"

// Default flag values.
const (
	DefaultBaseURL    = "http://127.0.0.1:8000"
	DefaultRounds     = 100
	DefaultTimeout    = 10 * time.Second
	DefaultWrongEvery = 5
	DefaultWorkers    = 2 // multiplier for runtime.NumCPU()
)

const (
	equationPath    = "/api/equation"
	answerPath      = "/api/equation/answer/"
	healthPath      = "/healthz"
	requestIDHeader = "X-Request-ID"

	// wrongOffset is added to the solved answer on deliberately wrong rounds.
	wrongOffset = 1.0

	maxResponseBytes    = 1 << 16
	directoryPermission = 0o750
	filePermission      = 0o600
)
