package drill

import (
	"time"
)

// Config holds configuration for a drill run.
type Config struct {
	BaseURL    string        // Base URL of the trainer
	Rounds     int           // Number of exercises to fetch and answer
	Workers    int           // Number of rounds in flight at once
	Timeout    time.Duration // HTTP request timeout
	WrongEvery int           // Every Nth round submits a wrong answer; 0 disables
	OutputFile string        // Report file; empty skips writing
	Verbose    bool          // Log every round
}

// Stats holds the outcome of a drill run.
type Stats struct {
	RunID      string         `json:"run_id"`
	Rounds     int            `json:"rounds"`
	Accepted   int            `json:"accepted"`
	Rejected   int            `json:"rejected"`
	Mismatches int            `json:"mismatches"`
	Failures   int            `json:"failures"`
	ByType     map[string]int `json:"by_type"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Duration   time.Duration  `json:"duration_ns"`
}
