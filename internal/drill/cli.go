package drill

import (
	"flag"
	"io"
	"runtime"
)

const usage = `PUImURI drill
=============

Fetches exercises from a running trainer, solves them locally and checks
that the trainer grades each answer the same way.

Usage:
  go run ./cmd/drill [options]

Options:
  -url string
        Base URL of the trainer (default "http://127.0.0.1:8000")
  -rounds int
        Number of exercises to answer (default 100)
  -workers int
        Number of concurrent rounds (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -wrong-every int
        Submit a wrong answer every Nth round, 0 to disable (default 5)
  -output string
        Write the final report as JSON to this file
  -verbose
        Log every round
  -help
        Show this help message

Examples:
  # Drill a local trainer with default settings
  go run ./cmd/drill

  # Answer 1000 exercises with 16 workers and keep the report
  go run ./cmd/drill -rounds 1000 -workers 16 -output drill.json
`

// ShowHelp prints usage information for the drill tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, usage)
}

// ParseFlags parses command line args into a Config. help reports whether
// -help was given.
func ParseFlags(args []string, output io.Writer) (cfg *Config, help bool, err error) {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { ShowHelp(output) }

	cfg = &Config{}
	fs.StringVar(&cfg.BaseURL, "url", DefaultBaseURL, "Base URL of the trainer")
	fs.IntVar(&cfg.Rounds, "rounds", DefaultRounds, "Number of exercises to answer")
	fs.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*DefaultWorkers, "Number of concurrent rounds")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "HTTP request timeout")
	fs.IntVar(&cfg.WrongEvery, "wrong-every", DefaultWrongEvery, "Submit a wrong answer every Nth round")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the final report as JSON to this file")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log every round")
	fs.BoolVar(&help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return nil, false, err
	}
	return cfg, help, nil
}
