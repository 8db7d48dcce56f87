// Package drill exercises a running trainer end to end: it fetches
// exercises, solves them locally and checks the trainer's grading.
package drill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/puimuri/trainer/internal/domain/exercise"
	"github.com/puimuri/trainer/pkg/logger"
)

type outcome int

const (
	outcomeAccepted outcome = iota + 1
	outcomeRejected
	outcomeMismatch
	outcomeFailure
)

// tally collects round outcomes from concurrent workers.
type tally struct {
	mu    sync.Mutex
	stats *Stats
}

func (t *tally) add(exerciseType string, o outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Rounds++
	if exerciseType != "" {
		t.stats.ByType[exerciseType]++
	}
	switch o {
	case outcomeAccepted:
		t.stats.Accepted++
	case outcomeRejected:
		t.stats.Rejected++
	case outcomeMismatch:
		t.stats.Mismatches++
	case outcomeFailure:
		t.stats.Failures++
	}
}

// Validate checks that cfg can drive a run.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: url must not be empty", ErrInvalidConfig)
	case c.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	case c.WrongEvery < 0:
		return fmt.Errorf("%w: wrong-every must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Run executes a complete drill against cfg.BaseURL. The returned Stats are
// populated even when an error is returned after the rounds ran.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Named("drill")
	stats := &Stats{
		RunID:     uuid.NewString(),
		ByType:    make(map[string]int),
		StartTime: time.Now(),
	}
	log.Info(ctx, "starting drill",
		logger.String("run_id", stats.RunID),
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
		logger.Int("wrongEvery", cfg.WrongEvery))

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	t := &tally{stats: stats}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Rounds; i++ {
		if gctx.Err() != nil {
			break
		}
		round := i + 1
		g.Go(func() error {
			exerciseType, o := playRound(gctx, log, client, cfg, round)
			t.add(exerciseType, o)
			return nil
		})
	}
	_ = g.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if cfg.OutputFile != "" {
		if err := WriteReport(cfg.OutputFile, stats); err != nil {
			log.Warn(ctx, "failed to write report", logger.Error(err))
		} else {
			log.Info(ctx, "report saved to file", logger.String("filename", cfg.OutputFile))
		}
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if stats.Mismatches > 0 || stats.Failures > 0 {
		return stats, fmt.Errorf("%w: %d mismatches, %d failures", ErrVerification, stats.Mismatches, stats.Failures)
	}
	return stats, nil
}

// playRound fetches one exercise, answers it and checks the verdict.
func playRound(ctx context.Context, log logger.Logger, client *Client, cfg *Config, round int) (string, outcome) {
	ex, err := client.FetchExercise(ctx)
	if err != nil {
		log.Warn(ctx, "fetch failed", logger.Int("round", round), logger.Error(err))
		return "", outcomeFailure
	}
	exerciseType := ex.Type.String()

	local, err := exercise.Solve(ex)
	if err != nil {
		log.Warn(ctx, "exercise could not be solved locally", logger.Int("round", round), logger.Error(err))
		return exerciseType, outcomeFailure
	}

	wrong := cfg.WrongEvery > 0 && round%cfg.WrongEvery == 0
	answer := local.Answer
	if wrong {
		answer += wrongOffset
	}

	status, remote, err := client.SubmitAnswer(ctx, ex, answer)
	if err != nil {
		log.Warn(ctx, "submit failed", logger.Int("round", round), logger.Error(err))
		return exerciseType, outcomeFailure
	}

	want := http.StatusOK
	if wrong {
		want = http.StatusPreconditionFailed
	}
	agrees := exercise.CheckAnswer(local.Answer, remote.Answer, exercise.DefaultGradeTolerance)
	if status != want || !agrees || remote.Unit != local.Unit {
		log.Warn(ctx, "verdict mismatch",
			logger.Int("round", round),
			logger.String("exercise_type", exerciseType),
			logger.Int("status", status),
			logger.Int("expected_status", want),
			logger.Float64("local_answer", local.Answer),
			logger.Float64("remote_answer", remote.Answer))
		return exerciseType, outcomeMismatch
	}

	if cfg.Verbose {
		log.Info(ctx, "round complete",
			logger.Int("round", round),
			logger.String("exercise_type", exerciseType),
			logger.String("missing", ex.Missing.String()),
			logger.Float64("answer", answer),
			logger.Int("status", status))
	}
	if wrong {
		return exerciseType, outcomeRejected
	}
	return exerciseType, outcomeAccepted
}

// WriteReport saves stats as indented JSON, creating parent directories.
func WriteReport(filename string, stats *Stats) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// displayFinalStats logs the final drill statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var roundsPerSecond float64
	if stats.Duration > 0 {
		roundsPerSecond = float64(stats.Rounds) / stats.Duration.Seconds()
	}

	fields := []logger.Field{
		logger.String("run_id", stats.RunID),
		logger.Int("rounds", stats.Rounds),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatches", stats.Mismatches),
		logger.Int("failures", stats.Failures),
		logger.Duration("duration", stats.Duration),
		logger.Float64("roundsPerSecond", roundsPerSecond),
	}
	for name, n := range stats.ByType {
		fields = append(fields, logger.Int("type_"+name, n))
	}
	log.Info(ctx, "final statistics", fields...)
}
