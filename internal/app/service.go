// Package service wires the exercise core to the HTTP API: it generates
// exercises, grades submitted answers and keeps in-memory statistics.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puimuri/trainer/internal/domain/builder"
	"github.com/puimuri/trainer/internal/domain/exercise"
	"github.com/puimuri/trainer/pkg/logger"
	"github.com/puimuri/trainer/pkg/metrics"
)

// Error kinds used in logs and metric labels.
const (
	KindMissingVariable     = "missing_variable"
	KindUnsupportedExercise = "unsupported_exercise"
	KindNonFiniteAnswer     = "non_finite_answer"
	KindResolve             = "resolve"
	KindBuild               = "build"
)

// GradeResult is the outcome of grading one submitted answer.
type GradeResult struct {
	Solution exercise.Solution
	Correct  bool
}

// Service generates and grades exercises. It is safe for concurrent use.
type Service struct {
	// seedMu guards seeds, which hands every request its own generator.
	seedMu sync.Mutex
	seeds  *rand.Rand

	cfg       builder.Config
	tolerance float64
	seed      int64
	seeded    bool

	logger  logger.Logger
	metrics *metrics.Manager

	startedAt time.Time
	generated atomic.Int64
	graded    atomic.Int64
	correct   atomic.Int64
	failures  atomic.Int64
}

// New constructs a Service. Without WithSeed, generators are seeded from
// the clock.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:       builder.DefaultConfig(),
		tolerance: exercise.DefaultGradeTolerance,
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("trainer")
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	seed := s.seed
	if !s.seeded {
		seed = time.Now().UnixNano()
	}
	s.seeds = builder.NewRand(seed)
	return s
}

// nextRand derives an independent generator for one request.
func (s *Service) nextRand() *rand.Rand {
	s.seedMu.Lock()
	seed := s.seeds.Int63()
	s.seedMu.Unlock()
	return builder.NewRand(seed)
}

// NewExercise builds a random exercise and verifies that solving it
// reproduces the answer it was built with. The returned exercise still
// carries its correct answer; callers strip it before sending it out.
func (s *Service) NewExercise(ctx context.Context) (exercise.Exercise, error) {
	start := time.Now()

	ex, err := builder.BuildWithRandomExerciseType(s.cfg, s.nextRand())
	if err != nil {
		s.recordFailure(ctx, "build exercise failed", KindBuild, err)
		return exercise.Exercise{}, err
	}
	if _, err := exercise.Solve(ex); err != nil {
		s.recordFailure(ctx, "generated exercise failed its self-check", classify(err), err,
			logger.Any("exercise", ex),
		)
		return exercise.Exercise{}, err
	}

	elapsed := time.Since(start)
	s.generated.Add(1)
	s.metrics.RecordExerciseGenerated(ex.Type.String(), ex.Missing.String())
	s.metrics.RecordBuildLatency(float64(elapsed.Microseconds()) / 1000)
	s.logger.Debug(ctx, "exercise generated",
		logger.String("type", ex.Type.String()),
		logger.String("missing", ex.Missing.String()),
		logger.Duration("elapsed", elapsed),
	)
	return ex, nil
}

// Grade solves the exercise as sent by the client and compares answer with
// the derived result. Any hidden answer on ex is ignored; the client's
// copy is never trusted.
func (s *Service) Grade(ctx context.Context, answer float64, ex exercise.Exercise) (GradeResult, error) {
	ex = ex.WithoutAnswer()

	solution, ok, err := exercise.Grade(ex, answer, s.tolerance)
	if err != nil {
		s.recordFailure(ctx, "grading failed", classify(err), err,
			logger.String("type", ex.Type.String()),
			logger.String("missing", ex.Missing.String()),
		)
		return GradeResult{}, err
	}
	if math.IsInf(solution.Answer, 0) || math.IsNaN(solution.Answer) {
		err := fmt.Errorf("%w: %v", exercise.ErrNonFiniteAnswer, solution.Answer)
		s.recordFailure(ctx, "grading produced a non-finite answer", KindNonFiniteAnswer, err)
		return GradeResult{Solution: solution}, err
	}

	s.graded.Add(1)
	if ok {
		s.correct.Add(1)
	}
	s.metrics.RecordAnswerGraded(ex.Type.String(), ok)
	s.logger.Debug(ctx, "answer graded",
		logger.String("type", ex.Type.String()),
		logger.Float64("submitted", answer),
		logger.Float64("expected", solution.Answer),
		logger.Bool("correct", ok),
	)
	return GradeResult{Solution: solution, Correct: ok}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	graded := s.graded.Load()
	correct := s.correct.Load()

	accuracy := 0.0
	if graded > 0 {
		accuracy = float64(correct) / float64(graded)
	}

	return map[string]interface{}{
		"generated":      s.generated.Load(),
		"graded":         graded,
		"correct":        correct,
		"wrong":          graded - correct,
		"failures":       s.failures.Load(),
		"accuracy":       accuracy,
		"gradeTolerance": s.tolerance,
		"decimals":       s.cfg.Decimals,
		"ranges": map[string]builder.Range{
			"voltage":    s.cfg.Voltage,
			"current":    s.cfg.Current,
			"resistance": s.cfg.Resistance,
			"power":      s.cfg.Power,
		},
		"uptimeSeconds": time.Since(s.startedAt).Seconds(),
		"heapMB":        metrics.HeapMB(),
	}
}

// GradeTolerance returns the tolerance answers are graded with.
func (s *Service) GradeTolerance() float64 {
	return s.tolerance
}

func (s *Service) recordFailure(ctx context.Context, msg, kind string, err error, fields ...logger.Field) {
	s.failures.Add(1)
	s.metrics.RecordSolveError(kind)
	s.metrics.RecordErrorByComponent("app", kind)

	fields = append(fields, logger.String("kind", kind), logger.Error(err))
	if kind == KindResolve || kind == KindBuild {
		s.logger.Error(ctx, msg, fields...)
		return
	}
	s.logger.Warn(ctx, msg, fields...)
}

// classify maps a core error to its kind label.
func classify(err error) string {
	switch {
	case errors.Is(err, exercise.ErrMissingVariable):
		return KindMissingVariable
	case errors.Is(err, exercise.ErrUnsupportedExercise):
		return KindUnsupportedExercise
	case errors.Is(err, exercise.ErrNonFiniteAnswer):
		return KindNonFiniteAnswer
	case errors.Is(err, exercise.ErrResolve):
		return KindResolve
	default:
		return KindBuild
	}
}
