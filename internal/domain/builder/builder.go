package builder

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/puimuri/trainer/internal/domain/circuit"
	"github.com/puimuri/trainer/internal/domain/exercise"
)

// sampleOrder fixes the order values are drawn in, so a seeded generator
// reproduces the same exercise.
var sampleOrder = []circuit.Variable{circuit.Voltage, circuit.Current, circuit.Resistance, circuit.Power}

// candidates lists the unknowns each family may ask for. Combined
// exercises never ask for voltage: their three generated variants are
// P from (U, R), I from (P, R) and R from (P, U).
var candidates = map[circuit.ExerciseType][]circuit.Variable{
	circuit.OhmsLaw:  {circuit.Voltage, circuit.Current, circuit.Resistance},
	circuit.PowerLaw: {circuit.Power, circuit.Voltage, circuit.Current},
	circuit.Combined: {circuit.Power, circuit.Current, circuit.Resistance},
}

// Candidates returns the unknowns an exercise of type t can be built for.
func Candidates(t circuit.ExerciseType) []circuit.Variable {
	return append([]circuit.Variable(nil), candidates[t]...)
}

// NewRand returns a pseudorandom generator for seed. It is not safe for
// concurrent use.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // exercises are not secrets
}

// Build samples a fresh exercise of cfg.Type from rng.
//
// One value is drawn uniformly from each configured range, rounded to
// cfg.Decimals places and clamped back into its range. The unknown is
// chosen uniformly among the family's candidates and the answer is
// derived with the solver and stored as the hidden correct answer.
func Build(cfg Config, rng *rand.Rand) (exercise.Exercise, error) {
	cands, ok := candidates[cfg.Type]
	if !ok {
		return exercise.Exercise{}, fmt.Errorf("%w: %s", ErrInvalidExerciseType, cfg.Type)
	}

	values := make(map[circuit.Variable]float64, len(sampleOrder))
	for _, v := range sampleOrder {
		values[v] = sample(rng, cfg.rangeOf(v), cfg.Decimals)
	}

	missing := cands[rng.Intn(len(cands))]
	required, ok := exercise.Requirements(cfg.Type, missing)
	if !ok {
		return exercise.Exercise{}, fmt.Errorf("%w: no formula for %s in %s", ErrBuild, missing, cfg.Type)
	}

	ex := exercise.Exercise{
		Type:    cfg.Type,
		Missing: missing,
		Given: []exercise.Given{
			{Variable: required[0], Value: values[required[0]]},
			{Variable: required[1], Value: values[required[1]]},
		},
	}

	solution, err := exercise.Solve(ex)
	if err != nil {
		return exercise.Exercise{}, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	answer := solution.Answer
	ex.CorrectAnswer = &answer
	return ex, nil
}

// BuildWithRandomExerciseType picks the family uniformly, then builds.
func BuildWithRandomExerciseType(cfg Config, rng *rand.Rand) (exercise.Exercise, error) {
	types := circuit.ExerciseTypes()
	return Build(cfg.SetType(types[rng.Intn(len(types))]), rng)
}

// sample draws from [r.Min, r.Max), rounds half away from zero to
// decimals places and clamps the result into [r.Min, r.Max].
func sample(rng *rand.Rand, r Range, decimals int) float64 {
	raw := r.Min + rng.Float64()*(r.Max-r.Min)
	rounded := decimal.NewFromFloat(raw).Round(int32(decimals)).InexactFloat64()
	switch {
	case rounded < r.Min:
		return r.Min
	case rounded > r.Max:
		return r.Max
	default:
		return rounded
	}
}

// Builder couples a Config with its own generator. It can be reused to
// build any number of exercises but must not be shared between goroutines.
type Builder struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Builder. Without WithRand or WithSeed it seeds from the
// clock.
func New(opts ...Option) *Builder {
	b := &Builder{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = NewRand(time.Now().UnixNano())
	}
	return b
}

// Config returns the builder's configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build builds an exercise of the configured type.
func (b *Builder) Build() (exercise.Exercise, error) {
	return Build(b.cfg, b.rng)
}

// BuildWithRandomExerciseType builds an exercise of a random type. The
// configured type is left unchanged.
func (b *Builder) BuildWithRandomExerciseType() (exercise.Exercise, error) {
	return BuildWithRandomExerciseType(b.cfg, b.rng)
}
