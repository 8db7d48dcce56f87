package builder

import "math/rand"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithConfig sets the sampling configuration.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.cfg = cfg
	}
}

// WithRand sets the generator the builder draws from.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithSeed seeds a private generator deterministically.
func WithSeed(seed int64) Option {
	return func(b *Builder) {
		b.rng = NewRand(seed)
	}
}
