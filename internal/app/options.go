package service

import (
	"github.com/puimuri/trainer/internal/domain/builder"
	"github.com/puimuri/trainer/pkg/logger"
	"github.com/puimuri/trainer/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records into m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithBuilderConfig sets the ranges and rounding used for new exercises.
// The exercise type in cfg is ignored: every exercise gets a random type.
func WithBuilderConfig(cfg builder.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithGradeTolerance sets the absolute tolerance for accepting an answer.
func WithGradeTolerance(tolerance float64) Option {
	return func(s *Service) {
		if tolerance > 0 {
			s.tolerance = tolerance
		}
	}
}

// WithSeed makes generated exercises reproducible.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
		s.seeded = true
	}
}
