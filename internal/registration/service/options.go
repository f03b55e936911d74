package service

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"onboarding/internal/registration/metrics"
	"onboarding/internal/registration/validation"
)

type Option func(*Service)

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithLocation sets the timezone renewal dates are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithConnectRetry sets how many times opening a connection is attempted and
// the pause between attempts. Attempts below one keep the default of 5.
func WithConnectRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.connectAttempts = attempts
		}
		s.connectBackoff = delay
	}
}

// WithTxTimeout bounds the new-customer transaction when the caller's context
// has no deadline of its own.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.txTimeout = d
		}
	}
}

// WithValidationOptions passes opts to every validation run.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(s *Service) {
		s.validateOpts = append(s.validateOpts, opts...)
	}
}
