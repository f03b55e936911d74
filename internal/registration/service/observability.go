package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"onboarding/internal/registration/metrics"
	"onboarding/internal/registration/models"
	dErrors "onboarding/pkg/domain-errors"
	"onboarding/pkg/requestcontext"
)

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("request_id", requestcontext.RequestID(ctx))),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// observe records the outcome of one registration. Server-side failures are
// logged here so every exit path is covered once.
func (s *Service) observe(ctx context.Context, reg *models.Registration, err error, elapsed time.Duration) {
	path := "unknown"
	if reg != nil {
		path = reg.Path.String()
	}

	outcome := metrics.OutcomeSuccess
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation:
		outcome = metrics.OutcomeRejected
	case dErrors.CodeUnavailable:
		outcome = metrics.OutcomeUnavailable
	default:
		if err != nil {
			outcome = metrics.OutcomeFailed
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistration(path, outcome)
		s.metrics.ObserveRegisterLatency(elapsed.Seconds())
	}

	if outcome == metrics.OutcomeFailed || outcome == metrics.OutcomeUnavailable {
		s.logger.ErrorContext(ctx, "registration failed",
			"request_id", requestcontext.RequestID(ctx),
			"outcome", outcome,
			"error", err,
		)
	}
}
