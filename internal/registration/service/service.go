package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"onboarding/internal/platform/privacy"
	"onboarding/internal/registration/metrics"
	"onboarding/internal/registration/models"
	"onboarding/internal/registration/validation"
	dErrors "onboarding/pkg/domain-errors"
	"onboarding/pkg/platform/sentinel"
	"onboarding/pkg/requestcontext"
)

// LicenseStore reads the license catalog.
// Error Contract:
// - FindByName returns sentinel.ErrNotFound when no license has that name
type LicenseStore interface {
	ListNames(ctx context.Context) ([]string, error)
	FindByName(ctx context.Context, name string) (*models.License, error)
}

// CustomerStore reads and writes the users table.
// Error Contract:
// - NextCustomerID returns sentinel.ErrEmptyCatalog when there are no customers yet
// - Create returns sentinel.ErrAlreadyUsed when the email is already registered
type CustomerStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	NextCustomerID(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *models.Customer) error
}

type SubscriptionStore interface {
	Create(ctx context.Context, sub *models.Subscription) error
}

type ServiceRuleStore interface {
	Create(ctx context.Context, r *models.ServiceRule) error
}

// Connector opens the database session a single registration runs on.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Session is one dedicated database connection.
// Bind routes store calls made with the returned context onto the session.
// RunInTx runs fn in a transaction, committing when fn returns nil and rolling
// back otherwise.
type Session interface {
	Bind(ctx context.Context) context.Context
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}

// Stores groups the persistence dependencies of the workflow.
type Stores struct {
	Licenses      LicenseStore
	Customers     CustomerStore
	Subscriptions SubscriptionStore
	ServiceRules  ServiceRuleStore
}

const (
	defaultConnectAttempts = 5
	defaultTxTimeout       = 10 * time.Second
)

// Service runs the registration workflow: validate the request, then record a
// new customer or add a subscription for an existing one.
type Service struct {
	connector Connector
	stores    Stores

	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          trace.Tracer
	location        *time.Location
	connectAttempts int
	connectBackoff  time.Duration
	txTimeout       time.Duration
	validateOpts    []validation.Option
}

// New constructs the registration service.
func New(connector Connector, stores Stores, opts ...Option) *Service {
	svc := &Service{
		connector:       connector,
		stores:          stores,
		logger:          slog.Default(),
		location:        time.UTC,
		connectAttempts: defaultConnectAttempts,
		txTimeout:       defaultTxTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tracer == nil {
		svc.tracer = otel.Tracer("onboarding/registration")
	}
	return svc
}

// Register validates req and records it. A validation failure is a
// CodeValidation error carrying the rule's message. Storage failures are
// CodeUnavailable when no connection could be made and CodeInternal otherwise.
func (s *Service) Register(ctx context.Context, req *models.RegistrationRequest) (*models.Registration, error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "registration.Register")

	reg, err := s.register(ctx, req)

	s.observe(ctx, reg, err, time.Since(start))
	endSpan(span, err)
	return reg, err
}

// Check runs everything Register does up to and including validation, and
// writes nothing.
func (s *Service) Check(ctx context.Context, req *models.RegistrationRequest) error {
	ctx, span := s.startSpan(ctx, "registration.Check")

	err := s.check(ctx, req)

	endSpan(span, err)
	return err
}

func (s *Service) check(ctx context.Context, req *models.RegistrationRequest) error {
	session, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer s.release(ctx, session)
	ctx = session.Bind(ctx)

	return s.validate(ctx, req)
}

func (s *Service) register(ctx context.Context, req *models.RegistrationRequest) (*models.Registration, error) {
	session, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, session)
	ctx = session.Bind(ctx)

	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	license, err := s.stores.Licenses.FindByName(ctx, req.License)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read license")
	}
	ts := models.DeriveTimestamps(requestcontext.Now(ctx).In(s.location), license.DurationDays)

	exists, err := s.stores.Customers.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up customer")
	}
	if exists {
		return s.upgrade(ctx, req, license, ts)
	}

	reg, err := s.registerNewCustomer(ctx, session, req, license, ts)
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		// Another request registered this email after our lookup. The
		// transaction rolled back, so this is now an ordinary upgrade.
		s.logger.InfoContext(ctx, "customer registered concurrently, recording as upgrade",
			"request_id", requestcontext.RequestID(ctx),
			"email", privacy.MaskEmail(req.Email),
		)
		if s.metrics != nil {
			s.metrics.IncrementUpgradeFallback()
		}
		return s.upgrade(ctx, req, license, ts)
	}
	return reg, err
}

// validate reads the catalog and checks req against it.
func (s *Service) validate(ctx context.Context, req *models.RegistrationRequest) error {
	names, err := s.stores.Licenses.ListNames(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read license catalog")
	}
	if verr := validation.Validate(req, names, s.validateOpts...); verr != nil {
		if s.metrics != nil {
			s.metrics.IncrementValidationFailure(string(verr.Reason))
		}
		return dErrors.Wrap(verr, dErrors.CodeValidation, verr.Message)
	}
	return nil
}

// registerNewCustomer writes the customer, subscription and service rule rows
// in one transaction. Either all three exist afterwards or none do.
func (s *Service) registerNewCustomer(ctx context.Context, session Session, req *models.RegistrationRequest, license *models.License, ts models.Timestamps) (*models.Registration, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	var reg *models.Registration
	err := session.RunInTx(ctx, func(ctx context.Context) error {
		customerID, err := s.stores.Customers.NextCustomerID(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate customer id")
		}
		if err := s.stores.Customers.Create(ctx, models.NewCustomer(req, customerID, ts)); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return err
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create customer")
		}
		sub := models.NewSubscription(req, license, ts)
		if err := s.stores.Subscriptions.Create(ctx, sub); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create subscription")
		}
		if err := s.stores.ServiceRules.Create(ctx, models.NewServiceRule(customerID, ts)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create service rule")
		}
		reg = &models.Registration{
			Path:         models.PathNewCustomer,
			CustomerID:   customerID,
			Subscription: *sub,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register new customer")
	}
	return reg, nil
}

// upgrade records an additional subscription for an existing customer.
func (s *Service) upgrade(ctx context.Context, req *models.RegistrationRequest, license *models.License, ts models.Timestamps) (*models.Registration, error) {
	sub := models.NewSubscription(req, license, ts)
	if err := s.stores.Subscriptions.Create(ctx, sub); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create subscription")
	}
	return &models.Registration{
		Path:         models.PathUpgrade,
		Subscription: *sub,
	}, nil
}

// connect opens a session, retrying only connection establishment. Nothing
// after a successful connect is ever retried.
func (s *Service) connect(ctx context.Context) (Session, error) {
	var (
		attempts int
		lastErr  error
	)
	op := func() (Session, error) {
		attempts++
		session, err := s.connector.Connect(ctx)
		if err == nil {
			return session, nil
		}
		lastErr = err
		if s.metrics != nil {
			s.metrics.IncrementConnectFailure()
		}
		s.logger.WarnContext(ctx, "database connect attempt failed",
			"request_id", requestcontext.RequestID(ctx),
			"attempt", attempts,
			"error", err,
		)
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	session, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(s.backoffPolicy()),
		backoff.WithMaxTries(uint(s.connectAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, dErrors.Wrap(lastErr, dErrors.CodeUnavailable,
			fmt.Sprintf("could not connect to database after %d attempts (%s)", attempts, lastErr))
	}
	return session, nil
}

func (s *Service) backoffPolicy() backoff.BackOff {
	if s.connectBackoff <= 0 {
		return &backoff.ZeroBackOff{}
	}
	return backoff.NewConstantBackOff(s.connectBackoff)
}

func (s *Service) release(ctx context.Context, session Session) {
	if err := session.Close(); err != nil {
		s.logger.WarnContext(ctx, "failed to release database session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
