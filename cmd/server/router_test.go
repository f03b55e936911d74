package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"onboarding/internal/platform/health"
	"onboarding/internal/registration/metrics"
	"onboarding/internal/registration/models"
	"onboarding/internal/registration/service"
	"onboarding/internal/registration/store/customer"
	"onboarding/internal/registration/store/license"
	"onboarding/internal/registration/store/servicerule"
	"onboarding/internal/registration/store/subscription"
	"onboarding/pkg/platform/middleware/request"
)

const functionKey = "storefront-key"

type RouterSuite struct {
	suite.Suite
	subscriptions *subscription.InMemoryStore
	router        http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hash, err := bcrypt.GenerateFromPassword([]byte(functionKey), bcrypt.MinCost)
	s.Require().NoError(err)

	registry := prometheus.NewRegistry()
	s.subscriptions = subscription.NewInMemory()
	registration := service.New(service.NewInMemoryConnector(), service.Stores{
		Licenses:      license.NewInMemory(models.License{Name: "Pro", DurationDays: 30, CurrentVersion: 2.0}),
		Customers:     customer.NewInMemory(models.Customer{Email: "founder@example.com", CustomerID: 1}),
		Subscriptions: s.subscriptions,
		ServiceRules:  servicerule.NewInMemory(),
	}, service.WithLogger(logger), service.WithMetrics(metrics.New(registry)))

	healthHandler := health.New("test")
	healthHandler.RegisterCheck("database", func(context.Context) error { return nil })

	s.router = newRouter(routerDeps{
		logger:          logger,
		registration:    registration,
		health:          healthHandler,
		location:        time.UTC,
		functionKeyHash: string(hash),
		gatherer:        registry,
		requestMetrics:  request.NewMetrics(registry),
	})
}

func validParams() url.Values {
	return url.Values{
		"email":         {"new@example.com"},
		"givenName":     {"Ann"},
		"business":      {"Acme"},
		"phone":         {"+61 400 000 000"},
		"license":       {"Pro"},
		"country":       {"AU"},
		"address":       {"1 Main St"},
		"business_type": {"Retail"},
		"business_sect": {"Food"},
		"postcode":      {"2000"},
		"principle":     {"new_example.com"},
	}
}

func (s *RouterSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) TestCreateUserRequiresFunctionKey() {
	s.Run("missing key is rejected", func() {
		w := s.serve(httptest.NewRequest(http.MethodPost, "/api/createUser?"+validParams().Encode(), nil))
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Equal(0, s.subscriptions.Count())
	})

	s.Run("key in header is accepted", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/createUser?"+validParams().Encode(), nil)
		req.Header.Set("x-functions-key", functionKey)

		w := s.serve(req)
		s.Equal(http.StatusOK, w.Code)
		s.Equal("Complete", w.Body.String())
		s.Equal(1, s.subscriptions.Count())
	})

	s.Run("key in query is accepted", func() {
		params := validParams()
		params.Set("code", functionKey)
		params.Set("license", "Unknown")

		w := s.serve(httptest.NewRequest(http.MethodPost, "/api/createUser?"+params.Encode(), nil))
		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("License type (Unknown) not recognised", w.Body.String())
	})
}

func (s *RouterSuite) TestHealthAndMetricsAreOpen() {
	s.Equal(http.StatusOK, s.serve(httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/createUser?"+validParams().Encode(), nil)
	req.Header.Set("x-functions-key", functionKey)
	s.Require().Equal(http.StatusOK, s.serve(req).Code)

	w := s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "onboarding_registrations_total")
	s.Contains(w.Body.String(), `route="/api/createUser"`)
}

func (s *RouterSuite) TestResponsesCarryRequestID() {
	w := s.serve(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}
