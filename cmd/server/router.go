package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onboarding/internal/platform/health"
	"onboarding/internal/registration/handler"
	"onboarding/pkg/platform/middleware/funckey"
	"onboarding/pkg/platform/middleware/request"
	"onboarding/pkg/platform/middleware/requesttime"
	"onboarding/pkg/platform/validation"
)

type routerDeps struct {
	logger          *slog.Logger
	registration    handler.Service
	health          *health.Handler
	location        *time.Location
	functionKeyHash string

	// gatherer is nil when metrics are disabled.
	gatherer       prometheus.Gatherer
	requestMetrics *request.Metrics
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(deps.logger))
	r.Use(request.RequestID)
	r.Use(request.ClientIP)
	r.Use(request.Logger(deps.logger))
	r.Use(request.Latency(deps.requestMetrics, routePattern))

	deps.health.Register(r)
	if deps.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(funckey.Require(deps.functionKeyHash, deps.logger))
		r.Use(request.BodyLimit(validation.MaxBodySize))
		r.Use(requesttime.Middleware(deps.location))
		handler.New(deps.registration, deps.logger).Register(r)
	})

	return r
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
