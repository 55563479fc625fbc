package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/iota-console/internal/mockapi"
	"github.com/iota-uz/iota-console/pkg/application"
	"github.com/iota-uz/iota-console/pkg/configuration"
	"github.com/iota-uz/iota-console/pkg/metrics"
	"github.com/iota-uz/iota-console/pkg/middleware"
	"github.com/iota-uz/iota-console/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Backend       *mockapi.Controller
}

// Default assembles the development backend: request logging and tracing,
// CORS, optional rate limiting, localization and the bearer guard in front
// of the resource routes.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	loggerOpts := middleware.DefaultLoggerOptions()
	loggerOpts.RequestIDHeader = conf.RequestIDHeader

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.MockAPI.Origins()...),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
				RealIPHeader:      loggerOpts.RealIPHeader,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("i18n"),
		middleware.ProvideLocalizer(app),
		middleware.TracedMiddleware("auth"),
		middleware.BearerGuard(conf.MockAPI.Token),
	)

	app.RegisterMiddleware(middlewares...)
	app.RegisterControllers(options.Backend)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(metrics.Options{
			Path:        conf.Prometheus.Path,
			OpenMetrics: conf.Prometheus.OpenMetrics,
		}))
	}

	return server.NewHTTPServer(
		app,
		mockapi.NotFound(),
		mockapi.MethodNotAllowed(),
	), nil
}
