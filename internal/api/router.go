package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schedcu/shiftsolver/internal/job"
	"github.com/schedcu/shiftsolver/internal/metrics"
	"github.com/schedcu/shiftsolver/internal/repository"
)

// Router creates and configures the Echo router.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
	metrics  *metrics.MetricsRegistry
}

// NewRouter creates a new Echo router with all routes registered. reg is
// shared with the job worker's metrics so HTTP and solve-job metrics land
// on the same Prometheus registry and /metrics endpoint.
func NewRouter(scheduler *job.JobScheduler, history repository.SolveHistoryRepository, reg *metrics.MetricsRegistry) *Router {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	r := &Router{
		echo:     e,
		handlers: NewHandlers(scheduler, history),
		metrics:  reg,
	}

	e.Use(echo.WrapMiddleware(r.metrics.HTTPMiddleware))

	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.GET("/metrics", echo.WrapHandler(r.metrics.GetHandler()))

	solves := r.echo.Group("/api/solves")
	solves.POST("", r.handlers.SubmitSolve)
	solves.GET("", r.handlers.ListSolveRuns)
	solves.GET("/:id", r.handlers.GetSolveRun)
	solves.GET("/:id/coverage", r.handlers.GetSolveRunCoverage)
	solves.GET("/:id/schedule", r.handlers.GetSolveRunSchedule)

	schedules := r.echo.Group("/api/schedules")
	schedules.POST("/:id/validate", r.handlers.ValidateSchedule)
}

// Start starts the HTTP server.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
