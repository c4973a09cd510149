package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/api"
	"github.com/schedcu/shiftsolver/internal/job"
	"github.com/schedcu/shiftsolver/internal/logger"
	"github.com/schedcu/shiftsolver/internal/metrics"
	"github.com/schedcu/shiftsolver/internal/repository"
	"github.com/schedcu/shiftsolver/internal/repository/memory"
	"github.com/schedcu/shiftsolver/internal/repository/postgres"
	"github.com/schedcu/shiftsolver/internal/solver"
	"github.com/schedcu/shiftsolver/internal/solver/ortoolscp"
)

func main() {
	sugar, err := logger.NewLogger("")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer sugar.Sync()
	zap.ReplaceGlobals(sugar.Desugar())

	history, closeHistory := newSolveHistoryRepository(sugar)
	defer closeHistory()

	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	scheduler, err := job.NewJobScheduler(redisAddr)
	if err != nil {
		sugar.Fatalw("failed to create job scheduler", "error", err)
	}
	defer scheduler.Close()

	params := solverParamsFromEnv()
	metricsRegistry := metrics.NewMetricsRegistry()

	go runWorker(sugar, redisAddr, history, params, metricsRegistry)

	router := api.NewRouter(scheduler, history, metricsRegistry)

	addr := envOr("SERVER_ADDR", ":8080")
	go func() {
		sugar.Infow("starting HTTP server", "addr", addr)
		if err := router.Start(addr); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		sugar.Errorw("server shutdown error", "error", err)
	}
}

// newSolveHistoryRepository picks PostgreSQL when DATABASE_URL is set,
// otherwise an in-memory store suitable for local development.
func newSolveHistoryRepository(sugar *zap.SugaredLogger) (repository.SolveHistoryRepository, func()) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		sugar.Info("DATABASE_URL not set, using in-memory solve history repository")
		return memory.NewSolveHistoryRepository(), func() {}
	}

	db, err := postgres.New(dsn)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	return postgres.NewSolveHistoryRepository(db.DB), func() { _ = db.Close() }
}

// runWorker runs the asynq worker loop that executes queued solve jobs
// against a fresh solver backend per run.
func runWorker(sugar *zap.SugaredLogger, redisAddr string, history repository.SolveHistoryRepository, params solver.Params, reg *metrics.MetricsRegistry) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: envOrInt("WORKER_CONCURRENCY", 4)},
	)

	handlers := job.NewJobHandlers(history, func() solver.Model { return ortoolscp.New() }, params, reg)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	sugar.Infow("starting solve worker", "redis_addr", redisAddr)
	if err := srv.Run(mux); err != nil {
		sugar.Fatalw("worker server failed", "error", err)
	}
}

func solverParamsFromEnv() solver.Params {
	return solver.Params{
		TimeLimitSeconds:    envOrInt("SOLVE_TIME_LIMIT_SECONDS", 60),
		QuickSolveSeconds:   envOrInt("SOLVE_QUICK_LIMIT_SECONDS", 10),
		NumSearchWorkers:    envOrInt("SOLVE_SEARCH_WORKERS", 8),
		LogSearchProgress:   os.Getenv("SOLVE_LOG_SEARCH") == "true",
		OptimalityTolerance: 0.0,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
