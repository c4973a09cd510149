package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/metrics"
	"github.com/schedcu/shiftsolver/internal/orchestrator"
	"github.com/schedcu/shiftsolver/internal/repository"
	"github.com/schedcu/shiftsolver/internal/scheduledto"
	"github.com/schedcu/shiftsolver/internal/solver"
	"github.com/schedcu/shiftsolver/internal/solverequest"
)

// JobHandlers executes queued solve runs against the solver core and
// persists their outcome.
type JobHandlers struct {
	history  repository.SolveHistoryRepository
	newModel func() solver.Model
	params   solver.Params
	metrics  *metrics.MetricsRegistry
}

// NewJobHandlers creates a new job handlers instance. newModel constructs a
// fresh backend Model per run, since a Model is not safe to reuse across solves.
// reg is shared with the HTTP router's metrics so both sides of the process
// register against the same Prometheus registry.
func NewJobHandlers(history repository.SolveHistoryRepository, newModel func() solver.Model, params solver.Params, reg *metrics.MetricsRegistry) *JobHandlers {
	return &JobHandlers{history: history, newModel: newModel, params: params, metrics: reg}
}

// RegisterHandlers registers all job handlers with the Asynq mux.
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeSolveRun, h.HandleSolveRun)
}

// HandleSolveRun loads a pending SolveRun, runs the orchestrator against it,
// and writes the outcome back.
func (h *JobHandlers) HandleSolveRun(ctx context.Context, t *asynq.Task) error {
	var payload SolveRunPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	run, err := h.history.GetByID(ctx, payload.RunID)
	if err != nil {
		return fmt.Errorf("solve run %s not found: %w", payload.RunID, asynq.SkipRetry)
	}

	var req solverequest.Request
	if err := json.Unmarshal(run.RequestJSON, &req); err != nil {
		run.Fail(fmt.Sprintf("malformed request: %v", err))
		_ = h.history.Update(ctx, run)
		return fmt.Errorf("malformed request for run %s: %w", payload.RunID, asynq.SkipRetry)
	}

	input, err := req.ToOrchestratorInput()
	if err != nil {
		run.Fail(err.Error())
		_ = h.history.Update(ctx, run)
		return fmt.Errorf("invalid request for run %s: %w", payload.RunID, asynq.SkipRetry)
	}

	h.metrics.IncrementActiveJobs(TypeSolveRun)
	defer h.metrics.DecrementActiveJobs(TypeSolveRun)

	started := time.Now()
	orch := orchestrator.New(h.newModel(), h.params)
	result, err := orch.Run(ctx, input)
	h.metrics.RecordServiceOperation("orchestrator", "solve", time.Since(started).Seconds(), err != nil)
	if err != nil {
		run.Fail(err.Error())
		_ = h.history.Update(ctx, run)
		zap.S().Errorw("solve run failed", "run_id", payload.RunID, "error", err)
		return fmt.Errorf("solve run %s failed: %w", payload.RunID, err)
	}

	var scheduleJSON []byte
	if result.Schedule != nil {
		scheduleJSON, err = json.Marshal(scheduledto.From(result.Schedule))
		if err != nil {
			run.Fail(fmt.Sprintf("failed to marshal schedule: %v", err))
			_ = h.history.Update(ctx, run)
			return fmt.Errorf("failed to marshal schedule for run %s: %w", payload.RunID, err)
		}
	}

	run.Complete(result.Status, scheduleJSON, result.FeasibilityIssues, result.ObjectiveValue, result.WallTimeSeconds)
	if err := h.history.Update(ctx, run); err != nil {
		return fmt.Errorf("failed to persist completed run %s: %w", payload.RunID, err)
	}

	zap.S().Infow("solve run completed", "run_id", payload.RunID, "status", run.Status)
	return nil
}
