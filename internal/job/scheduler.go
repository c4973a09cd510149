// Package job enqueues and executes solve runs asynchronously over asynq,
// so a caller can submit a scheduling request and poll for its result
// instead of holding an HTTP connection open for the duration of a solve.
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// JobScheduler manages job enqueueing to Asynq.
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler creates a new job scheduler.
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &JobScheduler{client: client}, nil
}

// TypeSolveRun is the one job type this system enqueues: run a solve end
// to end and persist the result against its SolveRun record.
const TypeSolveRun = "solve:run"

// SolveRunPayload carries the ID of the already-persisted SolveRun to execute.
type SolveRunPayload struct {
	RunID uuid.UUID `json:"run_id"`
}

// EnqueueSolveRun enqueues a solve job for a run already persisted as pending.
func (s *JobScheduler) EnqueueSolveRun(ctx context.Context, runID uuid.UUID, timeLimit time.Duration) (*asynq.TaskInfo, error) {
	payloadBytes, err := json.Marshal(SolveRunPayload{RunID: runID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeSolveRun, payloadBytes)

	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(1), asynq.Timeout(timeLimit+30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue solve run: %w", err)
	}

	return info, nil
}

// Close closes the job scheduler and releases resources.
func (s *JobScheduler) Close() error {
	return s.client.Close()
}

// GetTaskInfo retrieves information about a queued task.
func (s *JobScheduler) GetTaskInfo(ctx context.Context, taskID string) (*asynq.TaskInfo, error) {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: s.client.String()})
	defer inspector.Close()

	return inspector.GetTaskInfo(ctx, "default", taskID)
}
