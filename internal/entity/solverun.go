package entity

import (
	"time"

	"github.com/google/uuid"
)

// SolveRun is the one aggregate this system persists: a record of a single
// solve request plus its outcome, stored so a caller can submit a job
// asynchronously and poll for it later (spec §6's SolverResult, durable).
type SolveRun struct {
	ID uuid.UUID

	// RequestJSON is the submitted solverequest.Request wire payload,
	// serialized verbatim at submit time; the job handler converts it to
	// the orchestrator Input when the run executes. Kept as an opaque payload rather than columns: the scheduling
	// input shape follows the solver core, not the storage layer.
	RequestJSON []byte

	Status            SolveStatus
	ScheduleJSON      []byte
	FeasibilityIssues []FeasibilityIssue
	ObjectiveValue    float64
	WallTimeSeconds   float64
	ErrorMessage      string

	CreatedAt   time.Time
	CreatedBy   string
	CompletedAt *time.Time
}

// NewSolveRun allocates a pending run for a freshly submitted request.
func NewSolveRun(requestJSON []byte, createdBy string) *SolveRun {
	return &SolveRun{
		ID:          uuid.New(),
		RequestJSON: requestJSON,
		Status:      StatusUnknown,
		CreatedAt:   Now(),
		CreatedBy:   createdBy,
	}
}

// Complete marks the run finished and stamps CompletedAt.
func (r *SolveRun) Complete(status SolveStatus, scheduleJSON []byte, issues []FeasibilityIssue, objectiveValue, wallTimeSeconds float64) {
	r.Status = status
	r.ScheduleJSON = scheduleJSON
	r.FeasibilityIssues = issues
	r.ObjectiveValue = objectiveValue
	r.WallTimeSeconds = wallTimeSeconds
	r.CompletedAt = NowPtr()
}

// Fail marks the run finished with an error instead of a schedule.
func (r *SolveRun) Fail(message string) {
	r.Status = StatusUnknown
	r.ErrorMessage = message
	r.CompletedAt = NowPtr()
}

// IsDone reports whether the run has finished (successfully or not).
func (r *SolveRun) IsDone() bool {
	return r.CompletedAt != nil
}
