package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/schedcu/shiftsolver/internal/constraint"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/job"
	"github.com/schedcu/shiftsolver/internal/repository"
	"github.com/schedcu/shiftsolver/internal/scheduledto"
	"github.com/schedcu/shiftsolver/internal/service/coverage"
	"github.com/schedcu/shiftsolver/internal/solverequest"
	"github.com/schedcu/shiftsolver/internal/validation"
	"github.com/schedcu/shiftsolver/internal/validator"
)

// defaultSolveTimeLimit bounds how long a queued solve job is allowed to run
// before asynq treats it as failed. It is a fixed value, not read from the
// worker's solver.Params.TimeLimitSeconds; EnqueueSolveRun adds a further
// 30 seconds to it for the task timeout.
const defaultSolveTimeLimit = 5 * time.Minute

// Handlers contains all HTTP request handlers.
type Handlers struct {
	scheduler *job.JobScheduler
	history   repository.SolveHistoryRepository
}

// NewHandlers constructs the Handlers for a router.
func NewHandlers(scheduler *job.JobScheduler, history repository.SolveHistoryRepository) *Handlers {
	return &Handlers{scheduler: scheduler, history: history}
}

// SubmitSolveResponse is returned immediately after a solve is queued.
type SubmitSolveResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// SubmitSolve accepts a scheduling request, persists it as a pending run,
// and enqueues it for asynchronous solving.
func (h *Handlers) SubmitSolve(c echo.Context) error {
	var req solverequest.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", err.Error()))
	}

	if _, err := req.ToOrchestratorInput(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("INVALID_REQUEST", err.Error()))
	}

	requestJSON, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("MARSHAL_FAILED", err.Error()))
	}

	createdBy := c.Request().Header.Get("X-User-ID")
	run := entity.NewSolveRun(requestJSON, createdBy)

	if err := h.history.Create(c.Request().Context(), run); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("PERSIST_FAILED", err.Error()))
	}

	if _, err := h.scheduler.EnqueueSolveRun(c.Request().Context(), run.ID, defaultSolveTimeLimit); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("ENQUEUE_FAILED", err.Error()))
	}

	return c.JSON(http.StatusAccepted, NewSuccessResponse(SubmitSolveResponse{
		RunID:  run.ID.String(),
		Status: "queued",
	}))
}

// SolveRunResponse is the polled status/result of one solve run.
type SolveRunResponse struct {
	RunID             string                    `json:"run_id"`
	Status            entity.SolveStatus        `json:"status"`
	Schedule          *scheduledto.Schedule     `json:"schedule,omitempty"`
	FeasibilityIssues []entity.FeasibilityIssue `json:"feasibility_issues,omitempty"`
	ObjectiveValue    float64                   `json:"objective_value,omitempty"`
	WallTimeSeconds   float64                   `json:"wall_time_seconds,omitempty"`
	ErrorMessage      string                    `json:"error_message,omitempty"`
	Done              bool                      `json:"done"`
}

// GetSolveRun polls a previously submitted solve run.
func (h *Handlers) GetSolveRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", "invalid run id"))
	}

	run, err := h.history.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", "solve run not found"))
	}

	resp := SolveRunResponse{
		RunID:             run.ID.String(),
		Status:            run.Status,
		FeasibilityIssues: run.FeasibilityIssues,
		ObjectiveValue:    run.ObjectiveValue,
		WallTimeSeconds:   run.WallTimeSeconds,
		ErrorMessage:      run.ErrorMessage,
		Done:              run.IsDone(),
	}

	if len(run.ScheduleJSON) > 0 {
		var schedule scheduledto.Schedule
		if err := json.Unmarshal(run.ScheduleJSON, &schedule); err != nil {
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
		}
		resp.Schedule = &schedule
	}

	return c.JSON(http.StatusOK, NewSuccessResponse(resp))
}

// GetSolveRunSchedule fetches the persisted Schedule JSON for a completed
// run (spec §6's shape), without the surrounding poll envelope.
func (h *Handlers) GetSolveRunSchedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", "invalid run id"))
	}

	run, err := h.history.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", "solve run not found"))
	}

	if len(run.ScheduleJSON) == 0 {
		return c.JSON(http.StatusConflict, NewErrorResponse("NO_SCHEDULE", "solve run has no completed schedule"))
	}

	var schedule scheduledto.Schedule
	if err := json.Unmarshal(run.ScheduleJSON, &schedule); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
	}

	return c.JSON(http.StatusOK, NewSuccessResponse(schedule))
}

// GetSolveRunCoverage reports per-cell staffing percentages for a completed run.
func (h *Handlers) GetSolveRunCoverage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", "invalid run id"))
	}

	run, err := h.history.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", "solve run not found"))
	}

	if len(run.ScheduleJSON) == 0 {
		return c.JSON(http.StatusConflict, NewErrorResponse("NO_SCHEDULE", "solve run has no completed schedule"))
	}

	var dto scheduledto.Schedule
	if err := json.Unmarshal(run.ScheduleJSON, &dto); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
	}
	schedule, err := dto.ToEntity()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
	}

	metrics := coverage.Resolve(schedule)
	return c.JSON(http.StatusOK, NewSuccessResponse(metrics))
}

// ValidateSchedule re-checks a Schedule (the request body, spec §6's shape)
// against the hard invariants and §4.5 soft-violation semantics of the run
// it was solved under (module J, spec §4.10).
func (h *Handlers) ValidateSchedule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", "invalid run id"))
	}

	run, err := h.history.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", "solve run not found"))
	}

	var req solverequest.Request
	if err := json.Unmarshal(run.RequestJSON, &req); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
	}
	orchInput, err := req.ToOrchestratorInput()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("UNMARSHAL_FAILED", err.Error()))
	}

	var dto scheduledto.Schedule
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("BAD_REQUEST", err.Error()))
	}
	schedule, err := dto.ToEntity()
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("INVALID_SCHEDULE", err.Error()))
	}

	resolved := constraint.Resolve(orchInput.ConstraintOverrides, len(orchInput.Requests) > 0)
	configs := make(map[string]entity.ConstraintConfig, len(resolved))
	for _, d := range resolved {
		configs[d.Constraint.Name()] = d.Config
	}

	report := validator.Validate(validator.Input{
		Workers:                    orchInput.Workers,
		ShiftTypes:                 orchInput.ShiftTypes,
		Calendar:                   orchInput.Calendar,
		Availabilities:             orchInput.Availabilities,
		ShiftFrequencyRequirements: orchInput.ShiftFrequencyRequirements,
		Requests:                   orchInput.Requests,
		ConstraintConfigs:          configs,
	}, schedule)

	result := validation.NewResult()
	for _, v := range report.Violations {
		result.AddError(validation.CodeScheduleViolation, v)
	}
	for _, w := range report.Warnings {
		result.AddWarning(validation.CodeScheduleWarning, w)
	}
	for name, count := range report.Statistics {
		result.AddInfo(name, fmt.Sprintf("%d", count))
	}

	return c.JSON(http.StatusOK, NewValidationResponse(result))
}

// ListSolveRuns lists the most recently submitted solve runs.
func (h *Handlers) ListSolveRuns(c echo.Context) error {
	runs, err := h.history.ListRecent(c.Request().Context(), 50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("QUERY_FAILED", err.Error()))
	}

	summaries := make([]SolveRunResponse, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, SolveRunResponse{
			RunID:           run.ID.String(),
			Status:          run.Status,
			ObjectiveValue:  run.ObjectiveValue,
			WallTimeSeconds: run.WallTimeSeconds,
			ErrorMessage:    run.ErrorMessage,
			Done:            run.IsDone(),
		})
	}

	return c.JSON(http.StatusOK, NewSuccessResponse(summaries))
}

// Health returns the liveness status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(map[string]interface{}{"status": "UP"}))
}
