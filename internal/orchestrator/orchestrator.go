// Package orchestrator drives one solve end to end: Init -> PreCheck ->
// Build -> Solve -> Extract -> Done, with error transitions to Fail(kind)
// (spec §4.8). It owns exactly one solver.Model and is not safe to share
// across goroutines (spec §5) — callers that need concurrent solves create
// one Orchestrator (and one backend Model) per solve.
package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/constraint"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/feasibility"
	"github.com/schedcu/shiftsolver/internal/modelvars"
	"github.com/schedcu/shiftsolver/internal/objective"
	"github.com/schedcu/shiftsolver/internal/solver"
)

// Input is every caller-supplied scheduling input (spec §3, §6).
type Input struct {
	Workers                    []entity.Worker
	ShiftTypes                 []entity.ShiftType
	Calendar                   *calendar.Calendar
	Availabilities             []entity.Availability
	Requests                   []entity.SchedulingRequest
	ShiftFrequencyRequirements []entity.ShiftFrequencyRequirement
	ConstraintOverrides        map[string]entity.ConstraintConfig
}

// Result is the SolverResult of spec §6.
type Result struct {
	Status             entity.SolveStatus
	Schedule           *entity.Schedule
	FeasibilityIssues  []entity.FeasibilityIssue
	ObjectiveValue     float64
	WallTimeSeconds    float64
	PerConstraintStats map[string]entity.ConstraintStats
}

// Orchestrator runs one solve against one backend Model.
type Orchestrator struct {
	model  solver.Model
	params solver.Params
}

// New binds an Orchestrator to a fresh backend Model and solve parameters.
func New(model solver.Model, params solver.Params) *Orchestrator {
	return &Orchestrator{model: model, params: params}
}

// Run executes the full state machine for one Input.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*Result, error) {
	// PreCheck
	issues := feasibility.Check(feasibility.Input{
		Workers:                    in.Workers,
		ShiftTypes:                 in.ShiftTypes,
		Calendar:                   in.Calendar,
		Availabilities:             in.Availabilities,
		Requests:                   in.Requests,
		ShiftFrequencyRequirements: in.ShiftFrequencyRequirements,
		ConstraintConfigs:          in.ConstraintOverrides,
	})
	if feasibility.HasFatal(issues) {
		zap.S().Warnw("pre-solve infeasible", "issue_count", len(issues))
		return &Result{Status: entity.StatusPreSolveInfeasible, FeasibilityIssues: issues}, nil
	}

	// Build
	vars := modelvars.Build(o.model, in.Workers, in.ShiftTypes, in.Calendar.NumPeriods())

	ctxData := constraint.Context{
		Workers:                    in.Workers,
		ShiftTypes:                 in.ShiftTypes,
		Calendar:                   in.Calendar,
		Availabilities:             in.Availabilities,
		Requests:                   in.Requests,
		ShiftFrequencyRequirements: in.ShiftFrequencyRequirements,
	}

	resolved := constraint.Resolve(in.ConstraintOverrides, len(in.Requests) > 0)
	outputs := make([]*constraint.Output, 0, len(resolved))
	for _, d := range resolved {
		if !d.Config.Enabled {
			continue
		}
		out, err := d.Constraint.Apply(o.model, vars, ctxData, d.Config)
		if err != nil {
			return nil, fmt.Errorf("building constraint %q: %w", d.Constraint.Name(), err)
		}
		outputs = append(outputs, out)
	}

	objective.Build(o.model, outputs)

	// Solve
	res, err := o.model.Solve(ctx, o.params)
	if err != nil {
		return nil, err
	}
	status := mapStatus(res.Status)

	if status != entity.StatusOptimal && status != entity.StatusFeasible {
		return &Result{
			Status:            status,
			FeasibilityIssues: issues,
			WallTimeSeconds:   res.WallTime,
		}, nil
	}

	// Extract
	schedule := extractSchedule(o.model, vars, in, status, res)
	stats := extractStats(o.model, outputs)
	schedule.Statistics = stats

	return &Result{
		Status:             status,
		Schedule:           schedule,
		FeasibilityIssues:  issues,
		ObjectiveValue:     res.ObjectiveValue,
		WallTimeSeconds:    res.WallTime,
		PerConstraintStats: stats,
	}, nil
}

func mapStatus(s solver.Status) entity.SolveStatus {
	switch s {
	case solver.Optimal:
		return entity.StatusOptimal
	case solver.Feasible:
		return entity.StatusFeasible
	case solver.Infeasible:
		return entity.StatusInfeasible
	default:
		return entity.StatusUnknown
	}
}
