// Package feasibility runs the pre-solve checks of spec §4.4: a cheap,
// deterministic pass over the raw input that catches structurally
// unsatisfiable requests before the backend solver is ever invoked.
package feasibility

import (
	"fmt"
	"time"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
)

// Input is the full immutable set of scheduling inputs the checks run over.
type Input struct {
	Workers                    []entity.Worker
	ShiftTypes                 []entity.ShiftType
	Calendar                   *calendar.Calendar
	Availabilities             []entity.Availability
	Requests                   []entity.SchedulingRequest
	ShiftFrequencyRequirements []entity.ShiftFrequencyRequirement
	ConstraintConfigs          map[string]entity.ConstraintConfig
}

// Check runs every pre-solve check and returns the accumulated issues. The
// caller (orchestrator) decides what to do with them; this package never
// itself raises PreSolveInfeasible.
func Check(in Input) []entity.FeasibilityIssue {
	var issues []entity.FeasibilityIssue

	issues = append(issues, checkDuplicateIDs(in)...)
	issues = append(issues, checkHorizonSanity(in)...)
	issues = append(issues, checkCoverageReachability(in)...)
	issues = append(issues, checkPerPeriodAvailability(in)...)
	issues = append(issues, checkRequestRestrictionConflicts(in)...)
	issues = append(issues, checkShiftFrequencySolvability(in)...)

	return issues
}

// HasFatal reports whether any issue is Severity=Fatal (spec §4.8: the
// orchestrator treats this as PreSolveInfeasible).
func HasFatal(issues []entity.FeasibilityIssue) bool {
	for _, i := range issues {
		if i.Severity == entity.SeverityFatal {
			return true
		}
	}
	return false
}

func fatal(kind, message string) entity.FeasibilityIssue {
	return entity.FeasibilityIssue{Severity: entity.SeverityFatal, Kind: kind, Message: message}
}

func warn(kind, message string) entity.FeasibilityIssue {
	return entity.FeasibilityIssue{Severity: entity.SeverityWarn, Kind: kind, Message: message}
}

// checkDuplicateIDs: worker IDs and shift-type IDs must be unique (check 3).
func checkDuplicateIDs(in Input) []entity.FeasibilityIssue {
	var issues []entity.FeasibilityIssue

	seen := make(map[string]struct{})
	for _, w := range in.Workers {
		if _, dup := seen[w.ID]; dup {
			issues = append(issues, fatal("DuplicateWorkerID", fmt.Sprintf("worker id %q appears more than once", w.ID)))
		}
		seen[w.ID] = struct{}{}
	}

	seen = make(map[string]struct{})
	for _, s := range in.ShiftTypes {
		if _, dup := seen[s.ID]; dup {
			issues = append(issues, fatal("DuplicateShiftTypeID", fmt.Sprintf("shift type id %q appears more than once", s.ID)))
		}
		seen[s.ID] = struct{}{}
	}

	return issues
}

// checkHorizonSanity: P >= 1, period_length_days >= 1 (check 6).
func checkHorizonSanity(in Input) []entity.FeasibilityIssue {
	if in.Calendar == nil || in.Calendar.NumPeriods() < 1 {
		return []entity.FeasibilityIssue{fatal("BadHorizon", "horizon must contain at least one period")}
	}
	return nil
}

// checkCoverageReachability: for each s, the unrestricted active pool must
// be >= workers_required (check 1).
func checkCoverageReachability(in Input) []entity.FeasibilityIssue {
	var issues []entity.FeasibilityIssue

	for _, s := range in.ShiftTypes {
		eligible := 0
		for _, w := range in.Workers {
			if w.IsActive && !w.IsRestrictedFrom(s.ID) {
				eligible++
			}
		}
		if eligible < s.WorkersRequired {
			issues = append(issues, fatal("CoverageUnreachable", fmt.Sprintf(
				"shift type %q requires %d worker(s) but only %d eligible active worker(s) exist", s.ID, s.WorkersRequired, eligible)))
		}
	}

	return issues
}

// checkPerPeriodAvailability combines (1) with unavailability in period p:
// the eligible pool for (p,s) must still be >= workers_required (check 2).
func checkPerPeriodAvailability(in Input) []entity.FeasibilityIssue {
	if in.Calendar == nil {
		return nil
	}
	var issues []entity.FeasibilityIssue

	for p := 0; p < in.Calendar.NumPeriods(); p++ {
		dates := in.Calendar.DatesInPeriod(p)
		for _, s := range in.ShiftTypes {
			eligible := 0
			for _, w := range in.Workers {
				if !w.IsActive || w.IsRestrictedFrom(s.ID) {
					continue
				}
				if workerUnavailableInPeriod(in, w.ID, s.ID, dates) {
					continue
				}
				eligible++
			}
			if eligible < s.WorkersRequired {
				issues = append(issues, fatal("PerPeriodAvailabilityUnreachable", fmt.Sprintf(
					"period %d shift type %q requires %d worker(s) but only %d are eligible and available", p, s.ID, s.WorkersRequired, eligible)))
			}
		}
	}

	return issues
}

func workerUnavailableInPeriod(in Input, workerID, shiftTypeID string, dates []time.Time) bool {
	for _, a := range in.Availabilities {
		if a.WorkerID != workerID || a.Type != entity.Unavailable || !a.AppliesToShift(shiftTypeID) {
			continue
		}
		for _, d := range dates {
			if a.CoversDate(d) {
				return true
			}
		}
	}
	return false
}

// checkRequestRestrictionConflicts: a hard positive request naming a
// restricted shift is Fatal (check 4).
func checkRequestRestrictionConflicts(in Input) []entity.FeasibilityIssue {
	var issues []entity.FeasibilityIssue

	restrictionOf := make(map[string]*entity.Worker, len(in.Workers))
	for i := range in.Workers {
		restrictionOf[in.Workers[i].ID] = &in.Workers[i]
	}

	cfg := in.ConstraintConfigs["request"]
	for _, r := range in.Requests {
		if !r.IsPositive || !cfg.IsHard {
			continue
		}
		w, ok := restrictionOf[r.WorkerID]
		if !ok || !w.IsRestrictedFrom(r.ShiftTypeID) {
			continue
		}
		issues = append(issues, fatal("RequestRestrictionConflict", fmt.Sprintf(
			"worker %q has a hard positive request for restricted shift type %q", r.WorkerID, r.ShiftTypeID)))
	}

	return issues
}

// checkShiftFrequencySolvability validates each requirement names real
// entities, a window that fits the horizon, and at least one unrestricted
// shift type for the worker (check 5).
func checkShiftFrequencySolvability(in Input) []entity.FeasibilityIssue {
	var issues []entity.FeasibilityIssue

	workerByID := make(map[string]*entity.Worker, len(in.Workers))
	for i := range in.Workers {
		workerByID[in.Workers[i].ID] = &in.Workers[i]
	}
	shiftByID := make(map[string]struct{}, len(in.ShiftTypes))
	for _, s := range in.ShiftTypes {
		shiftByID[s.ID] = struct{}{}
	}

	numPeriods := 0
	if in.Calendar != nil {
		numPeriods = in.Calendar.NumPeriods()
	}

	for _, req := range in.ShiftFrequencyRequirements {
		w, ok := workerByID[req.WorkerID]
		if !ok {
			issues = append(issues, fatal("ShiftFrequencyUnknownWorker", fmt.Sprintf(
				"shift-frequency requirement references unknown worker %q", req.WorkerID)))
			continue
		}

		var unknownShifts []string
		var shiftNames []string
		allRestricted := true
		for shiftTypeID := range req.ShiftTypes {
			shiftNames = append(shiftNames, shiftTypeID)
			if _, exists := shiftByID[shiftTypeID]; !exists {
				unknownShifts = append(unknownShifts, shiftTypeID)
				continue
			}
			if !w.IsRestrictedFrom(shiftTypeID) {
				allRestricted = false
			}
		}
		for _, id := range unknownShifts {
			issues = append(issues, fatal("ShiftFrequencyUnknownShiftType", fmt.Sprintf(
				"shift-frequency requirement for worker %q references unknown shift type %q", req.WorkerID, id)))
		}

		if req.MaxPeriodsBetween > numPeriods {
			issues = append(issues, warn("ShiftFrequencyWindowExceedsHorizon", fmt.Sprintf(
				"shift-frequency requirement for worker %q has max_periods_between=%d exceeding the %d-period horizon",
				req.WorkerID, req.MaxPeriodsBetween, numPeriods)))
		}

		if allRestricted {
			issues = append(issues, fatal("ShiftFrequencyAllRestricted", fmt.Sprintf(
				"worker %q is restricted from every shift type %v required by its shift-frequency requirement", req.WorkerID, shiftNames)))
		}
	}

	return issues
}
