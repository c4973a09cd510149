// Package coverage provides pure functional algorithms for shift coverage
// reporting without side effects, database access, or external I/O. It
// summarizes a solved Schedule for human consumption (API/CLI reports); the
// solver core's own correctness re-check is internal/validator, which
// operates on hard-constraint semantics rather than percentages.
package coverage

import (
	"fmt"
	"math"

	"github.com/schedcu/shiftsolver/internal/entity"
)

// Detail represents staffing status for a single (period, shift type) cell.
type Detail struct {
	ShiftTypeID        string
	PeriodIndex        int
	Required           int
	Assigned           int
	CoveragePercentage float64
	Status             Status
}

// Status represents the staffing status of a shift cell.
type Status string

const (
	StatusFull      Status = "FULL"
	StatusPartial   Status = "PARTIAL"
	StatusUncovered Status = "UNCOVERED"
)

// Metrics is the complete coverage analysis for one schedule.
type Metrics struct {
	Details                   []Detail
	OverallCoveragePercentage float64
	UnderStaffedCells         []Detail
	OverStaffedCells          []Detail
	Summary                   string
}

// Resolve is a pure function that computes coverage metrics from a solved
// Schedule. No side effects, no database calls, no I/O.
//
// Algorithm:
//  1. For each period and each shift type, count the unique workers assigned.
//  2. Compare assigned count vs required count from the ShiftType.
//  3. Calculate coverage percentage: (assigned / required) * 100, capped at 100%.
//  4. Classify each cell as FULL, PARTIAL, or UNCOVERED.
//  5. Aggregate overall metrics.
func Resolve(schedule *entity.Schedule) Metrics {
	metrics := Metrics{
		Details:           []Detail{},
		UnderStaffedCells: []Detail{},
		OverStaffedCells:  []Detail{},
	}

	if len(schedule.ShiftTypes) == 0 {
		metrics.Summary = "No shifts defined"
		return metrics
	}

	totalAssigned := 0
	totalRequired := 0

	for _, period := range schedule.Periods {
		for _, s := range schedule.ShiftTypes {
			assignments := schedule.AssignmentsFor(period.PeriodIndex, s.ID)
			uniqueWorkers := make(map[string]bool, len(assignments))
			for _, a := range assignments {
				uniqueWorkers[a.WorkerID] = true
			}
			assigned := len(uniqueWorkers)
			required := s.WorkersRequired

			percentage := coveragePercentage(assigned, required)
			status := coverageStatus(assigned, required)

			detail := Detail{
				ShiftTypeID:        s.ID,
				PeriodIndex:        period.PeriodIndex,
				Required:           required,
				Assigned:           assigned,
				CoveragePercentage: percentage,
				Status:             status,
			}
			metrics.Details = append(metrics.Details, detail)

			totalAssigned += assigned
			totalRequired += required

			if assigned < required {
				metrics.UnderStaffedCells = append(metrics.UnderStaffedCells, detail)
			} else if assigned > required {
				metrics.OverStaffedCells = append(metrics.OverStaffedCells, detail)
			}
		}
	}

	metrics.OverallCoveragePercentage = coveragePercentage(totalAssigned, totalRequired)
	metrics.Summary = buildSummary(metrics)

	return metrics
}

// coveragePercentage computes (assigned / required) * 100, capped at 100%.
func coveragePercentage(assigned, required int) float64 {
	if required == 0 {
		return 0
	}
	percentage := (float64(assigned) / float64(required)) * 100
	if percentage > 100 {
		percentage = 100
	}
	return math.Round(percentage*100) / 100
}

// coverageStatus classifies a cell's staffing status.
func coverageStatus(assigned, required int) Status {
	if assigned >= required {
		return StatusFull
	}
	if assigned > 0 {
		return StatusPartial
	}
	return StatusUncovered
}

func buildSummary(metrics Metrics) string {
	if len(metrics.UnderStaffedCells) == 0 {
		return fmt.Sprintf("Full coverage across %d cell(s) (%.1f%% overall)", len(metrics.Details), metrics.OverallCoveragePercentage)
	}
	return fmt.Sprintf("Coverage: %d cell(s), %d under-staffed (%.1f%% overall)",
		len(metrics.Details), len(metrics.UnderStaffedCells), metrics.OverallCoveragePercentage)
}
