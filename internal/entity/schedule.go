package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assignment pins one worker to one shift type on one date. Durations and
// start times are derived from the ShiftType at read time, never duplicated
// here (spec §3 invariant).
type Assignment struct {
	WorkerID    string
	ShiftTypeID string
	Date        time.Time
}

// PeriodAssignment groups one period's assignments by worker.
type PeriodAssignment struct {
	PeriodIndex int
	StartDate   time.Time
	EndDate     time.Time
	ByWorker    map[string][]Assignment
}

// SolveStatus mirrors the abstract solver's status codes (spec §4.2, §6).
type SolveStatus string

const (
	StatusOptimal            SolveStatus = "OPTIMAL"
	StatusFeasible           SolveStatus = "FEASIBLE"
	StatusInfeasible         SolveStatus = "INFEASIBLE"
	StatusUnknown            SolveStatus = "UNKNOWN"
	StatusPreSolveInfeasible SolveStatus = "PRE_SOLVE_INFEASIBLE"
)

// ConstraintStats summarizes one constraint's contribution to a solved schedule (spec §4.9).
type ConstraintStats struct {
	ConstraintName   string
	ActiveViolations int
	WeightedPenalty  float64
	WorstOffenders   []string
}

// Schedule is the solver's sole durable output: a period-by-period set of
// assignments plus solve diagnostics (spec §3).
type Schedule struct {
	ID         uuid.UUID
	Workers    []Worker
	ShiftTypes []ShiftType
	PeriodType string
	Periods    []PeriodAssignment

	Status           SolveStatus
	ObjectiveValue   float64
	SolveTimeSeconds float64
	Statistics       map[string]ConstraintStats
}

// NewSchedule allocates an empty, identified Schedule shell for the orchestrator to fill in.
func NewSchedule(workers []Worker, shiftTypes []ShiftType, periodType string, numPeriods int) *Schedule {
	periods := make([]PeriodAssignment, numPeriods)
	for i := range periods {
		periods[i] = PeriodAssignment{PeriodIndex: i, ByWorker: make(map[string][]Assignment)}
	}
	return &Schedule{
		ID:         uuid.New(),
		Workers:    workers,
		ShiftTypes: shiftTypes,
		PeriodType: periodType,
		Periods:    periods,
		Statistics: make(map[string]ConstraintStats),
	}
}

// AddAssignment records one assignment in the given period, keyed by worker.
func (s *Schedule) AddAssignment(periodIndex int, a Assignment) {
	p := &s.Periods[periodIndex]
	p.ByWorker[a.WorkerID] = append(p.ByWorker[a.WorkerID], a)
}

// AssignmentsFor returns every assignment in a period for a shift type, across workers.
func (s *Schedule) AssignmentsFor(periodIndex int, shiftTypeID string) []Assignment {
	var out []Assignment
	for _, assignments := range s.Periods[periodIndex].ByWorker {
		for _, a := range assignments {
			if a.ShiftTypeID == shiftTypeID {
				out = append(out, a)
			}
		}
	}
	return out
}
