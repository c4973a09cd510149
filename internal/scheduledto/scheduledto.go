// Package scheduledto defines the persisted/wire JSON shape for a solved
// Schedule (spec §6) and converts to and from the solver core's entity
// types. It is the output-side mirror of internal/solverequest: callers
// that marshal a Schedule for storage or an HTTP response, or unmarshal one
// back, do so exclusively through this package so the documented
// snake_case shape is produced in exactly one place.
package scheduledto

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/shiftsolver/internal/entity"
)

const dateLayout = "2006-01-02"

// Assignment is one worker's shift on one date, as persisted.
type Assignment struct {
	ShiftTypeID string `json:"shift_type_id"`
	Date        string `json:"date"`
}

// Period is one period's window plus its assignments keyed by worker ID.
type Period struct {
	Start       string                  `json:"start"`
	End         string                  `json:"end"`
	Assignments map[string][]Assignment `json:"assignments"`
}

// Worker is the persisted wire shape of entity.Worker.
type Worker struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	WorkerType       string   `json:"worker_type"`
	FTE              float64  `json:"fte"`
	IsActive         bool     `json:"is_active"`
	RestrictedShifts []string `json:"restricted_shifts,omitempty"`
	PreferredShifts  []string `json:"preferred_shifts,omitempty"`
}

// ShiftType is the persisted wire shape of entity.ShiftType.
type ShiftType struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	StartTime       string  `json:"start_time"`
	DurationHours   float64 `json:"duration_hours"`
	WorkersRequired int     `json:"workers_required"`
	IsUndesirable   bool    `json:"is_undesirable"`
	ApplicableDays  []int   `json:"applicable_days,omitempty"`
	MaxWorkers      int     `json:"max_workers"`
}

// ConstraintStats is the persisted wire shape of entity.ConstraintStats.
type ConstraintStats struct {
	ConstraintName   string   `json:"constraint_name"`
	ActiveViolations int      `json:"active_violations"`
	WeightedPenalty  float64  `json:"weighted_penalty"`
	WorstOffenders   []string `json:"worst_offenders,omitempty"`
}

// Schedule is the persisted/returned wire shape of entity.Schedule, exactly
// spec §6's shape: schedule_id, start_date, end_date, period_type,
// num_periods, workers[], shift_types[], periods[{start,end,assignments:
// {worker_id:[{shift_type_id,date}]}}], status, objective_value,
// solve_time, statistics.
type Schedule struct {
	ScheduleID     string                     `json:"schedule_id"`
	StartDate      string                     `json:"start_date"`
	EndDate        string                     `json:"end_date"`
	PeriodType     string                     `json:"period_type"`
	NumPeriods     int                        `json:"num_periods"`
	Workers        []Worker                   `json:"workers"`
	ShiftTypes     []ShiftType                `json:"shift_types"`
	Periods        []Period                   `json:"periods"`
	Status         string                     `json:"status"`
	ObjectiveValue float64                    `json:"objective_value"`
	SolveTime      float64                    `json:"solve_time"`
	Statistics     map[string]ConstraintStats `json:"statistics"`
}

// From converts a solved Schedule into its persisted wire shape.
func From(s *entity.Schedule) Schedule {
	dto := Schedule{
		ScheduleID:     s.ID.String(),
		PeriodType:     s.PeriodType,
		NumPeriods:     len(s.Periods),
		Status:         string(s.Status),
		ObjectiveValue: s.ObjectiveValue,
		SolveTime:      s.SolveTimeSeconds,
		Statistics:     make(map[string]ConstraintStats, len(s.Statistics)),
	}

	for _, w := range s.Workers {
		dto.Workers = append(dto.Workers, workerFrom(w))
	}
	for _, st := range s.ShiftTypes {
		dto.ShiftTypes = append(dto.ShiftTypes, shiftTypeFrom(st))
	}
	for name, stat := range s.Statistics {
		dto.Statistics[name] = ConstraintStats{
			ConstraintName:   stat.ConstraintName,
			ActiveViolations: stat.ActiveViolations,
			WeightedPenalty:  stat.WeightedPenalty,
			WorstOffenders:   stat.WorstOffenders,
		}
	}

	for _, p := range s.Periods {
		period := Period{
			Start:       p.StartDate.Format(dateLayout),
			End:         p.EndDate.Format(dateLayout),
			Assignments: make(map[string][]Assignment, len(p.ByWorker)),
		}
		for workerID, assignments := range p.ByWorker {
			list := make([]Assignment, 0, len(assignments))
			for _, a := range assignments {
				list = append(list, Assignment{ShiftTypeID: a.ShiftTypeID, Date: a.Date.Format(dateLayout)})
			}
			period.Assignments[workerID] = list
		}
		dto.Periods = append(dto.Periods, period)
	}

	if len(s.Periods) > 0 {
		dto.StartDate = s.Periods[0].StartDate.Format(dateLayout)
		dto.EndDate = s.Periods[len(s.Periods)-1].EndDate.Format(dateLayout)
	}

	return dto
}

func workerFrom(w entity.Worker) Worker {
	return Worker{
		ID:               w.ID,
		Name:             w.Name,
		WorkerType:       w.WorkerType,
		FTE:              w.FTE,
		IsActive:         w.IsActive,
		RestrictedShifts: sortedKeys(w.RestrictedShifts),
		PreferredShifts:  sortedKeys(w.PreferredShifts),
	}
}

func shiftTypeFrom(s entity.ShiftType) ShiftType {
	dto := ShiftType{
		ID:              s.ID,
		Name:            s.Name,
		Category:        s.Category,
		StartTime:       s.StartTimeString(),
		DurationHours:   s.DurationHours,
		WorkersRequired: s.WorkersRequired,
		IsUndesirable:   s.IsUndesirable,
		MaxWorkers:      s.MaxWorkers,
	}
	for d := range s.ApplicableDays {
		dto.ApplicableDays = append(dto.ApplicableDays, int(d))
	}
	return dto
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ToEntity reconstructs a *entity.Schedule from its persisted wire shape,
// re-validating every worker and shift type through its entity constructor
// (spec §8's round-trip law: Deserialize(Serialize(schedule)) = schedule).
func (d Schedule) ToEntity() (*entity.Schedule, error) {
	id, err := uuid.Parse(d.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule_id: %w", err)
	}

	workers := make([]entity.Worker, 0, len(d.Workers))
	for _, w := range d.Workers {
		worker, err := entity.NewWorker(w.ID, w.Name, w.WorkerType, w.FTE, w.IsActive, w.RestrictedShifts, w.PreferredShifts, nil)
		if err != nil {
			return nil, fmt.Errorf("worker %q: %w", w.ID, err)
		}
		workers = append(workers, *worker)
	}

	shiftTypes := make([]entity.ShiftType, 0, len(d.ShiftTypes))
	for _, st := range d.ShiftTypes {
		days := make([]time.Weekday, 0, len(st.ApplicableDays))
		for _, wd := range st.ApplicableDays {
			days = append(days, time.Weekday(wd))
		}
		maxWorkers := st.MaxWorkers
		shiftType, err := entity.NewShiftType(st.ID, st.Name, st.Category, st.StartTime, st.DurationHours, st.WorkersRequired, st.IsUndesirable, days, &maxWorkers)
		if err != nil {
			return nil, fmt.Errorf("shift type %q: %w", st.ID, err)
		}
		shiftTypes = append(shiftTypes, *shiftType)
	}

	schedule := entity.NewSchedule(workers, shiftTypes, d.PeriodType, len(d.Periods))
	schedule.ID = id
	schedule.Status = entity.SolveStatus(d.Status)
	schedule.ObjectiveValue = d.ObjectiveValue
	schedule.SolveTimeSeconds = d.SolveTime

	for name, stat := range d.Statistics {
		schedule.Statistics[name] = entity.ConstraintStats{
			ConstraintName:   stat.ConstraintName,
			ActiveViolations: stat.ActiveViolations,
			WeightedPenalty:  stat.WeightedPenalty,
			WorstOffenders:   stat.WorstOffenders,
		}
	}

	for i, p := range d.Periods {
		start, err := time.Parse(dateLayout, p.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d start: %w", i, err)
		}
		end, err := time.Parse(dateLayout, p.End)
		if err != nil {
			return nil, fmt.Errorf("period %d end: %w", i, err)
		}
		schedule.Periods[i].StartDate = start
		schedule.Periods[i].EndDate = end

		for workerID, assignments := range p.Assignments {
			for _, a := range assignments {
				date, err := time.Parse(dateLayout, a.Date)
				if err != nil {
					return nil, fmt.Errorf("period %d assignment date: %w", i, err)
				}
				schedule.AddAssignment(i, entity.Assignment{WorkerID: workerID, ShiftTypeID: a.ShiftTypeID, Date: date})
			}
		}
	}

	return schedule, nil
}
