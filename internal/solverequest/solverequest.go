// Package solverequest defines the JSON wire shape for a solve submission
// and converts it into the solver core's entity and orchestrator types. It
// sits at the system boundary (spec §6): the API handlers and the async job
// handler both unmarshal into Request, so validation happens exactly once,
// here, rather than being duplicated on each side of the queue.
package solverequest

import (
	"time"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/dateparse"
	"github.com/schedcu/shiftsolver/internal/entity"
	"github.com/schedcu/shiftsolver/internal/orchestrator"
)

// Request is the caller-supplied solve submission, exactly as received over
// HTTP or replayed from a persisted SolveRun.
type Request struct {
	StartDate        string `json:"start_date"`
	EndDate           string `json:"end_date"`
	PeriodLengthDays  int    `json:"period_length_days"`
	DateFormat        string `json:"date_format,omitempty"`

	Workers                    []Worker                    `json:"workers"`
	ShiftTypes                 []ShiftType                 `json:"shift_types"`
	Availabilities             []Availability               `json:"availabilities,omitempty"`
	Requests                   []SchedulingRequest          `json:"requests,omitempty"`
	ShiftFrequencyRequirements []ShiftFrequencyRequirement `json:"shift_frequency_requirements,omitempty"`
	ConstraintOverrides        map[string]ConstraintConfig  `json:"constraint_overrides,omitempty"`
}

// Worker is the wire shape of entity.Worker.
type Worker struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	WorkerType       string                 `json:"worker_type"`
	FTE              float64                `json:"fte"`
	IsActive         bool                   `json:"is_active"`
	RestrictedShifts []string               `json:"restricted_shifts,omitempty"`
	PreferredShifts  []string               `json:"preferred_shifts,omitempty"`
	Attributes       map[string]interface{} `json:"attributes,omitempty"`
}

// ShiftType is the wire shape of entity.ShiftType.
type ShiftType struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	StartTime       string `json:"start_time"` // "HH:MM"
	DurationHours   float64 `json:"duration_hours"`
	WorkersRequired int    `json:"workers_required"`
	IsUndesirable   bool   `json:"is_undesirable"`
	ApplicableDays  []int  `json:"applicable_days,omitempty"` // time.Weekday values, nil means every day
	MaxWorkers      *int   `json:"max_workers,omitempty"`
}

// Availability is the wire shape of entity.Availability.
type Availability struct {
	WorkerID    string  `json:"worker_id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Type        string  `json:"type"`
	ShiftTypeID *string `json:"shift_type_id,omitempty"`
}

// SchedulingRequest is the wire shape of entity.SchedulingRequest.
type SchedulingRequest struct {
	WorkerID    string `json:"worker_id"`
	ShiftTypeID string `json:"shift_type_id"`
	PeriodIndex int    `json:"period_index"`
	IsPositive  bool   `json:"is_positive"`
	Priority    int    `json:"priority"`
}

// ShiftFrequencyRequirement is the wire shape of entity.ShiftFrequencyRequirement.
type ShiftFrequencyRequirement struct {
	WorkerID          string   `json:"worker_id"`
	ShiftTypes        []string `json:"shift_types"`
	MaxPeriodsBetween int      `json:"max_periods_between"`
}

// ConstraintConfig is the wire shape of entity.ConstraintConfig.
type ConstraintConfig struct {
	Enabled    bool                   `json:"enabled"`
	IsHard     bool                   `json:"is_hard"`
	Weight     int                    `json:"weight"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// ToOrchestratorInput validates and converts the wire request into the
// solver core's Input, constructing every entity through its own
// constructor so domain invariants are checked exactly once, at this
// boundary.
func (r Request) ToOrchestratorInput() (orchestrator.Input, error) {
	format := dateparse.Format(r.DateFormat)
	if format == "" {
		format = dateparse.ISO
	}

	startDate, err := dateparse.Parse(r.StartDate, format)
	if err != nil {
		return orchestrator.Input{}, err
	}
	endDate, err := dateparse.Parse(r.EndDate, format)
	if err != nil {
		return orchestrator.Input{}, err
	}

	cal, err := calendar.New(startDate, endDate, r.PeriodLengthDays)
	if err != nil {
		return orchestrator.Input{}, err
	}

	workers := make([]entity.Worker, 0, len(r.Workers))
	for _, w := range r.Workers {
		worker, err := entity.NewWorker(w.ID, w.Name, w.WorkerType, w.FTE, w.IsActive, w.RestrictedShifts, w.PreferredShifts, w.Attributes)
		if err != nil {
			return orchestrator.Input{}, err
		}
		workers = append(workers, *worker)
	}

	shiftTypes := make([]entity.ShiftType, 0, len(r.ShiftTypes))
	for _, s := range r.ShiftTypes {
		var applicableDays []time.Weekday
		if s.ApplicableDays != nil {
			applicableDays = make([]time.Weekday, len(s.ApplicableDays))
			for i, d := range s.ApplicableDays {
				applicableDays[i] = time.Weekday(d)
			}
		}
		shiftType, err := entity.NewShiftType(s.ID, s.Name, s.Category, s.StartTime, s.DurationHours, s.WorkersRequired, s.IsUndesirable, applicableDays, s.MaxWorkers)
		if err != nil {
			return orchestrator.Input{}, err
		}
		shiftTypes = append(shiftTypes, *shiftType)
	}

	availabilities := make([]entity.Availability, 0, len(r.Availabilities))
	for _, a := range r.Availabilities {
		start, err := dateparse.Parse(a.StartDate, format)
		if err != nil {
			return orchestrator.Input{}, err
		}
		end, err := dateparse.Parse(a.EndDate, format)
		if err != nil {
			return orchestrator.Input{}, err
		}
		availabilities = append(availabilities, entity.Availability{
			WorkerID:    a.WorkerID,
			StartDate:   start,
			EndDate:     end,
			Type:        entity.AvailabilityType(a.Type),
			ShiftTypeID: a.ShiftTypeID,
		})
	}

	requests := make([]entity.SchedulingRequest, 0, len(r.Requests))
	for _, req := range r.Requests {
		built, err := entity.NewSchedulingRequest(req.WorkerID, req.ShiftTypeID, req.PeriodIndex, req.IsPositive, req.Priority)
		if err != nil {
			return orchestrator.Input{}, err
		}
		requests = append(requests, *built)
	}

	freqReqs := make([]entity.ShiftFrequencyRequirement, 0, len(r.ShiftFrequencyRequirements))
	for _, f := range r.ShiftFrequencyRequirements {
		built, err := entity.NewShiftFrequencyRequirement(f.WorkerID, f.ShiftTypes, f.MaxPeriodsBetween)
		if err != nil {
			return orchestrator.Input{}, err
		}
		freqReqs = append(freqReqs, *built)
	}

	var overrides map[string]entity.ConstraintConfig
	if len(r.ConstraintOverrides) > 0 {
		overrides = make(map[string]entity.ConstraintConfig, len(r.ConstraintOverrides))
		for name, cfg := range r.ConstraintOverrides {
			overrides[name] = entity.ConstraintConfig{
				Enabled:    cfg.Enabled,
				IsHard:     cfg.IsHard,
				Weight:     cfg.Weight,
				Parameters: cfg.Parameters,
			}
		}
	}

	return orchestrator.Input{
		Workers:                    workers,
		ShiftTypes:                 shiftTypes,
		Calendar:                   cal,
		Availabilities:             availabilities,
		Requests:                   requests,
		ShiftFrequencyRequirements: freqReqs,
		ConstraintOverrides:        overrides,
	}, nil
}
