package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ShiftType describes one kind of shift that can be staffed in a period.
type ShiftType struct {
	ID                string
	Name              string
	Category          string
	StartHour         int
	StartMinute       int
	DurationHours     float64
	WorkersRequired   int
	IsUndesirable     bool
	ApplicableDays    map[time.Weekday]struct{} // nil means every weekday
	MaxWorkers        int
}

// NewShiftType constructs a ShiftType, parsing the HH:MM start time and
// defaulting MaxWorkers to WorkersRequired when absent (spec §3).
func NewShiftType(id, name, category, startTime string, durationHours float64, workersRequired int, isUndesirable bool, applicableDays []time.Weekday, maxWorkers *int) (*ShiftType, error) {
	if id == "" {
		return nil, NewValidationError(InvalidShiftType, "shift type id must not be empty")
	}
	if durationHours <= 0 {
		return nil, NewValidationError(InvalidShiftType, "duration_hours must be > 0")
	}
	if workersRequired < 0 {
		return nil, NewValidationError(InvalidShiftType, "workers_required must be >= 0")
	}

	hour, minute, err := ParseClockTime(startTime)
	if err != nil {
		return nil, err
	}

	max := workersRequired
	if maxWorkers != nil {
		max = *maxWorkers
	}

	var days map[time.Weekday]struct{}
	if len(applicableDays) > 0 {
		days = make(map[time.Weekday]struct{}, len(applicableDays))
		for _, d := range applicableDays {
			days[d] = struct{}{}
		}
	}

	return &ShiftType{
		ID:              id,
		Name:            name,
		Category:        category,
		StartHour:       hour,
		StartMinute:     minute,
		DurationHours:   durationHours,
		WorkersRequired: workersRequired,
		IsUndesirable:   isUndesirable,
		ApplicableDays:  days,
		MaxWorkers:      max,
	}, nil
}

// AppliesOn reports whether this shift type can be scheduled on the given weekday.
func (s *ShiftType) AppliesOn(day time.Weekday) bool {
	if s.ApplicableDays == nil {
		return true
	}
	_, ok := s.ApplicableDays[day]
	return ok
}

// StartTimeString renders the start time back to HH:MM.
func (s *ShiftType) StartTimeString() string {
	return fmt.Sprintf("%02d:%02d", s.StartHour, s.StartMinute)
}

// ParseClockTime parses an "HH:MM" string per spec §3 (0<=H<=23, 0<=M<=59).
func ParseClockTime(value string) (hour, minute int, err error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, NewValidationError(InvalidShiftType, "start_time must be HH:MM, got "+value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, NewValidationError(InvalidShiftType, "invalid hour in start_time "+value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, NewValidationError(InvalidShiftType, "invalid minute in start_time "+value)
	}
	return hour, minute, nil
}
