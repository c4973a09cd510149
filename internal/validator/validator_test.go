package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedcu/shiftsolver/internal/calendar"
	"github.com/schedcu/shiftsolver/internal/entity"
)

func weekCalendar(t *testing.T, numWeeks int) *calendar.Calendar {
	t.Helper()
	start := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC) // a Monday
	end := start.AddDate(0, 0, 7*numWeeks-1)
	cal, err := calendar.New(start, end, 7)
	require.NoError(t, err)
	return cal
}

func TestValidate_NoViolationsWhenCoverageMet(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "DAY", Date: cal.Period(0).StartDate})

	report := Validate(Input{Workers: workers, ShiftTypes: shiftTypes, Calendar: cal}, schedule)

	assert.Empty(t, report.Violations)
}

func TestValidate_CoverageViolation(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1) // no assignment made

	report := Validate(Input{Workers: workers, ShiftTypes: shiftTypes, Calendar: cal}, schedule)

	require.NotEmpty(t, report.Violations)
	assert.Equal(t, 1, report.Statistics["coverage_violations"])
}

func TestValidate_RestrictionViolation(t *testing.T) {
	cal := weekCalendar(t, 1)
	w, err := entity.NewWorker("w1", "w1", "STAFF", 1, true, []string{"NIGHT"}, nil, nil)
	require.NoError(t, err)
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", WorkersRequired: 1}}

	schedule := entity.NewSchedule([]entity.Worker{*w}, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "NIGHT", Date: cal.Period(0).StartDate})

	report := Validate(Input{Workers: []entity.Worker{*w}, ShiftTypes: shiftTypes, Calendar: cal}, schedule)

	assert.Equal(t, 1, report.Statistics["restriction_violations"])
}

func TestValidate_AvailabilityViolation(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "DAY", Date: cal.Period(0).StartDate})

	unavailable := entity.Availability{
		WorkerID:  "w1",
		StartDate: cal.Period(0).StartDate,
		EndDate:   cal.Period(0).EndDate,
		Type:      entity.Unavailable,
	}

	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		Availabilities: []entity.Availability{unavailable},
	}, schedule)

	assert.Equal(t, 1, report.Statistics["availability_violations"])
}

func TestValidate_ShiftFrequencyViolation(t *testing.T) {
	cal := weekCalendar(t, 2)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT"}}
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"NIGHT"}, 2)
	require.NoError(t, err)

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 2) // no NIGHT assignments anywhere

	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
	}, schedule)

	assert.Equal(t, 1, report.Statistics["shift_frequency_violations"])
}

func TestValidate_ShiftFrequencyWindowLargerThanHorizonWarns(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	freq, err := entity.NewShiftFrequencyRequirement("w1", []string{"NIGHT"}, 5)
	require.NoError(t, err)

	schedule := entity.NewSchedule(workers, nil, "week", 1)

	report := Validate(Input{
		Workers: workers, Calendar: cal,
		ShiftFrequencyRequirements: []entity.ShiftFrequencyRequirement{*freq},
	}, schedule)

	require.NotEmpty(t, report.Warnings)
	assert.Empty(t, report.Violations)
}

func TestValidate_FrequencySoftViolation(t *testing.T) {
	cal := weekCalendar(t, 2)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 2) // no assignments anywhere

	configs := map[string]entity.ConstraintConfig{
		"frequency": {Enabled: true, Parameters: map[string]interface{}{"default_max_periods_between": 1}},
	}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 1, report.Statistics["frequency_violations"])
}

func TestValidate_FrequencySoftSkippedWhenNotEnabled(t *testing.T) {
	cal := weekCalendar(t, 2)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	schedule := entity.NewSchedule(workers, nil, "week", 2)

	report := Validate(Input{Workers: workers, Calendar: cal}, schedule)

	assert.Equal(t, 0, report.Statistics["frequency_violations"])
}

func TestValidate_MaxAbsenceSoftViolation(t *testing.T) {
	cal := weekCalendar(t, 2)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 2) // never works NIGHT

	configs := map[string]entity.ConstraintConfig{
		"max_absence": {Enabled: true, Parameters: map[string]interface{}{
			"max_periods_absent": 1,
			"shift_type_ids":     []string{"NIGHT"},
		}},
	}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 1, report.Statistics["max_absence_violations"])
}

func TestValidate_RequestSoftViolation(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 0}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1) // w1's positive request unmet

	req, err := entity.NewSchedulingRequest("w1", "DAY", 0, true, 1)
	require.NoError(t, err)

	configs := map[string]entity.ConstraintConfig{"request": {Enabled: true}}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		Requests:          []entity.SchedulingRequest{*req},
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 1, report.Statistics["request_violations"])
}

func TestValidate_RequestSoftSatisfiedWhenAssigned(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "DAY", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "DAY", Date: cal.Period(0).StartDate})

	req, err := entity.NewSchedulingRequest("w1", "DAY", 0, true, 1)
	require.NoError(t, err)

	configs := map[string]entity.ConstraintConfig{"request": {Enabled: true}}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		Requests:          []entity.SchedulingRequest{*req},
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 0, report.Statistics["request_violations"])
}

func TestValidate_SequenceSoftViolation(t *testing.T) {
	cal := weekCalendar(t, 2)
	workers := []entity.Worker{{ID: "w1", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", Category: "undesirable", WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 2)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "NIGHT", Date: cal.Period(0).StartDate})
	schedule.AddAssignment(1, entity.Assignment{WorkerID: "w1", ShiftTypeID: "NIGHT", Date: cal.Period(1).StartDate})

	configs := map[string]entity.ConstraintConfig{
		"sequence": {Enabled: true, Parameters: map[string]interface{}{"categories": []string{"undesirable"}}},
	}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 1, report.Statistics["sequence_violations"])
}

func TestValidate_FairnessSpreadStatistic(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}, {ID: "w2", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", IsUndesirable: true, WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "NIGHT", Date: cal.Period(0).StartDate})

	configs := map[string]entity.ConstraintConfig{"fairness": {Enabled: true, IsHard: false}}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ConstraintConfigs: configs,
	}, schedule)

	assert.Equal(t, 1, report.Statistics["fairness_spread"])
	assert.Empty(t, report.Violations)
}

func TestValidate_FairnessSpreadHardViolation(t *testing.T) {
	cal := weekCalendar(t, 1)
	workers := []entity.Worker{{ID: "w1", IsActive: true}, {ID: "w2", IsActive: true}}
	shiftTypes := []entity.ShiftType{{ID: "NIGHT", IsUndesirable: true, WorkersRequired: 1}}

	schedule := entity.NewSchedule(workers, shiftTypes, "week", 1)
	schedule.AddAssignment(0, entity.Assignment{WorkerID: "w1", ShiftTypeID: "NIGHT", Date: cal.Period(0).StartDate})

	configs := map[string]entity.ConstraintConfig{"fairness": {Enabled: true, IsHard: true}}
	report := Validate(Input{
		Workers: workers, ShiftTypes: shiftTypes, Calendar: cal,
		ConstraintConfigs: configs,
	}, schedule)

	require.NotEmpty(t, report.Violations)
	assert.Equal(t, 1, report.Statistics["fairness_spread"])
}
